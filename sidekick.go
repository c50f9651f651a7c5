// Package sidekick packages tabular datasets with media columns into zip
// archives and uploads them to the dataset service, tracking the remote
// processing jobs to completion.
//
// The subpackages carry the implementation: encode for the feature wire
// codecs, dataset for archive building, preprocess for table cleanup and
// upload for the service client. This package only re-exports the two
// entry points most callers need.
package sidekick

import (
	"context"

	"github.com/Prototype-Group/sidekick/dataset"
	"github.com/Prototype-Group/sidekick/upload"
)

// CreateDataset packages index into a dataset archive at path. See
// dataset.Build for the archive layout and determinism guarantees.
func CreateDataset(ctx context.Context, path string, index *dataset.RowIndex, opts dataset.BuildOptions) error {
	return dataset.Build(ctx, path, index, opts)
}

// NewDatasetClient creates an upload client for the dataset service at
// url, authenticating with token.
func NewDatasetClient(url, token string, opts ...upload.Option) *upload.Client {
	return upload.NewClient(url, token, opts...)
}
