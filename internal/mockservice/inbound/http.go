package inbound

import (
	"context"

	"github.com/Prototype-Group/sidekick/internal/mockservice/entity"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkgrouter"
)

type service interface {
	CreateWrapper(ctx context.Context) (string, error)
	ReceiveUpload(ctx context.Context, wrapperID, fileName string, size int64) (string, error)
	Statuses(ctx context.Context, wrapperID string) ([]entity.Upload, error)
	Complete(ctx context.Context, wrapperID string) error
}

// RegisterHTTPEndpoint mounts the dataset service wire protocol under the
// /v1/datasets prefix.
func RegisterHTTPEndpoint(r *pkgrouter.Router, svc service) {
	end := &HTTPEndpoint{svc: svc}

	r.POST("/v1/datasets", end.CreateWrapper)
	r.POST("/v1/datasets/:wrapperId/upload", end.Upload)
	r.GET("/v1/datasets/:wrapperId/uploads", end.Statuses)
	r.POST("/v1/datasets/:wrapperId/upload_complete", end.Complete)
}
