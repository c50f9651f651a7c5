// Package dataset packages tabular data with mixed scalar and media
// columns into the zip archive format the platform ingests.
//
// Callers assemble a RowIndex of typed cell values, then call Build to
// produce the archive. Scalar cells land in index.csv, media cells become
// per-row archive entries referenced from the index by relative path.
package dataset
