package inbound

import "net/http"

type CreateWrapperResponse struct {
	DatasetWrapperID string `json:"datasetWrapperId"`
}

func (CreateWrapperResponse) StatusCode() int {
	return http.StatusCreated
}

type UploadResponse struct {
	UploadID string `json:"uploadId"`
}

type UploadStatus struct {
	UploadID string  `json:"uploadId"`
	Status   string  `json:"status"`
	Message  *string `json:"message,omitempty"`
}

type StatusesResponse struct {
	UploadStatuses []UploadStatus `json:"uploadStatuses"`
}
