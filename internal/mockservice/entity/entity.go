package entity

// UploadStatus is the server-side processing state of one chunk upload.
type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "PENDING"
	UploadStatusProcessing UploadStatus = "PROCESSING"
	UploadStatusSuccess    UploadStatus = "SUCCESS"
	UploadStatusFailed     UploadStatus = "FAILED"
)

// Terminal reports whether the status allows no further transitions.
func (s UploadStatus) Terminal() bool {
	return s == UploadStatusSuccess || s == UploadStatusFailed
}

// Upload is one chunk received into a wrapper.
type Upload struct {
	ID       string
	FileName string
	Size     int64
	Status   UploadStatus
	Message  string
}

// Wrapper is the container scoping one dataset submission.
type Wrapper struct {
	ID        string
	Completed bool
}
