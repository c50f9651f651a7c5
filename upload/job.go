package upload

import "fmt"

// Status is the remote processing state of one uploaded chunk. The set is
// closed and wire-defined: values outside it are rejected at parse time
// rather than carried along.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusSuccess    Status = "SUCCESS"
	StatusFailed     Status = "FAILED"
)

// ParseStatus maps a wire status string onto the closed Status set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusSuccess, StatusFailed:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown upload status %q", s)
	}
}

// Terminal reports whether no further transitions are expected.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Job tracks one chunk's remote processing. Message is empty unless the
// server reported FAILED.
type Job struct {
	ID      string
	Status  Status
	Message string
}
