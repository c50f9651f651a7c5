package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that the requested resource could not be found.
	ErrNotFound = errors.New("resource not found")
)

// Type classifies errors into high-level buckets used by the library.
type Type int

const (
	TypeServer     Type = iota // Server-side errors inside the mock service.
	TypeValidation             // Local validation errors raised before any side effect.
	TypeTransport              // Network-level errors (unreachable endpoint, non-2xx, bad body).
	TypeRemote                 // Failures reported by the remote service for a job.
	TypeTimeout                // Deadline elapsed with the remote state still indeterminate.
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeTransport:
		return "ERROR_TYPE_TRANSPORT"
	case TypeRemote:
		return "ERROR_TYPE_REMOTE"
	case TypeTimeout:
		return "ERROR_TYPE_TIMEOUT"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	CodeInternal     Code = iota // Internal or unspecified error.
	CodeMissingFile              // A local file referenced by the caller does not exist.
	CodeBadExtension             // A local file has an extension outside the allow-list.
	CodeBadValueType             // A dataset cell holds a type no encoder handles.
	CodeBadResponse              // The remote response body could not be decoded.
	CodeNotFound                 // Error code for resource not found.
	CodeConflict                 // Error code for conflict situations (e.g., duplicate ids).
	CodeRemoteFailed             // The remote service reported a FAILED job.
	CodeTimeout                  // Error code for operation timeout.
)

func (c Code) String() string {
	switch c {
	case CodeMissingFile:
		return "ERROR_CODE_MISSING_FILE"
	case CodeBadExtension:
		return "ERROR_CODE_BAD_EXTENSION"
	case CodeBadValueType:
		return "ERROR_CODE_BAD_VALUE_TYPE"
	case CodeBadResponse:
		return "ERROR_CODE_BAD_RESPONSE"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeConflict:
		return "ERROR_CODE_CONFLICT"
	case CodeRemoteFailed:
		return "ERROR_CODE_REMOTE_FAILED"
	case CodeTimeout:
		return "ERROR_CODE_TIMEOUT"
	case CodeInternal:
		return "ERROR_CODE_INTERNAL"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the library.
//
// It can wrap an underlying error while also carrying a user-facing message,
// a high-level type, and a stable error code.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "validation violation"
	case TypeTransport:
		return "transport error"
	case TypeRemote:
		return "remote job failed"
	case TypeTimeout:
		return "operation timed out"
	default:
		return "internal error"
	}
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.msg,
		e.err,
	)
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeMissingFile, CodeNotFound:
		return http.StatusNotFound
	case CodeBadExtension, CodeBadValueType, CodeBadResponse:
		return http.StatusUnprocessableEntity
	case CodeConflict:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusRequestTimeout
	case CodeInternal, CodeRemoteFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error with the provided error.
func NewServer(err error) error {
	return new(err, "internal server error", TypeServer, CodeInternal)
}

// NewValidation creates a validation error with the given code.
//
// Validation errors are raised strictly before any network or disk side
// effect beyond what has already completed.
func NewValidation(err error, code Code) error {
	return new(err, "validation error", TypeValidation, code)
}

// NewTransport creates a transport error wrapping a failed network call.
func NewTransport(err error) error {
	return new(err, "transport error", TypeTransport, CodeInternal)
}

// NewBadResponse creates a transport error for an undecodable response body.
func NewBadResponse(err error) error {
	return new(err, "bad response body", TypeTransport, CodeBadResponse)
}

// NewRemote creates a remote-failure error embedding the server-provided message.
func NewRemote(msg string) error {
	return new(nil, msg, TypeRemote, CodeRemoteFailed)
}

// NewTimeout creates a timeout error. It indicates indeterminate server-side
// state, not a confirmed failure.
func NewTimeout(msg string) error {
	return new(nil, msg, TypeTimeout, CodeTimeout)
}

// NewBusiness creates a server-side business error with the specified message and code.
func NewBusiness(msg string, code Code) error {
	return new(nil, msg, TypeServer, code)
}
