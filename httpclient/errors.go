package httpclient

import (
	"errors"
	"fmt"
)

// ErrorCode classifies transport errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates the request deadline passed or ctx was done.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, reset).
	ErrCodeConnection
	// ErrCodeStatus indicates a response with a non-2xx status.
	ErrCodeStatus
	// ErrCodeEncode indicates the request could not be built.
	ErrCodeEncode
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeStatus:
		return "status"
	case ErrCodeEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// Error is a classified transport error.
type Error struct {
	// StatusCode is the HTTP status (0 when no response arrived).
	StatusCode int
	Code       ErrorCode
	Message    string
	// Body is the response body for status errors.
	Body []byte
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Err: err}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Err: err}
}

// NewEncodeError creates an error for a request that could not be built.
func NewEncodeError(err error) *Error {
	return &Error{Code: ErrCodeEncode, Message: err.Error(), Err: err}
}

// ClassifyStatusCode returns nil for 2xx and a status error otherwise.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeStatus,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
	}
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsEncode checks if the request could not be built.
func IsEncode(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeEncode
}

// IsStatus checks if an error is a non-2xx status error.
func IsStatus(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeStatus
}
