package errors

import (
	stderrors "errors"
	"fmt"
)

// Category classifies a ClientError.
type Category int

const (
	// CategoryNetwork covers transport failures and non-success HTTP statuses.
	CategoryNetwork Category = iota + 1
	// CategoryUnauthorized is an application-level 401.
	CategoryUnauthorized
	// CategoryApplication is any other non-success application code.
	CategoryApplication
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryNetwork:
		return "network"
	case CategoryUnauthorized:
		return "unauthorized"
	case CategoryApplication:
		return "application"
	default:
		return "unknown"
	}
}

// Fixed messages for the categories whose text does not come from the backend.
const (
	MsgConnectionFailed = "network connection failed"
	MsgNetworkError     = "network error"
	MsgUnauthorized     = "unauthorized"
	MsgFallback         = "request failed"
	MsgInvalidRequest   = "invalid request"
)

// ClientError is the structured rejection returned by the request client.
type ClientError struct {
	// Category classifies the failure.
	Category Category `json:"category"`
	// Message is the user-facing message.
	Message string `json:"message"`
	// Code is the application envelope code, when one was present.
	Code int `json:"code,omitempty"`
	// HTTPStatus is the transport status code (0 when no response arrived).
	HTTPStatus int `json:"http_status,omitempty"`
	// Cause is the underlying error, if any.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *ClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error { return e.Cause }

// Is reports whether target is a ClientError of the same category. It lets
// callers match against the sentinel values below with errors.Is.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Category == e.Category
}

// Sentinels for errors.Is matching by category.
var (
	ErrNetwork      = &ClientError{Category: CategoryNetwork}
	ErrUnauthorized = &ClientError{Category: CategoryUnauthorized}
	ErrApplication  = &ClientError{Category: CategoryApplication}
)

// ConnectionFailed is returned when no response was received.
func ConnectionFailed(cause error) *ClientError {
	return &ClientError{Category: CategoryNetwork, Message: MsgConnectionFailed, Cause: cause}
}

// NetworkError is returned when a response arrived with a non-success status.
func NetworkError(status int) *ClientError {
	return &ClientError{Category: CategoryNetwork, Message: MsgNetworkError, HTTPStatus: status}
}

// InvalidRequest is returned when the request could not be built, for
// example a body that does not marshal. Nothing was sent.
func InvalidRequest(cause error) *ClientError {
	return &ClientError{Category: CategoryApplication, Message: MsgInvalidRequest, Cause: cause}
}

// Unauthorized is returned for an application-level 401.
func Unauthorized(code int) *ClientError {
	return &ClientError{Category: CategoryUnauthorized, Message: MsgUnauthorized, Code: code}
}

// Application is returned for any other failing application code. An empty
// message is replaced by fallback, and by MsgFallback when fallback is empty.
func Application(code int, message, fallback string) *ClientError {
	if message == "" {
		message = fallback
	}
	if message == "" {
		message = MsgFallback
	}
	return &ClientError{Category: CategoryApplication, Message: message, Code: code}
}

// AsClientError extracts a *ClientError from err.
func AsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// CategoryOf returns the category of err, or 0 when err is not a ClientError.
func CategoryOf(err error) Category {
	if ce, ok := AsClientError(err); ok {
		return ce.Category
	}
	return 0
}

// IsNetwork reports whether err is a Network ClientError.
func IsNetwork(err error) bool { return CategoryOf(err) == CategoryNetwork }

// IsUnauthorized reports whether err is an Unauthorized ClientError.
func IsUnauthorized(err error) bool { return CategoryOf(err) == CategoryUnauthorized }

// IsApplication reports whether err is an Application ClientError.
func IsApplication(err error) bool { return CategoryOf(err) == CategoryApplication }

// Is, As and New re-export the standard library helpers so callers importing
// this package under the name "errors" keep them.
var (
	Is  = stderrors.Is
	As  = stderrors.As
	New = stderrors.New
)
