package errors

import "fmt"

// ErrorCode represents a steer error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrInvalidPattern ErrorCode = "INVALID_PATTERN" // 422
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrBrowserExists  ErrorCode = "BROWSER_EXISTS"  // 409
	ErrUnknownBrowser ErrorCode = "UNKNOWN_BROWSER" // 422
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// RouteError represents a structured error with code, status, and details.
// Every store rejection is one of these; the store's state is unchanged
// whenever a RouteError is returned.
type RouteError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *RouteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *RouteError {
	return &RouteError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidPattern creates a 422 error for a host pattern that fails the
// pattern grammar.
func NewInvalidPattern(pattern string) *RouteError {
	return &RouteError{
		Code:    ErrInvalidPattern,
		Status:  422,
		Message: fmt.Sprintf("invalid host pattern: %q", pattern),
		Details: map[string]any{"pattern": pattern},
	}
}

// NewNotFound creates a 404 error for a missing browser or rule.
func NewNotFound(kind, id string) *RouteError {
	return &RouteError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, id),
		Details: map[string]any{"kind": kind, "id": id},
	}
}

// NewBrowserExists creates a 409 error for a duplicate bundle identifier.
func NewBrowserExists(bundleID string) *RouteError {
	return &RouteError{
		Code:    ErrBrowserExists,
		Status:  409,
		Message: fmt.Sprintf("browser with bundle id %q already configured", bundleID),
		Details: map[string]any{"bundle_id": bundleID},
	}
}

// NewUnknownBrowser creates a 422 error for a rule target that does not
// reference a configured browser.
func NewUnknownBrowser(bundleID string) *RouteError {
	return &RouteError{
		Code:    ErrUnknownBrowser,
		Status:  422,
		Message: fmt.Sprintf("no configured browser with bundle id %q", bundleID),
		Details: map[string]any{"bundle_id": bundleID},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *RouteError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &RouteError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a RouteError with the given code.
func Is(err error, code ErrorCode) bool {
	if rErr, ok := err.(*RouteError); ok {
		return rErr.Code == code
	}
	return false
}
