package sdkerr

import (
	"fmt"
	"strings"
	"time"
)

// APIError is a transport failure: an HTTP status >= 400, a network fault
// (StatusCode 0, wraps ErrNetwork) or a timeout (StatusCode 0, wraps ErrTimeout).
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
	Body       string

	kind  error
	cause error
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return e.Message + " Errors: " + strings.Join(e.Errors, ", ")
}

func (e *APIError) Unwrap() []error {
	errs := []error{ErrAPI}
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// IsRetryable reports whether the same request may succeed later.
func (e *APIError) IsRetryable() bool {
	if e.kind == ErrNetwork {
		return true
	}
	return e.StatusCode == 429 || e.StatusCode == 503
}

var defaultStatusMessages = map[int]string{
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Resource not found",
	422: "Validation failed",
	429: "Rate limit exceeded",
	500: "Internal server error",
	503: "Service unavailable",
}

// FromHTTPStatus builds the error for a non-2xx response. An empty message
// falls back to the default text for the status.
func FromHTTPStatus(status int, message string, errs []string, body string) *APIError {
	if message == "" {
		if m, ok := defaultStatusMessages[status]; ok {
			message = m
		} else {
			message = fmt.Sprintf("HTTP %d error", status)
		}
	}
	return &APIError{StatusCode: status, Message: message, Errors: errs, Body: body}
}

func NetworkError(cause error) *APIError {
	return &APIError{
		Message: "Network error: " + cause.Error(),
		Errors:  []string{"Network connectivity issue"},
		kind:    ErrNetwork,
		cause:   cause,
	}
}

func Timeout(after time.Duration, cause error) *APIError {
	return &APIError{
		Message: fmt.Sprintf("Request timed out after %d seconds", int(after.Seconds())),
		Errors:  []string{"Request timeout"},
		kind:    ErrTimeout,
		cause:   cause,
	}
}

// Decode wraps a response body that could not be parsed.
func Decode(status int, body string, cause error) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    "Invalid JSON response: " + cause.Error(),
		Errors:     []string{"JSON parsing error"},
		Body:       body,
		cause:      cause,
	}
}
