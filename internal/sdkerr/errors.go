package sdkerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication failed")
	ErrConfiguration  = errors.New("invalid configuration")

	// Transport-related errors
	ErrAPI     = errors.New("api error")
	ErrNetwork = errors.New("network error")
	ErrTimeout = errors.New("request timeout")
)

// ValidationError is returned when a request payload fails a field check.
// A required-field failure lists every missing field at once; other checks
// carry the single field that failed.
type ValidationError struct {
	Fields  []string
	Message string
	Errors  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Field returns the first offending field name, or "" when unknown.
func (e *ValidationError) Field() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0]
}

func newValidation(field, message string) *ValidationError {
	var fields []string
	if field != "" {
		fields = []string{field}
	}
	return &ValidationError{Fields: fields, Message: message, Errors: []string{message}}
}

func Required(field string) *ValidationError {
	return newValidation(field, fmt.Sprintf("The %s field is required", field))
}

func MissingFields(fields []string) *ValidationError {
	errs := make([]string, 0, len(fields))
	for _, f := range fields {
		errs = append(errs, fmt.Sprintf("The %s field is required", f))
	}
	return &ValidationError{
		Fields:  fields,
		Message: "Missing required fields: " + strings.Join(fields, ", "),
		Errors:  errs,
	}
}

func InvalidFormat(field, format string) *ValidationError {
	return newValidation(field, fmt.Sprintf("The %s field must be in %s format", field, format))
}

func InvalidValue(field string, value any, allowed ...string) *ValidationError {
	msg := fmt.Sprintf("Invalid value '%v' for field '%s'", value, field)
	if len(allowed) > 0 {
		msg += ". Allowed values: " + strings.Join(allowed, ", ")
	}
	return newValidation(field, msg)
}

func Minimum(field string, value, min any) *ValidationError {
	return &ValidationError{
		Fields:  []string{field},
		Message: fmt.Sprintf("The %s field must be at least %v. Got: %v", field, min, value),
		Errors:  []string{fmt.Sprintf("The %s field must be at least %v", field, min)},
	}
}

func Maximum(field string, value, max any) *ValidationError {
	return &ValidationError{
		Fields:  []string{field},
		Message: fmt.Sprintf("The %s field must not exceed %v. Got: %v", field, max, value),
		Errors:  []string{fmt.Sprintf("The %s field must not exceed %v", field, max)},
	}
}

func GreaterThan(field string, value, bound any) *ValidationError {
	return &ValidationError{
		Fields:  []string{field},
		Message: fmt.Sprintf("The %s field must be greater than %v. Got: %v", field, bound, value),
		Errors:  []string{fmt.Sprintf("The %s field must be greater than %v", field, bound)},
	}
}

func Range(field string, value, min, max any) *ValidationError {
	return &ValidationError{
		Fields:  []string{field},
		Message: fmt.Sprintf("The %s field must be between %v and %v. Got: %v", field, min, max, value),
		Errors:  []string{fmt.Sprintf("The %s field must be between %v and %v", field, min, max)},
	}
}

func InvalidCurrency(field string, code any) *ValidationError {
	return newValidation(field, fmt.Sprintf("Invalid currency code: %v", code))
}

func InvalidEmail(field, email string) *ValidationError {
	return newValidation(field, fmt.Sprintf("Invalid email format: %s", email))
}

// AuthenticationError reports a signing or credential failure. Code mirrors
// the HTTP status the platform would answer with.
type AuthenticationError struct {
	Message string
	Code    int
	Errors  []string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func (e *AuthenticationError) Unwrap() error {
	return ErrAuthentication
}

func newAuth(code int, message string, errs []string) *AuthenticationError {
	return &AuthenticationError{Message: message, Code: code, Errors: errs}
}

func MissingToken() *AuthenticationError {
	return newAuth(401, "Authentication token is required", nil)
}

func MissingUsername() *AuthenticationError {
	return newAuth(401, "Username is required for hash generation", nil)
}

func InvalidCredentials(errs ...string) *AuthenticationError {
	return newAuth(401, "Invalid authentication credentials", errs)
}

func TokenExpired() *AuthenticationError {
	return newAuth(401, "Authentication token has expired", nil)
}

func InvalidHash() *AuthenticationError {
	return newAuth(401, "Invalid authentication hash", nil)
}

func InvalidTimestamp() *AuthenticationError {
	return newAuth(401, "Invalid or expired timestamp", nil)
}

func MissingPin() *AuthenticationError {
	return newAuth(401, "PIN is required for agent admin authentication", nil)
}

// ConfigurationError is fatal at construction time.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func Configuration(field, message string) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: message}
}
