package model

// ErrorCategory is the user-facing classification of a failed lookup.
type ErrorCategory string

// Error categories.
const (
	CategoryNotFound       ErrorCategory = "not_found"
	CategoryInvalidInput   ErrorCategory = "invalid_input"
	CategoryUnavailable    ErrorCategory = "unavailable"
	CategoryMalformedInput ErrorCategory = "malformed_input"
)

// LookupError is a classified lookup failure with a message suitable for
// direct display.
type LookupError struct {
	Category ErrorCategory
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *LookupError) Unwrap() error {
	return e.Err
}
