package model

import "fmt"

// ValidationError is returned when a request carries a malformed or missing
// field.  Handlers translate it into an HTTP 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError for the given field.
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
