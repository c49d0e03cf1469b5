package validation

import (
	"errors"
	"fmt"
)

// Error is a recoverable input problem. Callers fix the named field and retry.
type Error struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// IsValidation reports whether err is or wraps an *Error.
func IsValidation(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
