// Package domain defines domain-level errors and input rules shared by the users and addresses features.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound indicates that no user exists with the given ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrAddressNotFound indicates that no address exists with the given ID.
	ErrAddressNotFound = errors.New("address not found")
)

// ValidationError reports an input value that breaks a field rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
