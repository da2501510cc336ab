package types

import (
	"errors"
	"fmt"
)

var (
	ErrRequestNotFound = errors.New("aid request not found")
	ErrNGONotFound     = errors.New("ngo not found")
	ErrDuplicateUser   = errors.New("user already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	// Lifecycle guards: a helped request is terminal, and a request must be
	// claimed before it can be marked helped.
	ErrRequestClosed     = errors.New("aid request already helped")
	ErrRequestNotClaimed = errors.New("aid request has not been claimed")

	ErrResetTokenInvalid = errors.New("invalid reset token")
	ErrResetTokenExpired = errors.New("reset token expired")

	// ErrExternalService wraps failures of the object storage or mail
	// collaborators. The triggering local change is never committed.
	ErrExternalService = errors.New("external service failure")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("field %q is required", e.Field)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
