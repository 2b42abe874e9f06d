// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is owned by another user.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., duplicate tag name).
	ErrAlreadyExists = errors.New("already exists")

	// ErrEmailTaken indicates registration with an email that is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login (unknown email or wrong password).
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInvalidToken indicates a missing, malformed, expired or wrong-type token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUserNotFound indicates a valid token whose subject no longer exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrValidation indicates rejected input.
	ErrValidation = errors.New("validation failed")
)

// Resource-specific forms; errors.Is matches them against the generic sentinels too.
var (
	ErrEntryNotFound   = fmt.Errorf("entry %w", ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	ErrTagNotFound     = fmt.Errorf("tag %w", ErrNotFound)
	ErrTagExists       = fmt.Errorf("tag %w", ErrAlreadyExists)
)

// Validationf wraps ErrValidation with a formatted reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
