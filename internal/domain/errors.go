package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure raised by the core wraps exactly one of them;
// the transport layer maps kinds to status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrCartNotFound     = fmt.Errorf("cart %w", ErrNotFound)
	ErrCartItemNotFound = fmt.Errorf("cart item %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)

	ErrEmailTaken = fmt.Errorf("email already registered: %w", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("not authenticated: %w", ErrUnauthorized)

	ErrInvalidQuantity = fmt.Errorf("quantity must be between %d and %d: %w", MinQuantity, MaxQuantity, ErrInvalidInput)
	ErrInvalidLimit    = fmt.Errorf("limit must be between %d and %d: %w", MinLimit, MaxLimit, ErrInvalidInput)
	ErrInvalidOffset   = fmt.Errorf("offset must be a non-negative integer: %w", ErrInvalidInput)
	ErrInvalidPrice    = fmt.Errorf("price bounds must be non-negative: %w", ErrInvalidInput)
	ErrMissingSession  = fmt.Errorf("X-Session-ID header is required: %w", ErrInvalidInput)
	ErrSessionTooLong  = fmt.Errorf("X-Session-ID must be at most %d bytes: %w", MaxSessionIDLength, ErrInvalidInput)
)

// InvalidInputf builds an ErrInvalidInput with a custom message
func InvalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}
