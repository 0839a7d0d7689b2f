package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Service errors are sentinel values so handlers can map categories to
// HTTP statuses without string matching. Wrap with context via fmt.Errorf
// and %w where a message helps the caller.
var (
	ErrAuthRequired      = errors.New("authentication required")
	ErrUnauthorized      = errors.New("not allowed")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("invalid input")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StatusFor maps a service error to the HTTP status the API responds with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrInsufficientStock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
