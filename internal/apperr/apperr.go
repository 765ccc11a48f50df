// Package apperr defines the error taxonomy shared by all services and the
// single mapping from errors to HTTP status codes.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrValidation      = errors.New("invalid request")
	ErrDuplicate       = errors.New("resource already exists")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
)

// Status maps an error to its HTTP status code. Anything outside the
// taxonomy is an internal error.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicate):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
