package products

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/product-catalog/pkg/decode"
	"github.com/JaimeStill/product-catalog/pkg/handlers"
)

// Domain errors for product operations.
var (
	ErrNotFound    = errors.New("product not found")
	ErrDuplicate   = errors.New("product already exists")
	ErrValidation  = errors.New("invalid product")
	ErrEmptyPatch  = errors.New("patch contains no fields")
	ErrUnavailable = errors.New("product service unavailable")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, handlers.ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrEmptyPatch) ||
		errors.Is(err, decode.ErrUnknownField) ||
		errors.Is(err, handlers.ErrInvalidBody) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
