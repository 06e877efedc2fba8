package assets

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/product-catalog/internal/products"
)

// Errors returned by the image asset manager. ErrInvalidImage and the
// queue errors wrap product errors so the product handler maps them.
var (
	ErrInvalidImage    = fmt.Errorf("%w: malformed data-URI image", products.ErrValidation)
	ErrQueueClosed     = fmt.Errorf("%w: asset queue closed", products.ErrUnavailable)
	ErrQueueFull       = fmt.Errorf("%w: asset queue full", products.ErrUnavailable)
	ErrInvalidFilename = errors.New("invalid image filename")
	ErrImageNotFound   = errors.New("image not found")
)

// MapHTTPStatus converts image serving errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidFilename) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrImageNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
