// Package products implements the Product record store over Postgres and
// its HTTP surface. Replace and delete are routed through an Assets
// collaborator so that embedded preview images can be managed as files.
package products

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DataURIPrefix marks a previewImage value that embeds an image payload.
const DataURIPrefix = "data:image/"

// Product is a catalog entry.
type Product struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	PreviewImage string    `json:"previewImage"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsDataURI reports whether value embeds an image instead of referencing one.
func IsDataURI(value string) bool {
	return strings.HasPrefix(value, DataURIPrefix)
}

// CreateCommand contains the fields of a new product.
type CreateCommand struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	PreviewImage string  `json:"previewImage"`
}

// Validate rejects blank names, negative prices and embedded images.
// Embedded images are only converted on replace.
func (c CreateCommand) Validate() error {
	if err := validateFields(c.Name, c.Price); err != nil {
		return err
	}
	if IsDataURI(c.PreviewImage) {
		return fmt.Errorf("%w: previewImage must be a URL on create", ErrValidation)
	}
	return nil
}

// ReplaceCommand carries the full state of a product on replace. Unlike
// create and patch, PreviewImage may hold a data-URI image.
type ReplaceCommand struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	PreviewImage string  `json:"previewImage"`
}

func (c ReplaceCommand) Validate() error {
	return validateFields(c.Name, c.Price)
}

func validateFields(name string, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}
