package products

import (
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/product-catalog/pkg/decode"
	"github.com/JaimeStill/product-catalog/pkg/query"
)

var patchFields = []string{"name", "description", "price", "previewImage"}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	PreviewImage *string  `json:"previewImage,omitempty"`
}

// PatchFromMap converts a decoded JSON object into a validated Patch.
func PatchFromMap(data map[string]any) (Patch, error) {
	if len(data) == 0 {
		return Patch{}, ErrEmptyPatch
	}

	p, err := decode.FromMap[Patch](data, patchFields...)
	if err != nil {
		return Patch{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := p.Validate(); err != nil {
		return Patch{}, err
	}
	return p, nil
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.PreviewImage == nil
}

func (p Patch) Validate() error {
	if p.Empty() {
		return ErrEmptyPatch
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrValidation)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if p.PreviewImage != nil && IsDataURI(*p.PreviewImage) {
		return fmt.Errorf("%w: previewImage must be a URL on patch", ErrValidation)
	}
	return nil
}

// Apply records the patch assignments on the builder and bumps updatedAt.
func (p Patch) Apply(b *query.Builder, now time.Time) *query.Builder {
	if p.Name != nil {
		b.Set("name", *p.Name)
	}
	if p.Description != nil {
		b.Set("description", *p.Description)
	}
	if p.Price != nil {
		b.Set("price", *p.Price)
	}
	if p.PreviewImage != nil {
		b.Set("previewImage", *p.PreviewImage)
	}
	return b.Set("updatedAt", now)
}
