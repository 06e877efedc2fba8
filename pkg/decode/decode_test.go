package decode_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/product-catalog/pkg/decode"
)

type patch struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

func TestFromMap(t *testing.T) {
	p, err := decode.FromMap[patch](map[string]any{"name": "Desk", "price": 120.5})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	if p.Name == nil || *p.Name != "Desk" {
		t.Errorf("Name = %v, want Desk", p.Name)
	}
	if p.Price == nil || *p.Price != 120.5 {
		t.Errorf("Price = %v, want 120.5", p.Price)
	}
}

func TestFromMap_AllowedKeys(t *testing.T) {
	_, err := decode.FromMap[patch](map[string]any{"name": "Desk", "sku": "x"}, "name", "price")
	if !errors.Is(err, decode.ErrUnknownField) {
		t.Errorf("FromMap() error = %v, want %v", err, decode.ErrUnknownField)
	}

	if _, err := decode.FromMap[patch](map[string]any{"price": 1.0}, "name", "price"); err != nil {
		t.Errorf("FromMap() error = %v", err)
	}
}

func TestFromMap_TypeMismatch(t *testing.T) {
	if _, err := decode.FromMap[patch](map[string]any{"price": "free"}); err == nil {
		t.Error("FromMap() succeeded, want type error")
	}
}
