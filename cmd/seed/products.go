package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/JaimeStill/product-catalog/internal/products"
)

//go:embed seeds/*.json
var seedFiles embed.FS

func init() {
	registerSeeder(&ProductSeeder{})
}

// ProductSeed is one product in a seed file. IDs are fixed so reseeding
// updates rows instead of duplicating them.
type ProductSeed struct {
	ID uuid.UUID `json:"id"`
	products.CreateCommand
}

type ProductSeedData struct {
	Products []ProductSeed `json:"products"`
}

// ProductSeeder loads sample products from an embedded or external file.
type ProductSeeder struct {
	file string
}

func (s *ProductSeeder) Name() string {
	return "products"
}

func (s *ProductSeeder) Description() string {
	return "Seeds sample catalog products"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *ProductSeeder) SetFile(path string) {
	s.file = path
}

func (s *ProductSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := s.loadSeedData()
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO products (id, name, description, price, preview_image)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			preview_image = EXCLUDED.preview_image,
			updated_at = NOW()`

	for _, p := range data.Products {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("product %s: %w", p.Name, err)
		}

		_, err := tx.ExecContext(ctx, query, p.ID, p.Name, p.Description, p.Price, p.PreviewImage)
		if err != nil {
			return fmt.Errorf("save product %s: %w", p.Name, err)
		}
	}

	return nil
}

func (s *ProductSeeder) loadSeedData() (*ProductSeedData, error) {
	var content []byte
	var err error

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/products.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data ProductSeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	return &data, nil
}
