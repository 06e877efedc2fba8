// Package main provides the seed command for populating the database with
// sample data. Seeders run individually or together in one transaction.
package main

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/JaimeStill/product-catalog/pkg/repository"
)

// Seeder populates one domain's data.
type Seeder interface {
	Name() string
	Description() string

	// Seed runs inside the caller's transaction so that several seeders
	// commit or roll back together.
	Seed(ctx context.Context, tx *sql.Tx) error
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the registry. Seeders self-register via init.
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b Seeder) int {
		return cmp.Compare(a.Name(), b.Name())
	})
	return result
}

// runSeeders executes the named seeders in a single transaction.
func runSeeders(ctx context.Context, db *sql.DB, list ...Seeder) error {
	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		for _, s := range list {
			if err := s.Seed(ctx, tx); err != nil {
				return struct{}{}, fmt.Errorf("seed %s: %w", s.Name(), err)
			}
		}
		return struct{}{}, nil
	})
	return err
}
