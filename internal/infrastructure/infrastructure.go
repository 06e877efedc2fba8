// Package infrastructure assembles the systems every domain module needs:
// lifecycle coordination, logging, the database pool and file storage.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/product-catalog/internal/config"
	"github.com/JaimeStill/product-catalog/pkg/database"
	"github.com/JaimeStill/product-catalog/pkg/lifecycle"
	"github.com/JaimeStill/product-catalog/pkg/logging"
	"github.com/JaimeStill/product-catalog/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New constructs the systems without starting them. Every log line carries
// the service version.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging).With("version", cfg.Version)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers the database and storage startup hooks.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("start database: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("start storage: %w", err)
	}
	return nil
}

// Close releases the database pool. Call it after lifecycle shutdown has
// returned so that draining subsystems can still write records.
func (i *Infrastructure) Close() error {
	return i.Database.Close()
}
