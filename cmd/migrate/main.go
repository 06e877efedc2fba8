// Command migrate applies the embedded schema migrations to the configured database.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/JaimeStill/product-catalog/internal/config"
	"github.com/JaimeStill/product-catalog/migrations"
	"github.com/JaimeStill/product-catalog/pkg/logging"
)

func main() {
	var (
		dsn   = flag.String("dsn", "", "Database URL (pgx5://...), defaults to config.toml")
		up    = flag.Bool("up", false, "Apply all pending migrations")
		down  = flag.Bool("down", false, "Roll back all migrations")
		steps = flag.Int("steps", 0, "Apply n migrations (negative rolls back)")
		ver   = flag.Bool("version", false, "Print the current schema version")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(&cfg.Logging).With("system", "migrate")

	url := *dsn
	if url == "" {
		url = cfg.Database.URL()
	}

	if err := run(url, *up, *down, *steps, *ver, logger); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(url string, up, down bool, steps int, version bool, logger *slog.Logger) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return fmt.Errorf("open migrator: %w", err)
	}
	defer m.Close()

	switch {
	case up:
		err = m.Up()
	case down:
		err = m.Down()
	case steps != 0:
		err = m.Steps(steps)
	case version:
	default:
		flag.Usage()
		return nil
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	v, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read version: %w", err)
	}

	logger.Info("schema version", "version", v, "dirty", dirty)
	return nil
}
