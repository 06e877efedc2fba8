// Package database manages the PostgreSQL connection pool used by domain repositories.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/product-catalog/pkg/lifecycle"
)

// ErrNotReady indicates the connection pool has not been verified yet.
var ErrNotReady = errors.New("database not ready")

// System exposes the shared connection pool and its lifecycle.
type System interface {
	Connection() *sql.DB
	Start(lc *lifecycle.Coordinator) error
	Close() error
}

type database struct {
	conn   *sql.DB
	cfg    *Config
	logger *slog.Logger
}

// New opens a pgx-backed connection pool with the configured limits.
// The connection is verified on Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	conn, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:   conn,
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database system", "host", d.cfg.Host, "name", d.cfg.Name)

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
		defer cancel()

		if err := d.conn.PingContext(ctx); err != nil {
			d.logger.Error("database ping failed", "error", fmt.Errorf("%w: %v", ErrNotReady, err))
			return
		}
		d.logger.Info("database connection established")
	})

	return nil
}

// Close releases the pool. It is called after lifecycle shutdown so that
// draining subsystems can still reach the database.
func (d *database) Close() error {
	if err := d.conn.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	d.logger.Info("database connection closed")
	return nil
}
