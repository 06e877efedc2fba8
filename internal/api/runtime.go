package api

import (
	"database/sql"
	"log/slog"

	"github.com/JaimeStill/product-catalog/internal/config"
	"github.com/JaimeStill/product-catalog/internal/infrastructure"
	"github.com/JaimeStill/product-catalog/pkg/pagination"
	"github.com/JaimeStill/product-catalog/pkg/storage"
)

// Runtime is the slice of infrastructure and configuration the API modules consume.
type Runtime struct {
	DB          *sql.DB
	Files       storage.System
	Logger      *slog.Logger
	Pagination  pagination.Config
	MaxBodySize int64
	TrustProxy  bool
	Assets      config.AssetsConfig
}

// NewRuntime scopes the infrastructure logger to the api module.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		DB:          infra.Database.Connection(),
		Files:       infra.Storage,
		Logger:      infra.Logger.With("module", "api"),
		Pagination:  cfg.API.Pagination,
		MaxBodySize: cfg.Storage.MaxUploadSizeBytes(),
		TrustProxy:  cfg.Server.TrustProxy,
		Assets:      cfg.Assets,
	}
}
