// Package storage provides blob storage keyed by slash-separated relative
// paths. The filesystem implementation is backed by afero so that callers
// can substitute an in-memory or read-only filesystem.
package storage

import (
	"context"
	"io/fs"

	"github.com/JaimeStill/product-catalog/pkg/lifecycle"
)

// System defines blob storage operations.
type System interface {
	// Store writes data at key, overwriting any existing content.
	// Parent directories are created as needed.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data stored at key or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Stat returns file metadata for key or ErrNotFound.
	Stat(ctx context.Context, key string) (fs.FileInfo, error)

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)

	// Start registers lifecycle hooks. The filesystem implementation
	// creates the base directory.
	Start(lc *lifecycle.Coordinator) error
}
