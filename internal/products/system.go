package products

import (
	"context"

	"github.com/JaimeStill/product-catalog/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the product record store operations.
type System interface {
	Create(ctx context.Context, cmd CreateCommand) (*Product, error)
	Count(ctx context.Context, filters Filters) (int, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Product], error)
	Find(ctx context.Context, id uuid.UUID) (*Product, error)
	UpdateAll(ctx context.Context, patch Patch, filters Filters) (int64, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) error
	Replace(ctx context.Context, id uuid.UUID, cmd ReplaceCommand) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Assets owns the replace and delete paths, where a product's preview
// image file is written or removed alongside the record.
type Assets interface {
	ReplaceRecord(ctx context.Context, id uuid.UUID, cmd ReplaceCommand, origin string) error
	DeleteRecord(ctx context.Context, id uuid.UUID) error
}
