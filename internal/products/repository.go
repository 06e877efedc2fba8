package products

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/product-catalog/pkg/pagination"
	"github.com/JaimeStill/product-catalog/pkg/query"
	"github.com/JaimeStill/product-catalog/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// New creates a product repository backed by db.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "products"),
		pagination: pagination,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `INSERT INTO products(name, description, price, preview_image)
		VALUES($1, $2, $3, $4)
		` + returning

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Product, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			cmd.Name, cmd.Description, cmd.Price, cmd.PreviewImage,
		}, scanProduct)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("product created", "id", p.ID, "name", p.Name)
	return &p, nil
}

func (r *repo) Count(ctx context.Context, filters Filters) (int, error) {
	qb := query.NewBuilder(projection)
	filters.Apply(qb)

	q, args := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Product], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "name", "description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Product, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("id", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProduct)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) UpdateAll(ctx context.Context, patch Patch, filters Filters) (int64, error) {
	if err := patch.Validate(); err != nil {
		return 0, err
	}

	qb := query.NewBuilder(projection)
	filters.Apply(qb)
	patch.Apply(qb, r.now())

	q, args := qb.BuildUpdate()
	n, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		return repository.ExecCount(ctx, tx, q, args...)
	})

	if err != nil {
		return 0, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("products updated", "count", n)
	return n, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, patch Patch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	qb := query.
		NewBuilder(projection).
		WhereEquals("id", id)
	patch.Apply(qb, r.now())

	q, args := qb.BuildUpdate()
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, args...)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("product updated", "id", id)
	return nil
}

func (r *repo) Replace(ctx context.Context, id uuid.UUID, cmd ReplaceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	q := `UPDATE products
		SET name = $1, description = $2, price = $3, preview_image = $4, updated_at = NOW()
		WHERE id = $5`

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q,
			cmd.Name, cmd.Description, cmd.Price, cmd.PreviewImage, id,
		)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("product replaced", "id", id, "name", cmd.Name)
	return nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM products WHERE id = $1`

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("product deleted", "id", id)
	return nil
}
