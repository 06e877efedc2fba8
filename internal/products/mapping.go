package products

import (
	"net/url"

	"github.com/JaimeStill/product-catalog/pkg/query"
	"github.com/JaimeStill/product-catalog/pkg/repository"
)

var projection = query.NewProjectionMap("public", "products", "p").
	Project("id", "id").
	Project("name", "name").
	Project("description", "description").
	Project("price", "price").
	Project("preview_image", "previewImage").
	Project("created_at", "createdAt").
	Project("updated_at", "updatedAt")

var defaultSort = query.SortField{Field: "createdAt", Descending: true}

const returning = "RETURNING id, name, description, price, preview_image, created_at, updated_at"

func scanProduct(s repository.Scanner) (Product, error) {
	var p Product
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.PreviewImage,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Filters contains optional criteria for filtering product queries.
type Filters struct {
	Name        *string
	Description *string
	Search      *string
}

// FiltersFromQuery extracts product filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if d := values.Get("description"); d != "" {
		f.Description = &d
	}

	if s := values.Get("search"); s != "" {
		f.Search = &s
	}

	return f
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("name", f.Name).
		WhereContains("description", f.Description).
		WhereSearch(f.Search, "name", "description")
}
