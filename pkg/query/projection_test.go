package query_test

import (
	"testing"

	"github.com/JaimeStill/product-catalog/pkg/query"
)

func newTestProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "products", "p").
		Project("id", "ID").
		Project("name", "Name").
		Project("price", "Price").
		Project("created_at", "CreatedAt")
}

func TestNewProjectionMap(t *testing.T) {
	pm := query.NewProjectionMap("public", "products", "p")

	if pm.Alias() != "p" {
		t.Errorf("Alias() = %q, want %q", pm.Alias(), "p")
	}
	if pm.Table() != "public.products p" {
		t.Errorf("Table() = %q, want %q", pm.Table(), "public.products p")
	}
}

func TestProjectionMap_Column(t *testing.T) {
	pm := newTestProjection()

	tests := []struct {
		view     string
		wantCol  string
		wantName string
	}{
		{"ID", "p.id", "id"},
		{"Name", "p.name", "name"},
		{"CreatedAt", "p.created_at", "created_at"},
		{"Unknown", "Unknown", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.view, func(t *testing.T) {
			if got := pm.Column(tt.view); got != tt.wantCol {
				t.Errorf("Column(%q) = %q, want %q", tt.view, got, tt.wantCol)
			}
			if got := pm.Name(tt.view); got != tt.wantName {
				t.Errorf("Name(%q) = %q, want %q", tt.view, got, tt.wantName)
			}
		})
	}
}

func TestProjectionMap_Columns(t *testing.T) {
	pm := query.NewProjectionMap("public", "products", "p").
		Project("id", "ID").
		Project("name", "Name")

	if got := pm.Columns(); got != "p.id, p.name" {
		t.Errorf("Columns() = %q, want %q", got, "p.id, p.name")
	}

	list := pm.ColumnList()
	if len(list) != 2 || list[0] != "p.id" || list[1] != "p.name" {
		t.Errorf("ColumnList() = %v, want [p.id p.name]", list)
	}
}

func TestProjectionMap_Has(t *testing.T) {
	pm := newTestProjection()

	if !pm.Has("Price") {
		t.Error("Has(Price) = false, want true")
	}
	if pm.Has("price; DROP TABLE products") {
		t.Error("Has() = true for unknown field")
	}
}
