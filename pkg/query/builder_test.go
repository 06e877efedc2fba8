package query_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/product-catalog/pkg/query"
)

var defaultSort = query.SortField{Field: "Name"}

func TestBuilder_BuildCount_NoConditions(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection(), defaultSort).BuildCount()

	want := "SELECT COUNT(*) FROM public.products p"
	if sql != want {
		t.Errorf("BuildCount() sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want empty", args)
	}
}

func TestBuilder_BuildPage(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     string
	}{
		{"first page", 1, 20, "LIMIT 20 OFFSET 0"},
		{"second page", 2, 20, "LIMIT 20 OFFSET 20"},
		{"third page", 3, 10, "LIMIT 10 OFFSET 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := query.NewBuilder(newTestProjection(), defaultSort).BuildPage(tt.page, tt.pageSize)

			if !strings.Contains(sql, "SELECT p.id, p.name, p.price, p.created_at FROM public.products p") {
				t.Errorf("BuildPage() missing select clause, got %q", sql)
			}
			if !strings.Contains(sql, "ORDER BY p.name ASC") {
				t.Errorf("BuildPage() missing default order, got %q", sql)
			}
			if !strings.Contains(sql, tt.want) {
				t.Errorf("BuildPage() missing %q, got %q", tt.want, sql)
			}
		})
	}
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).BuildSingle("ID", "abc")

	if !strings.Contains(sql, "WHERE p.id = $1") {
		t.Errorf("BuildSingle() missing where clause, got %q", sql)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("BuildSingle() args = %v, want [abc]", args)
	}
}

func TestBuilder_OrderByFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []query.SortField
		want   string
	}{
		{"single desc", []query.SortField{{Field: "Price", Descending: true}}, "ORDER BY p.price DESC LIMIT"},
		{
			"multiple",
			[]query.SortField{{Field: "Price"}, {Field: "CreatedAt", Descending: true}},
			"ORDER BY p.price ASC, p.created_at DESC LIMIT",
		},
		{"unknown dropped", []query.SortField{{Field: "bogus"}}, "ORDER BY p.name ASC LIMIT"},
		{"empty uses default", nil, "ORDER BY p.name ASC LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := query.NewBuilder(newTestProjection(), defaultSort).
				OrderByFields(tt.fields).
				BuildPage(1, 10)

			if !strings.Contains(sql, tt.want) {
				t.Errorf("BuildPage() missing %q, got %q", tt.want, sql)
			}
		})
	}
}

func TestBuilder_OrderBy_EmptyFieldUsesDefault(t *testing.T) {
	sql, _ := query.NewBuilder(newTestProjection(), defaultSort).OrderBy("", true).BuildPage(1, 20)

	if !strings.Contains(sql, "ORDER BY p.name ASC") {
		t.Errorf("BuildPage() should use default sort, got %q", sql)
	}
}

func TestBuilder_NoDefaultSort(t *testing.T) {
	sql, _ := query.NewBuilder(newTestProjection()).BuildPage(1, 20)

	if strings.Contains(sql, "ORDER BY") {
		t.Errorf("BuildPage() should not order without sort fields, got %q", sql)
	}
}

func TestBuilder_WhereConditions(t *testing.T) {
	name := "lamp"
	minPrice := 10.0

	sql, args := query.NewBuilder(newTestProjection(), defaultSort).
		WhereEquals("ID", "abc").
		WhereContains("Name", &name).
		WhereCompare("Price", ">=", minPrice).
		BuildCount()

	for _, want := range []string{"p.id = $1", "p.name ILIKE $2", "p.price >= $3", " AND "} {
		if !strings.Contains(sql, want) {
			t.Errorf("BuildCount() missing %q, got %q", want, sql)
		}
	}

	if len(args) != 3 || args[1] != "%lamp%" || args[2] != 10.0 {
		t.Errorf("BuildCount() args = %v", args)
	}
}

func TestBuilder_IgnoredConditions(t *testing.T) {
	empty := ""

	sql, args := query.NewBuilder(newTestProjection(), defaultSort).
		WhereEquals("ID", nil).
		WhereContains("Name", nil).
		WhereContains("Name", &empty).
		WhereCompare("Price", ">=", nil).
		WhereCompare("Price", "LIKE", 1).
		WhereIn("ID", nil).
		WhereSearch(nil, "Name").
		BuildCount()

	if strings.Contains(sql, "WHERE") {
		t.Errorf("BuildCount() should not have WHERE, got %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want empty", args)
	}
}

func TestBuilder_WhereIn(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).WhereIn("ID", []any{1, 2, 3}).BuildCount()

	if !strings.Contains(sql, "WHERE p.id IN ($1, $2, $3)") {
		t.Errorf("BuildCount() missing IN clause, got %q", sql)
	}
	if len(args) != 3 {
		t.Errorf("BuildCount() len(args) = %d, want 3", len(args))
	}
}

func TestBuilder_WhereSearch(t *testing.T) {
	search := "desk"
	sql, args := query.NewBuilder(newTestProjection()).WhereSearch(&search, "Name", "ID").BuildCount()

	if !strings.Contains(sql, "(p.name ILIKE $1 OR p.id ILIKE $2)") {
		t.Errorf("BuildCount() missing search clause, got %q", sql)
	}
	if len(args) != 2 {
		t.Errorf("BuildCount() len(args) = %d, want 2", len(args))
	}
}

func TestBuilder_BuildUpdate(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).
		Set("Name", "Desk").
		Set("Price", 99.5).
		Set("bogus", 1).
		WhereEquals("ID", "abc").
		BuildUpdate()

	want := "UPDATE public.products p SET name = $1, price = $2 WHERE p.id = $3"
	if sql != want {
		t.Errorf("BuildUpdate() sql = %q, want %q", sql, want)
	}
	if len(args) != 3 || args[0] != "Desk" || args[1] != 99.5 || args[2] != "abc" {
		t.Errorf("BuildUpdate() args = %v", args)
	}
}

func TestBuilder_BuildUpdate_NoAssignments(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).WhereEquals("ID", "abc").BuildUpdate()

	if sql != "" || args != nil {
		t.Errorf("BuildUpdate() = (%q, %v), want empty", sql, args)
	}
}

func TestBuilder_BuildUpdate_AllRows(t *testing.T) {
	sql, _ := query.NewBuilder(newTestProjection()).Set("Price", 0.0).BuildUpdate()

	if sql != "UPDATE public.products p SET price = $1" {
		t.Errorf("BuildUpdate() sql = %q", sql)
	}
}
