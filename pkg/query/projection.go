package query

import (
	"fmt"
	"strings"
)

type projection struct {
	column string
	view   string
}

// ProjectionMap maps view field names to qualified table columns.
type ProjectionMap struct {
	schema      string
	table       string
	alias       string
	projections []projection
	index       map[string]string
}

// NewProjectionMap creates a projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		index:  make(map[string]string),
	}
}

// Project adds a column under the given view name.
func (pm *ProjectionMap) Project(column, view string) *ProjectionMap {
	pm.projections = append(pm.projections, projection{column: column, view: view})
	pm.index[view] = column
	return pm
}

// Alias returns the table alias.
func (pm *ProjectionMap) Alias() string {
	return pm.alias
}

// Table returns the qualified table with its alias, e.g. "public.products p".
func (pm *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", pm.schema, pm.table, pm.alias)
}

// Column returns the alias-qualified column for view. Unknown names are returned unchanged.
func (pm *ProjectionMap) Column(view string) string {
	col, ok := pm.index[view]
	if !ok {
		return view
	}
	return pm.alias + "." + col
}

// Name returns the bare column for view, as required by SET and INSERT lists.
func (pm *ProjectionMap) Name(view string) string {
	if col, ok := pm.index[view]; ok {
		return col
	}
	return view
}

// Has reports whether view is a projected field.
func (pm *ProjectionMap) Has(view string) bool {
	_, ok := pm.index[view]
	return ok
}

// Columns returns the qualified select list.
func (pm *ProjectionMap) Columns() string {
	return strings.Join(pm.ColumnList(), ", ")
}

// ColumnList returns the qualified columns in projection order.
func (pm *ProjectionMap) ColumnList() []string {
	cols := make([]string, len(pm.projections))
	for i, p := range pm.projections {
		cols[i] = pm.alias + "." + p.column
	}
	return cols
}
