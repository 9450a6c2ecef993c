// Package query builds the parameterized SELECTs behind kit listing.
package query

import "strings"

// ProjectionMap maps the field names clients filter and sort by onto
// alias-qualified columns of a single table.
type ProjectionMap struct {
	schema   string
	table    string
	alias    string
	columns  map[string]string
	sortable map[string]string
	ordered  []string
}

// NewProjectionMap starts a projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:   schema,
		table:    table,
		alias:    alias,
		columns:  map[string]string{},
		sortable: map[string]string{},
	}
}

// Project selects column and exposes it as viewName. Either name may be
// used to sort; only viewName resolves through Column.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := p.alias + "." + column

	p.columns[viewName] = qualified
	p.sortable[viewName] = qualified
	p.sortable[column] = qualified
	p.ordered = append(p.ordered, qualified)

	return p
}

func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table is the aliased table reference, e.g. "public.brand_kits k".
func (p *ProjectionMap) Table() string {
	return p.schema + "." + p.table + " " + p.alias
}

// From is the FROM target. It matches Table while projections span a
// single table.
func (p *ProjectionMap) From() string {
	return p.Table()
}

// Column resolves viewName, returning it unchanged when unmapped.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Columns is the SELECT list in projection order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ordered, ", ")
}

func (p *ProjectionMap) ColumnList() []string {
	return p.ordered
}

// Sortable resolves a client sort field given as a view or column name.
// Unknown fields report false so they never reach ORDER BY.
func (p *ProjectionMap) Sortable(field string) (string, bool) {
	col, ok := p.sortable[field]
	return col, ok
}
