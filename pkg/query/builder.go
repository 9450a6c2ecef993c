package query

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// SortField orders results by a view field or column name.
type SortField struct {
	Field      string
	Descending bool
}

// condition renders one WHERE predicate, drawing placeholders from next.
type condition func(next func(arg any) string) string

// Builder assembles SELECT statements over a ProjectionMap. Conditions are
// ANDed in the order they were added and placeholders are numbered $1, $2,
// ... across all of them.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	orderBy     []SortField
	defaultSort []SortField
}

// NewBuilder starts a query over projection. defaultSort applies when no
// OrderByFields call supplies a usable field.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// ParseSortFields reads "name,-created_at" style input, where a leading '-'
// sorts descending. Blank entries are skipped and empty input yields nil.
func ParseSortFields(s string) []SortField {
	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, desc := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

// Build renders the filtered, ordered SELECT.
func (b *Builder) Build() (string, []any) {
	return b.render("SELECT "+b.projection.Columns(), true, "")
}

// BuildCount renders a COUNT(*) over the filtered rows.
func (b *Builder) BuildCount() (string, []any) {
	return b.render("SELECT COUNT(*)", false, "")
}

// BuildPage renders Build with LIMIT and OFFSET for a 1-based page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	offset := (max(page, 1) - 1) * pageSize
	suffix := " LIMIT " + strconv.Itoa(pageSize) + " OFFSET " + strconv.Itoa(offset)
	return b.render("SELECT "+b.projection.Columns(), true, suffix)
}

// BuildSingle selects the row whose idField equals id, ignoring any
// conditions or ordering on the builder.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	sql := "SELECT " + b.projection.Columns() +
		" FROM " + b.projection.From() +
		" WHERE " + b.projection.Column(idField) + " = $1"
	return sql, []any{id}
}

// OrderByFields replaces the default sort. Fields the projection does not
// know are dropped when rendering.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.orderBy = fields
	return b
}

// WhereEquals filters field = value. Nil values add nothing.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	col := b.projection.Column(field)
	return b.where(func(next func(any) string) string {
		return col + " = " + next(value)
	})
}

// WhereContains filters field by a case-insensitive substring match.
// Nil or empty values add nothing.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	col := b.projection.Column(field)
	pattern := containsPattern(*value)
	return b.where(func(next func(any) string) string {
		return col + " ILIKE " + next(pattern)
	})
}

// WhereAfter filters field strictly later than value. Nil or zero values
// add nothing.
func (b *Builder) WhereAfter(field string, value *time.Time) *Builder {
	if value == nil || value.IsZero() {
		return b
	}
	col := b.projection.Column(field)
	at := *value
	return b.where(func(next func(any) string) string {
		return col + " > " + next(at)
	})
}

// WhereSearch matches search as a substring of any of fields.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = b.projection.Column(f)
	}
	pattern := containsPattern(*search)
	return b.where(func(next func(any) string) string {
		parts := make([]string, len(cols))
		for i, col := range cols {
			parts[i] = col + " ILIKE " + next(pattern)
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	})
}

func (b *Builder) where(c condition) *Builder {
	b.conditions = append(b.conditions, c)
	return b
}

func (b *Builder) render(head string, ordered bool, suffix string) (string, []any) {
	var sb strings.Builder
	var args []any

	next := func(arg any) string {
		args = append(args, arg)
		return "$" + strconv.Itoa(len(args))
	}

	sb.WriteString(head)
	sb.WriteString(" FROM ")
	sb.WriteString(b.projection.From())

	for i, c := range b.conditions {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(c(next))
	}

	if ordered {
		sb.WriteString(b.orderClause())
	}
	sb.WriteString(suffix)

	return sb.String(), args
}

func (b *Builder) orderClause() string {
	fields := b.orderBy
	if len(fields) == 0 {
		fields = b.defaultSort
	}

	var parts []string
	for _, f := range fields {
		col, ok := b.projection.Sortable(f.Field)
		if !ok {
			continue
		}
		dir := " ASC"
		if f.Descending {
			dir = " DESC"
		}
		parts = append(parts, col+dir)
	}

	if len(parts) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern wraps term for ILIKE with its wildcards escaped so a
// business name such as "100% Juice" matches literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
