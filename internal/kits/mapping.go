package kits

import (
	"net/url"
	"time"

	"github.com/JaimeStill/brandkit/pkg/query"
	"github.com/JaimeStill/brandkit/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "brand_kits", "k").
	Project("id", "ID").
	Project("business_name", "BusinessName").
	Project("industry", "Industry").
	Project("style", "Style").
	Project("color_scheme", "ColorScheme").
	Project("logo_count", "LogoCount").
	Project("font_suggestion", "FontSuggestion").
	Project("manifest_key", "ManifestKey").
	Project("processing_time_seconds", "ProcessingTimeSeconds").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for kit queries.
// Industry, Style, and ColorScheme match exactly. BusinessName is a
// case-insensitive contains match. CreatedAfter is exclusive.
type Filters struct {
	Industry     *string    `json:"industry,omitempty"`
	Style        *string    `json:"style,omitempty"`
	ColorScheme  *string    `json:"color_scheme,omitempty"`
	BusinessName *string    `json:"business_name,omitempty"`
	CreatedAfter *time.Time `json:"created_after,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Industry", f.Industry).
		WhereEquals("Style", f.Style).
		WhereEquals("ColorScheme", f.ColorScheme).
		WhereContains("BusinessName", f.BusinessName).
		WhereAfter("CreatedAt", f.CreatedAfter)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// An unparseable created_after is ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("industry"); v != "" {
		f.Industry = &v
	}
	if v := values.Get("style"); v != "" {
		f.Style = &v
	}
	if v := values.Get("color_scheme"); v != "" {
		f.ColorScheme = &v
	}
	if v := values.Get("business_name"); v != "" {
		f.BusinessName = &v
	}
	if v := values.Get("created_after"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.CreatedAfter = &t
		}
	}

	return f
}

func scanKit(s repository.Scanner) (Kit, error) {
	var k Kit
	err := s.Scan(
		&k.ID,
		&k.BusinessName,
		&k.Industry,
		&k.Style,
		&k.ColorScheme,
		&k.LogoCount,
		&k.FontSuggestion,
		&k.ManifestKey,
		&k.ProcessingTimeSeconds,
		&k.CreatedAt,
	)
	return k, err
}
