// Package kits archives completed brand kits. Each kit is written as a JSON
// manifest to object storage and, when a database is configured, indexed in
// Postgres for listing and filtering.
package kits

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/brandkit/internal/pipeline"
)

// Kit is the index record of an archived brand kit.
type Kit struct {
	ID                    uuid.UUID `json:"id"`
	BusinessName          string    `json:"business_name"`
	Industry              string    `json:"industry"`
	Style                 string    `json:"style"`
	ColorScheme           string    `json:"color_scheme"`
	LogoCount             int       `json:"logo_count"`
	FontSuggestion        string    `json:"font_suggestion"`
	ManifestKey           string    `json:"manifest_key"`
	ProcessingTimeSeconds float64   `json:"processing_time_seconds"`
	CreatedAt             time.Time `json:"created_at"`
}

// Detail is an index record with its full manifest.
type Detail struct {
	Kit
	Response *pipeline.Response `json:"kit"`
}

// ManifestKey returns the storage key of a kit manifest.
func ManifestKey(id uuid.UUID) string {
	return fmt.Sprintf("%s%s/kit.json", Prefix, id)
}

// Prefix is the storage prefix under which every kit asset lives.
const Prefix = "kits/"

func newKit(id uuid.UUID, resp *pipeline.Response) Kit {
	return Kit{
		ID:                    id,
		BusinessName:          resp.BusinessName,
		Industry:              resp.Industry,
		Style:                 resp.Style,
		ColorScheme:           resp.ColorScheme,
		LogoCount:             len(resp.Logos),
		FontSuggestion:        resp.FontSuggestion,
		ManifestKey:           ManifestKey(id),
		ProcessingTimeSeconds: resp.ProcessingTimeSeconds,
		CreatedAt:             resp.CreatedAt,
	}
}
