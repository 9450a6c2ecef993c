package pipeline

import (
	"time"

	"github.com/JaimeStill/brandkit/pkg/graphics"
)

// Job states.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Values written to LogoResult metadata under "generated_with".
const (
	GeneratedWithModel       = "image_generation"
	GeneratedWithPlaceholder = "placeholder_fallback"
)

// Enhancement feature tags.
const (
	FeatureBackgroundCleanup = "background_cleanup"
	FeatureColorExtraction   = "color_extraction"
	FeatureColorVariations   = "color_variations"
	FeatureUpscaling         = "upscaling"
	FeatureSocialExports     = "social_exports"
)

// Job is the progress record for one pipeline run.
type Job struct {
	ID          string    `json:"job_id"`
	Status      string    `json:"status"`
	Progress    float64   `json:"progress"`
	CurrentStep string    `json:"current_step"`
	Error       string    `json:"error_message,omitempty"`
	StartedAt   time.Time `json:"started_at"`
}

// LogoResult is one logo concept. URL and ThumbnailURL hold either a
// stored-object URL or a data URL.
type LogoResult struct {
	ID              string         `json:"id"`
	URL             string         `json:"url"`
	ThumbnailURL    string         `json:"thumbnail_url"`
	StyleConfidence float64        `json:"style_confidence"`
	QualityScore    float64        `json:"quality_score"`
	Metadata        map[string]any `json:"metadata"`
}

// ColorPalette is the four-role palette for a color scheme. Colors repeats
// the four roles in order.
type ColorPalette struct {
	Primary   string   `json:"primary"`
	Secondary string   `json:"secondary"`
	Accent    string   `json:"accent"`
	Neutral   string   `json:"neutral"`
	Colors    []string `json:"colors"`
}

// Typography is a font pairing recommendation.
type Typography struct {
	PrimaryFont   string `json:"primary_font"`
	SecondaryFont string `json:"secondary_font"`
	FontFamily    string `json:"font_family"`
	FontStyle     string `json:"font_style"`
	Weight        string `json:"weight"`
}

// ColorVariant is a stored hue/saturation variant of a logo.
type ColorVariant struct {
	HueShift   float64 `json:"hue_shift"`
	Saturation float64 `json:"saturation"`
	URL        string  `json:"url"`
}

// BrandKit groups the composed assets of a run.
type BrandKit struct {
	Logos        []LogoResult `json:"logos"`
	ColorPalette ColorPalette `json:"color_palette"`
	Typography   Typography   `json:"typography"`
	Description  string       `json:"brand_description"`
}

// Response is the result of a completed run. The flattened fields mirror
// BrandKit for clients that read the top level only.
type Response struct {
	JobID                    string                       `json:"job_id"`
	BusinessName             string                       `json:"business_name"`
	Industry                 string                       `json:"industry"`
	Style                    string                       `json:"style"`
	ColorScheme              string                       `json:"color_scheme"`
	TargetAudience           string                       `json:"target_audience"`
	Status                   string                       `json:"status"`
	BrandKit                 BrandKit                     `json:"brand_kit"`
	ProcessingTimeSeconds    float64                      `json:"processing_time_seconds"`
	CreatedAt                time.Time                    `json:"created_at"`
	Logos                    []LogoResult                 `json:"logos"`
	ColorPalette             []string                     `json:"color_palette"`
	FontSuggestion           string                       `json:"font_suggestion"`
	BrandDescription         string                       `json:"brand_description"`
	ExtractedColors          []graphics.Color             `json:"extracted_colors"`
	SocialMediaExports       map[string]map[string]string `json:"social_media_exports"`
	UpscalingApplied         bool                         `json:"upscaling_applied"`
	ColorVariationsAvailable bool                         `json:"color_variations_available"`
	EnhancementFeatures      []string                     `json:"enhancement_features"`
	LogoSheetURL             string                       `json:"logo_sheet_url,omitempty"`
}
