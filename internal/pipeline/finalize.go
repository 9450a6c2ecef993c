package pipeline

import (
	"slices"
	"time"

	"github.com/JaimeStill/brandkit/pkg/graphics"
)

// MaxExtractedColors caps the kit-level extracted color list.
const MaxExtractedColors = 12

func finalize(
	id string,
	req *Request,
	enhanced enhancement,
	palette ColorPalette,
	typography Typography,
	description string,
	start time.Time,
) *Response {
	logos := make([]LogoResult, 0, len(enhanced.logos))
	extracted := make([]graphics.Color, 0)
	exports := make(map[string]map[string]string)
	features := make([]string, 0)
	var upscaled, variations bool

	for _, c := range enhanced.logos {
		logos = append(logos, c.result)
		extracted = append(extracted, c.colors...)

		if len(c.exports) > 0 {
			exports[c.result.ID] = c.exports
		}
		upscaled = upscaled || c.upscaled
		variations = variations || len(c.variants) > 0

		for _, f := range c.features {
			if !slices.Contains(features, f) {
				features = append(features, f)
			}
		}
	}

	return &Response{
		JobID:          id,
		BusinessName:   req.BusinessName,
		Industry:       req.Industry,
		Style:          req.Style,
		ColorScheme:    req.ColorScheme,
		TargetAudience: req.TargetAudience,
		Status:         StatusCompleted,
		BrandKit: BrandKit{
			Logos:        logos,
			ColorPalette: palette,
			Typography:   typography,
			Description:  description,
		},
		ProcessingTimeSeconds:    time.Since(start).Seconds(),
		CreatedAt:                start.UTC(),
		Logos:                    logos,
		ColorPalette:             palette.Colors,
		FontSuggestion:           typography.PrimaryFont,
		BrandDescription:         description,
		ExtractedColors:          graphics.DedupByHex(extracted, MaxExtractedColors),
		SocialMediaExports:       exports,
		UpscalingApplied:         upscaled,
		ColorVariationsAvailable: variations,
		EnhancementFeatures:      features,
		LogoSheetURL:             enhanced.sheetURL,
	}
}
