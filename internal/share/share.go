// Package share emails a summary of a generated brand kit to a recipient.
package share

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JaimeStill/brandkit/pkg/graphics"
)

// StatusQueued is the receipt status for an accepted share request.
const StatusQueued = "email_queued"

// ErrInvalidEmail indicates an address without "@" or ".".
var ErrInvalidEmail = errors.New("invalid email format")

// MapHTTPStatus maps share errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidEmail) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Request asks for a brand summary to be emailed to Email.
type Request struct {
	Email     string  `json:"email"`
	BrandData Summary `json:"brand_data"`
	Message   string  `json:"message,omitempty"`
}

// Validate rejects addresses missing "@" or ".".
func (r *Request) Validate() error {
	if !strings.Contains(r.Email, "@") || !strings.Contains(r.Email, ".") {
		return ErrInvalidEmail
	}
	return nil
}

// Receipt acknowledges a queued email.
type Receipt struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Email   string `json:"email"`
}

// Summary is the subset of a brand response rendered into the email.
// Clients post back what they received, so every field is optional.
type Summary struct {
	BusinessName             string         `json:"business_name"`
	Industry                 string         `json:"industry"`
	Style                    string         `json:"style"`
	ColorScheme              string         `json:"color_scheme"`
	TargetAudience           string         `json:"target_audience"`
	BrandDescription         string         `json:"brand_description"`
	ColorPalette             HexList        `json:"color_palette"`
	ExtractedColors          HexList        `json:"extracted_colors"`
	FontSuggestion           string         `json:"font_suggestion"`
	UpscalingApplied         bool           `json:"upscaling_applied"`
	ColorVariationsAvailable bool           `json:"color_variations_available"`
	SocialMediaExports       map[string]any `json:"social_media_exports"`
	EnhancementFeatures      []string       `json:"enhancement_features"`
}

// HexList is a list of #RRGGBB colors. It unmarshals from an array of
// strings or an array of {"hex": ...} objects and drops invalid entries.
type HexList []string

// UnmarshalJSON accepts either list form.
func (h *HexList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(HexList, 0, len(raw))
	for _, item := range raw {
		var value string
		if err := json.Unmarshal(item, &value); err != nil {
			var obj struct {
				Hex string `json:"hex"`
			}
			if err := json.Unmarshal(item, &obj); err != nil {
				continue
			}
			value = obj.Hex
		}

		c, err := graphics.ParseHex(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		out = append(out, graphics.Hex(c))
	}

	*h = out
	return nil
}
