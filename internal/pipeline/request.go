package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Closed value sets accepted in a Request.
var (
	Industries = []string{
		"technology", "healthcare", "education", "finance", "retail", "food",
		"fashion", "automotive", "real-estate", "consulting", "creative", "other",
	}
	Styles       = []string{"minimal", "geometric", "text-based", "symbolic", "abstract", "classic"}
	ColorSchemes = []string{"warm", "cool", "neutral", "vibrant"}
	Traits       = []string{"professional", "creative", "friendly", "modern", "trustworthy", "innovative"}
	Audiences    = []string{"young-adults", "professionals", "families", "seniors", "businesses", "global"}
)

// Request bounds.
const (
	MaxNameLength     = 100
	MaxTraits         = 6
	MinPromptLength   = 10
	MaxPromptLength   = 2000
	MinPromptWords    = 3
	MinNegativeLength = 5
	MaxNegativeLength = 1000
	MaxNotesLength    = 500
	DefaultNumLogos   = 3
	MaxNumLogos       = 5
	DefaultVariations = 1
	MaxVariations     = 3
)

// Request is a brand kit request. It is treated as immutable once
// Normalize and Validate have succeeded.
type Request struct {
	BusinessName      string   `json:"business_name"`
	Industry          string   `json:"industry"`
	Style             string   `json:"style"`
	ColorScheme       string   `json:"color_scheme"`
	PersonalityTraits []string `json:"personality_traits"`
	TargetAudience    string   `json:"target_audience"`
	Prompt            string   `json:"prompt"`
	NegativePrompt    string   `json:"negative_prompt"`
	Notes             string   `json:"additional_notes,omitempty"`
	NumLogos          int      `json:"num_logos"`
	NumVariations     int      `json:"num_variations"`
}

// UnmarshalJSON applies the count defaults only when the fields are absent,
// so an explicit zero reaches Validate.
func (r *Request) UnmarshalJSON(data []byte) error {
	type plain Request
	p := plain{
		NumLogos:      DefaultNumLogos,
		NumVariations: DefaultVariations,
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Request(p)
	return nil
}

// Normalize trims free text.
func (r *Request) Normalize() {
	r.BusinessName = strings.TrimSpace(r.BusinessName)
	r.Prompt = strings.TrimSpace(r.Prompt)
	r.NegativePrompt = strings.TrimSpace(r.NegativePrompt)
	r.Notes = strings.TrimSpace(r.Notes)
}

// Validate reports every rule the request breaks, joined and wrapped in
// ErrInvalidRequest.
func (r *Request) Validate() error {
	var errs []error

	n := utf8.RuneCountInString(r.BusinessName)
	switch {
	case n == 0:
		errs = append(errs, errors.New("business_name is required"))
	case n > MaxNameLength:
		errs = append(errs, fmt.Errorf("business_name exceeds %d characters", MaxNameLength))
	}

	errs = appendEnum(errs, "industry", r.Industry, Industries)
	errs = appendEnum(errs, "style", r.Style, Styles)
	errs = appendEnum(errs, "color_scheme", r.ColorScheme, ColorSchemes)
	errs = appendEnum(errs, "target_audience", r.TargetAudience, Audiences)

	switch {
	case len(r.PersonalityTraits) == 0:
		errs = append(errs, errors.New("personality_traits requires at least one trait"))
	case len(r.PersonalityTraits) > MaxTraits:
		errs = append(errs, fmt.Errorf("personality_traits allows at most %d traits", MaxTraits))
	}
	for _, t := range r.PersonalityTraits {
		errs = appendEnum(errs, "personality_traits", t, Traits)
	}

	n = utf8.RuneCountInString(r.Prompt)
	switch {
	case n < MinPromptLength || n > MaxPromptLength:
		errs = append(errs, fmt.Errorf("prompt must be %d-%d characters", MinPromptLength, MaxPromptLength))
	case len(strings.Fields(r.Prompt)) < MinPromptWords:
		errs = append(errs, fmt.Errorf("prompt must contain at least %d words", MinPromptWords))
	}

	n = utf8.RuneCountInString(r.NegativePrompt)
	if n < MinNegativeLength || n > MaxNegativeLength {
		errs = append(errs, fmt.Errorf("negative_prompt must be %d-%d characters", MinNegativeLength, MaxNegativeLength))
	}

	if utf8.RuneCountInString(r.Notes) > MaxNotesLength {
		errs = append(errs, fmt.Errorf("additional_notes exceeds %d characters", MaxNotesLength))
	}

	if r.NumLogos < 1 || r.NumLogos > MaxNumLogos {
		errs = append(errs, fmt.Errorf("num_logos must be 1-%d", MaxNumLogos))
	}
	if r.NumVariations < 1 || r.NumVariations > MaxVariations {
		errs = append(errs, fmt.Errorf("num_variations must be 1-%d", MaxVariations))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, errors.Join(errs...))
	}
	return nil
}

// PrimaryTrait returns the first personality trait, or "professional".
func (r *Request) PrimaryTrait() string {
	if len(r.PersonalityTraits) == 0 {
		return "professional"
	}
	return r.PersonalityTraits[0]
}

func appendEnum(errs []error, field, value string, allowed []string) []error {
	if !slices.Contains(allowed, value) {
		return append(errs, fmt.Errorf("%s %q is not one of %s", field, value, strings.Join(allowed, ", ")))
	}
	return errs
}
