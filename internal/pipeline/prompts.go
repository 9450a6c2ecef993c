package pipeline

import (
	"fmt"
	"hash/fnv"
	"strings"
)

const (
	defaultStyleClause    = "minimalist design"
	defaultIndustryClause = "professional symbols"
	seedStride            = 1000
	seedModulus           = 1 << 31
)

var styleClauses = map[string]string{
	"minimal":    "clean minimalist design, simple geometric shapes, flat design",
	"geometric":  "precise geometric shapes, mathematical balance, flat design",
	"text-based": "custom typography, distinctive lettermark, clean wordmark",
	"symbolic":   "iconic symbol, meaningful emblem, simple brand mark",
	"abstract":   "creative artistic design, unique abstract shapes",
	"classic":    "timeless classic typography, traditional emblem, refined details",
}

var industryClauses = map[string]string{
	"technology":  "circuit patterns, digital elements, tech symbols",
	"healthcare":  "care symbols, clean design, trustworthy feel",
	"education":   "knowledge symbols, open book motif, growth elements",
	"finance":     "trust symbols, stability elements, professional look",
	"retail":      "shopping elements, friendly shapes, approachable feel",
	"food":        "organic shapes, food icons, appetite appeal",
	"fashion":     "elegant typography, style elements, luxury feel",
	"automotive":  "dynamic movement, speed lines, precision engineering",
	"real-estate": "architectural lines, rooftop motif, solid foundation",
	"consulting":  "growth chart motif, corporate elements, clarity",
	"creative":    "artistic elements, creative symbols, imaginative design",
}

var qualityPhrases = []string{
	"high quality vector style",
	"clean white background",
	"professional branding",
	"scalable design",
	"business logo",
	"corporate identity",
}

var undesiredQualities = []string{
	"blurry", "pixelated", "low quality", "text artifacts",
	"complex details", "realistic photo", "3d render",
	"multiple logos", "watermark", "signature",
}

var industryDenylist = map[string][]string{
	"technology":  {"cartoon robots", "computer clip art"},
	"healthcare":  {"syringes", "blood", "pills"},
	"education":   {"apple clip art", "chalkboards"},
	"finance":     {"dollar bills", "coin piles"},
	"food":        {"realistic food photos", "cutlery clip art"},
	"fashion":     {"mannequins", "clothing photos"},
	"automotive":  {"realistic cars", "tires"},
	"real-estate": {"realistic houses", "keys"},
}

// BuildPrompt composes the text-to-image prompt for a request.
func BuildPrompt(r *Request) string {
	style, ok := styleClauses[r.Style]
	if !ok {
		style = defaultStyleClause
	}
	industry, ok := industryClauses[r.Industry]
	if !ok {
		industry = defaultIndustryClause
	}

	return fmt.Sprintf(
		"professional logo design for %s, %s company, %s, %s, %s, %s personality",
		r.BusinessName, r.Industry, style, industry,
		strings.Join(qualityPhrases, ", "), r.PrimaryTrait(),
	)
}

// BuildNegativePrompt composes the negative prompt: fixed undesired
// qualities, the industry denylist, then the caller's own negative prompt.
func BuildNegativePrompt(r *Request) string {
	parts := append([]string{}, undesiredQualities...)
	parts = append(parts, industryDenylist[r.Industry]...)
	if r.NegativePrompt != "" {
		parts = append(parts, r.NegativePrompt)
	}
	return strings.Join(parts, ", ")
}

// Seed returns the deterministic generation seed for logo slot index:
// (fnv1a32(name) + index*1000) mod 2^31.
func Seed(name string, index int) int64 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return (int64(h.Sum32()) + int64(index)*seedStride) % seedModulus
}

func truncatePrompt(s string) string {
	r := []rune(s)
	if len(r) <= 100 {
		return s
	}
	return string(r[:100]) + "..."
}
