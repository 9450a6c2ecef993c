package brand

// Option is a selectable request value with its display name.
type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ColorSchemeOption is a color scheme with a preview of its tones.
type ColorSchemeOption struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	SampleColors []string `json:"sample_colors"`
}

// Example is a ready-made request preset.
type Example struct {
	BusinessName      string   `json:"business_name"`
	Industry          string   `json:"industry"`
	Style             string   `json:"style"`
	ColorScheme       string   `json:"color_scheme"`
	PersonalityTraits []string `json:"personality_traits"`
	TargetAudience    string   `json:"target_audience"`
	Description       string   `json:"description"`
}

// Styles lists the logo styles.
func Styles() []Option {
	return []Option{
		{ID: "minimal", Name: "Minimal", Description: "Clean and simple with minimal elements"},
		{ID: "geometric", Name: "Geometric", Description: "Uses geometric shapes and mathematical precision"},
		{ID: "text-based", Name: "Text-based", Description: "Focus on typography and lettering design"},
		{ID: "symbolic", Name: "Symbolic", Description: "Symbolic representation of brand concept"},
		{ID: "abstract", Name: "Abstract", Description: "Abstract forms and creative interpretation"},
		{ID: "classic", Name: "Classic", Description: "Timeless, traditional design principles"},
	}
}

// Industries lists the supported industries.
func Industries() []Option {
	return []Option{
		{ID: "technology", Name: "Technology"},
		{ID: "healthcare", Name: "Healthcare"},
		{ID: "education", Name: "Education"},
		{ID: "finance", Name: "Finance"},
		{ID: "retail", Name: "Retail"},
		{ID: "food", Name: "Food & Beverage"},
		{ID: "fashion", Name: "Fashion"},
		{ID: "automotive", Name: "Automotive"},
		{ID: "real-estate", Name: "Real Estate"},
		{ID: "consulting", Name: "Consulting"},
		{ID: "creative", Name: "Creative Services"},
		{ID: "other", Name: "Other"},
	}
}

// Personalities lists the personality traits.
func Personalities() []Option {
	return []Option{
		{ID: "professional", Name: "Professional"},
		{ID: "creative", Name: "Creative"},
		{ID: "friendly", Name: "Friendly"},
		{ID: "modern", Name: "Modern"},
		{ID: "trustworthy", Name: "Trustworthy"},
		{ID: "innovative", Name: "Innovative"},
	}
}

// ColorSchemes lists the color schemes with sample tones.
func ColorSchemes() []ColorSchemeOption {
	return []ColorSchemeOption{
		{
			ID:           "warm",
			Name:         "Warm tones",
			Description:  "Warm autumn colors like burnt orange, golden amber, and deep maroon",
			SampleColors: []string{"#D2691E", "#CC5500", "#FFB000"},
		},
		{
			ID:           "cool",
			Name:         "Cool tones",
			Description:  "Cool colors like blues and teals",
			SampleColors: []string{"#4A90E2", "#357ABD", "#2E86C1"},
		},
		{
			ID:           "neutral",
			Name:         "Neutral tones",
			Description:  "Neutral colors like grays, whites, and earth tones",
			SampleColors: []string{"#6B6B6B", "#8B8B8B", "#A0A0A0"},
		},
		{
			ID:           "vibrant",
			Name:         "Vibrant colors",
			Description:  "Vibrant and energetic colors",
			SampleColors: []string{"#FF6B6B", "#4ECDC4", "#45B7D1"},
		},
	}
}

// Examples lists request presets for inspiration.
func Examples() []Example {
	return []Example{
		{
			BusinessName:      "TechFlow Solutions",
			Industry:          "technology",
			Style:             "minimal",
			ColorScheme:       "cool",
			PersonalityTraits: []string{"professional", "innovative"},
			TargetAudience:    "businesses",
			Description:       "A clean, professional tech consulting brand with cool blue tones",
		},
		{
			BusinessName:      "Bloom & Co",
			Industry:          "fashion",
			Style:             "abstract",
			ColorScheme:       "warm",
			PersonalityTraits: []string{"creative", "friendly"},
			TargetAudience:    "young-adults",
			Description:       "A creative fashion brand with warm, inviting colors",
		},
		{
			BusinessName:      "Sterling Finance",
			Industry:          "finance",
			Style:             "classic",
			ColorScheme:       "neutral",
			PersonalityTraits: []string{"trustworthy", "professional"},
			TargetAudience:    "professionals",
			Description:       "A traditional, trustworthy financial services brand",
		},
	}
}
