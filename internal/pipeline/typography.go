package pipeline

import "slices"

type fontPair struct {
	primary, secondary string
}

type fontKey struct {
	trait, industry string
}

var industryFonts = map[fontKey]fontPair{
	{"professional", "technology"}: {"Inter", "Roboto"},
	{"creative", "fashion"}:        {"Playfair Display", "Montserrat"},
	{"friendly", "education"}:      {"Open Sans", "Lato"},
	{"modern", "technology"}:       {"Poppins", "Source Sans Pro"},
	{"trustworthy", "finance"}:     {"Georgia", "Times New Roman"},
	{"innovative", "technology"}:   {"Helvetica Neue", "Arial"},
}

var traitFonts = map[string]fontPair{
	"professional": {"Inter", "Roboto"},
	"creative":     {"Playfair Display", "Montserrat"},
	"friendly":     {"Open Sans", "Lato"},
	"modern":       {"Poppins", "Source Sans Pro"},
	"trustworthy":  {"Georgia", "Times New Roman"},
	"innovative":   {"Helvetica Neue", "Arial"},
}

var sansSerif = []string{"Inter", "Roboto", "Open Sans", "Lato", "Poppins", "Helvetica Neue", "Arial"}

// SelectTypography picks fonts by (trait, industry), then by trait alone,
// then Inter/Roboto.
func SelectTypography(trait, industry string) Typography {
	pair, ok := industryFonts[fontKey{trait, industry}]
	if !ok {
		pair, ok = traitFonts[trait]
	}
	if !ok {
		pair = fontPair{"Inter", "Roboto"}
	}

	family := "serif"
	if slices.Contains(sansSerif, pair.primary) {
		family = "sans-serif"
	}

	return Typography{
		PrimaryFont:   pair.primary,
		SecondaryFont: pair.secondary,
		FontFamily:    family,
		FontStyle:     "regular",
		Weight:        "400",
	}
}

func defaultTypography() Typography {
	return Typography{
		PrimaryFont:   "Inter",
		SecondaryFont: "Roboto",
		FontFamily:    "sans-serif",
		FontStyle:     "regular",
		Weight:        "400",
	}
}
