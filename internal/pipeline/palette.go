package pipeline

var schemePalettes = map[string][4]string{
	"warm":    {"#D2691E", "#CC5500", "#FFB000", "#8B4513"},
	"cool":    {"#4A90E2", "#357ABD", "#2E86C1", "#708090"},
	"neutral": {"#6B6B6B", "#8B8B8B", "#A0A0A0", "#D3D3D3"},
	"vibrant": {"#FF6B6B", "#4ECDC4", "#45B7D1", "#95A5A6"},
}

var fallbackPalette = [4]string{"#333333", "#666666", "#999999", "#CCCCCC"}

// Palette returns the palette for a color scheme. Unknown schemes use neutral.
func Palette(scheme string) ColorPalette {
	p, ok := schemePalettes[scheme]
	if !ok {
		p = schemePalettes["neutral"]
	}
	return newPalette(p)
}

// SchemeColors returns the four placeholder colors for a scheme, or the
// gray fallback when the scheme is unknown.
func SchemeColors(scheme string) [4]string {
	if p, ok := schemePalettes[scheme]; ok {
		return p
	}
	return fallbackPalette
}

func defaultPalette() ColorPalette {
	return newPalette(fallbackPalette)
}

func newPalette(p [4]string) ColorPalette {
	return ColorPalette{
		Primary:   p[0],
		Secondary: p[1],
		Accent:    p[2],
		Neutral:   p[3],
		Colors:    []string{p[0], p[1], p[2], p[3]},
	}
}
