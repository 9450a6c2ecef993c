package graphics

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Hue shifts (degrees) and saturation multipliers are paired by index.
var (
	HueShifts         = [6]float64{0, 30, 60, 120, 180, 240}
	SaturationFactors = [6]float64{1.2, 0.8, 1.0, 1.1, 0.9, 1.3}
)

// MaxVariants is the number of hue/saturation pairs available.
const MaxVariants = len(HueShifts)

// Variant is a recolored copy of a logo.
type Variant struct {
	HueShift   float64      `json:"hue_shift"`
	Saturation float64      `json:"saturation"`
	Image      *image.NRGBA `json:"-"`
}

// Variants returns the first n hue/saturation variants of img.
func Variants(img image.Image, n int) []Variant {
	n = max(min(n, MaxVariants), 0)

	out := make([]Variant, 0, n)
	for i := range n {
		out = append(out, Variant{
			HueShift:   HueShifts[i],
			Saturation: SaturationFactors[i],
			Image:      ShiftHSV(img, HueShifts[i], SaturationFactors[i]),
		})
	}
	return out
}

// ShiftHSV rotates hue by shift degrees and scales saturation by factor,
// clamping saturation to [0,1]. Alpha is preserved.
func ShiftHSV(img image.Image, shift, factor float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		h, s, v := colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}.Hsv()

		h = math.Mod(h+shift, 360)
		if h < 0 {
			h += 360
		}
		s = min(max(s*factor, 0), 1)

		r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: c.A}
	})
}
