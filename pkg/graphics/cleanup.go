package graphics

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// WhiteThreshold is the channel value above which a pixel is treated as background.
const WhiteThreshold = 240

// ClearBackground makes every pixel whose red, green and blue channels all
// exceed threshold fully transparent.
func ClearBackground(img image.Image, threshold uint8) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		if c.R > threshold && c.G > threshold && c.B > threshold {
			return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0}
		}
		return c
	})
}

// CleanLogo prepares a generated image for use as a logo: the near-white
// background is cleared and edges are sharpened.
func CleanLogo(img image.Image) *image.NRGBA {
	return imaging.Sharpen(ClearBackground(img, WhiteThreshold), 1.0)
}
