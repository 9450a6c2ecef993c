package graphics

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Solid returns a width×height image filled with c.
func Solid(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

// SolidHex is Solid with a #RRGGBB color.
func SolidHex(width, height int, hex string) (*image.NRGBA, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return nil, err
	}
	return Solid(width, height, c), nil
}
