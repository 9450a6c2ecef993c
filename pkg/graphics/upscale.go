package graphics

import (
	"context"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Upscaler enlarges an image. The prompt describes the image content for
// upscalers that condition on text.
type Upscaler interface {
	Upscale(ctx context.Context, img image.Image, prompt string) (image.Image, error)
}

// LanczosUpscaler resizes by Factor with a Lanczos filter and sharpens the result.
type LanczosUpscaler struct {
	Factor int
}

func (u LanczosUpscaler) Upscale(ctx context.Context, img image.Image, _ string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := max(u.Factor, 2)
	b := img.Bounds()
	out := imaging.Resize(img, b.Dx()*f, b.Dy()*f, imaging.Lanczos)
	return imaging.Sharpen(out, 0.5), nil
}

// Double returns img at twice its size using nearest-neighbor sampling.
func Double(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*2, b.Dy()*2))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
