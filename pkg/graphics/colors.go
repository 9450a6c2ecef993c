package graphics

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrNoColors indicates an image with no opaque pixels to sample.
var ErrNoColors = errors.New("no opaque pixels to sample")

// Color is a dominant color with its CSS name.
type Color struct {
	Hex  string   `json:"hex"`
	RGB  [3]uint8 `json:"rgb"`
	Name string   `json:"name"`
}

// NewColor converts c to a Color named after its nearest CSS color.
func NewColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		Hex:  Hex(n),
		RGB:  [3]uint8{n.R, n.G, n.B},
		Name: ColorName(n),
	}
}

// DefaultColors is the fallback when extraction fails.
func DefaultColors() []Color {
	return []Color{
		{Hex: "#808080", RGB: [3]uint8{128, 128, 128}, Name: "gray"},
		{Hex: "#A9A9A9", RGB: [3]uint8{169, 169, 169}, Name: "darkgray"},
		{Hex: "#FF7F50", RGB: [3]uint8{255, 127, 80}, Name: "coral"},
		{Hex: "#40E0D0", RGB: [3]uint8{64, 224, 208}, Name: "turquoise"},
		{Hex: "#D3D3D3", RGB: [3]uint8{211, 211, 211}, Name: "lightgray"},
		{Hex: "#696969", RGB: [3]uint8{105, 105, 105}, Name: "dimgray"},
	}
}

// ColorName returns the CSS color name perceptually closest to c.
func ColorName(c color.Color) string {
	target, _ := colorful.MakeColor(opaque(c))

	best, bestDist := "", math.Inf(1)
	for _, name := range colornames.Names {
		ref, _ := colorful.MakeColor(colornames.Map[name])
		dist := target.DistanceLab(ref)

		if dist < bestDist {
			best, bestDist = name, dist
		}
		if dist == 0 {
			break
		}
	}
	return best
}

func opaque(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}

// Extractor returns the n most dominant colors of an image.
type Extractor interface {
	Extract(ctx context.Context, img image.Image, n int) ([]Color, error)
}

// KMeansExtractor clusters the opaque pixels of a downsampled copy of an
// image and ranks the clusters by population.
type KMeansExtractor struct {
	SampleSize int
}

// NewExtractor returns a KMeansExtractor with the default sample size.
func NewExtractor() *KMeansExtractor {
	return &KMeansExtractor{SampleSize: prominentcolor.DefaultSize}
}

func (e *KMeansExtractor) Extract(ctx context.Context, img image.Image, n int) ([]Color, error) {
	if n < 1 {
		return nil, nil
	}

	size := e.SampleSize
	if size < 1 {
		size = prominentcolor.DefaultSize
	}
	strip, distinct := opaqueStrip(imaging.Fit(img, size, size, imaging.NearestNeighbor))
	if distinct == 0 {
		return nil, ErrNoColors
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, err := prominentcolor.KmeansWithAll(
		min(n, distinct),
		strip,
		prominentcolor.ArgumentNoCropping|prominentcolor.ArgumentAverageMean,
		uint(strip.Bounds().Dx()),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("cluster colors: %w", err)
	}

	slices.SortStableFunc(items, func(a, b prominentcolor.ColorItem) int {
		return cmp.Compare(b.Cnt, a.Cnt)
	})

	colors := make([]Color, 0, len(items))
	for _, it := range items {
		colors = append(colors, NewColor(color.NRGBA{
			R: uint8(min(it.Color.R, 255)),
			G: uint8(min(it.Color.G, 255)),
			B: uint8(min(it.Color.B, 255)),
			A: 0xff,
		}))
	}
	return colors, nil
}

// opaqueStrip packs the mostly opaque pixels of img into a single row so
// transparent background never reaches the clustering step. It also
// reports how many distinct colors the row holds.
func opaqueStrip(img *image.NRGBA) (*image.NRGBA, int) {
	var pixels []color.NRGBA
	seen := make(map[color.NRGBA]struct{})

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if c.A < 128 {
				continue
			}
			c.A = 0xff
			pixels = append(pixels, c)
			seen[c] = struct{}{}
		}
	}

	strip := image.NewNRGBA(image.Rect(0, 0, max(len(pixels), 1), 1))
	for i, c := range pixels {
		strip.SetNRGBA(i, 0, c)
	}
	return strip, len(seen)
}

// DedupByHex returns colors with later duplicates of a hex value removed,
// truncated to limit entries. A limit of zero or less keeps every entry.
func DedupByHex(colors []Color, limit int) []Color {
	seen := make(map[string]struct{}, len(colors))
	out := make([]Color, 0, len(colors))

	for _, c := range colors {
		if _, ok := seen[c.Hex]; ok {
			continue
		}
		seen[c.Hex] = struct{}{}
		out = append(out, c)

		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
