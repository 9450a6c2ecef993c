package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/brandkit/pkg/graphics"
	"github.com/JaimeStill/brandkit/pkg/imagegen"
)

// HardFallbackURL is a 512×512 gray SVG used when no raster placeholder
// can be produced.
const HardFallbackURL = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iNTEyIiBoZWlnaHQ9IjUxMiIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj48cmVjdCB3aWR0aD0iMTAwJSIgaGVpZ2h0PSIxMDAlIiBmaWxsPSIjY2NjIi8+PHRleHQgeD0iNTAlIiB5PSI1MCUiIGZvbnQtZmFtaWx5PSJBcmlhbCwgc2Fucy1zZXJpZiIgZm9udC1zaXplPSIxOCIgZmlsbD0iIzMzMyIgdGV4dC1hbmNob3I9Im1pZGRsZSIgZHk9Ii4zZW0iPkxvZ28gUGxhY2Vob2xkZXI8L3RleHQ+PC9zdmc+"

// concept is a logo moving through the stages. image is nil for the hard
// fallback, which skips enhancement.
type concept struct {
	result    LogoResult
	image     image.Image
	png       []byte
	generated bool

	colors   []graphics.Color
	variants []ColorVariant
	upscaled bool
	exports  map[string]string
	features []string
}

func (c *concept) clone() *concept {
	cp := *c
	cp.result.Metadata = maps.Clone(c.result.Metadata)
	return &cp
}

func (p *Pipeline) generateLogos(ctx context.Context, req *Request, logger *slog.Logger) ([]*concept, error) {
	prompt := BuildPrompt(req)
	negative := BuildNegativePrompt(req)
	ready := p.rt.Generator.Ready()

	if !ready {
		logger.Info("image generator unavailable, using placeholders")
	}

	concepts := make([]*concept, 0, req.NumLogos)
	for i := range req.NumLogos {
		if ready {
			if i > 0 && p.cfg.Pacing > 0 {
				pace(ctx, p.cfg.Pacing)
			}

			c, err := p.generateConcept(ctx, req, i, prompt, negative)
			if err == nil {
				concepts = append(concepts, c)
				continue
			}
			logger.Warn("logo generation failed, using placeholder", "index", i, "error", err)
		}

		c, err := p.placeholderConcept(req, i)
		if err != nil {
			return nil, err
		}
		concepts = append(concepts, c)
	}

	return concepts, nil
}

func (p *Pipeline) generateConcept(ctx context.Context, req *Request, index int, prompt, negative string) (*concept, error) {
	seed := Seed(req.BusinessName, index)

	images, err := p.rt.Generator.Generate(ctx, imagegen.Request{
		Prompt:         prompt,
		NegativePrompt: negative,
		Count:          1,
		Width:          p.cfg.Width,
		Height:         p.cfg.Height,
		Seed:           seed,
		Steps:          p.cfg.Steps,
		GuidanceScale:  p.cfg.GuidanceScale,
	})
	if err != nil {
		return nil, err
	}
	if len(images) == 0 || images[0] == nil {
		return nil, imagegen.ErrNoImages
	}

	c, err := p.newConcept(req, index, images[0], GeneratedWithModel)
	if err != nil {
		return nil, err
	}
	c.generated = true
	c.result.Metadata["seed"] = seed
	return c, nil
}

// placeholderConcept paints a flat square in the scheme color for index.
// Encoding failures fall through to HardFallbackURL; only a panic escapes
// as ErrLogoGeneration.
func (p *Pipeline) placeholderConcept(req *Request, index int) (c *concept, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("%w: placeholder: %v", ErrLogoGeneration, r)
		}
	}()

	colors := SchemeColors(req.ColorScheme)
	img, err := graphics.SolidHex(p.cfg.Width, p.cfg.Height, colors[index%len(colors)])
	if err != nil {
		return hardFallbackConcept(req, index), nil
	}

	c, err = p.newConcept(req, index, img, GeneratedWithPlaceholder)
	if err != nil {
		return hardFallbackConcept(req, index), nil
	}
	return c, nil
}

func (p *Pipeline) newConcept(req *Request, index int, img image.Image, method string) (*concept, error) {
	data, err := graphics.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	thumb, err := graphics.EncodePNG(graphics.Thumbnail(img, p.cfg.ThumbnailSize))
	if err != nil {
		return nil, err
	}

	return &concept{
		result: LogoResult{
			ID:              uuid.NewString(),
			URL:             graphics.DataURL(graphics.ContentTypePNG, data),
			ThumbnailURL:    graphics.DataURL(graphics.ContentTypePNG, thumb),
			StyleConfidence: clampScore(0.85 + float64(index)*0.05),
			QualityScore:    clampScore(0.90 + float64(index)*0.02),
			Metadata:        baseMetadata(req, method),
		},
		image: img,
		png:   data,
	}, nil
}

func hardFallbackConcept(req *Request, index int) *concept {
	return &concept{
		result: LogoResult{
			ID:              uuid.NewString(),
			URL:             HardFallbackURL,
			ThumbnailURL:    HardFallbackURL,
			StyleConfidence: clampScore(0.85 + float64(index)*0.05),
			QualityScore:    clampScore(0.90 + float64(index)*0.02),
			Metadata:        baseMetadata(req, GeneratedWithPlaceholder),
		},
	}
}

func baseMetadata(req *Request, method string) map[string]any {
	return map[string]any{
		"style":          req.Style,
		"industry":       req.Industry,
		"prompt_used":    truncatePrompt(req.Prompt),
		"generated_with": method,
	}
}

func pace(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
