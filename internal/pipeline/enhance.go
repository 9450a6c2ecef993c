package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"path"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/brandkit/pkg/graphics"
)

const (
	extractColorCount = 6
	socialWorkers     = 4
	enhanceIncrement  = 0.05
)

type enhancement struct {
	logos    []*concept
	sheetURL string
}

// enhance runs the best-effort per-logo actions. A panic anywhere in the
// stage returns the input concepts unchanged.
func (p *Pipeline) enhance(ctx context.Context, jobID string, req *Request, concepts []*concept, logger *slog.Logger) (out enhancement) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("enhancement failed, returning logos unchanged", "panic", r)
			out = enhancement{logos: concepts}
		}
	}()

	logos := make([]*concept, len(concepts))
	for i, c := range concepts {
		logos[i] = p.enhanceLogo(ctx, jobID, req, c, logger.With("logo_id", c.result.ID))
	}

	out.logos = logos
	if p.cfg.LogoSheet {
		out.sheetURL = p.logoSheet(ctx, jobID, logos, logger)
	}
	return out
}

func (p *Pipeline) enhanceLogo(ctx context.Context, jobID string, req *Request, c *concept, logger *slog.Logger) *concept {
	e := c.clone()
	if e.image == nil {
		return e
	}

	prefix := path.Join("kits", jobID, e.result.ID)
	e.features = make([]string, 0, 5)

	if e.generated {
		attempt(logger, FeatureBackgroundCleanup, func() error {
			cleaned := graphics.CleanLogo(e.image)
			data, err := graphics.EncodePNG(cleaned)
			if err != nil {
				return err
			}
			e.image, e.png = cleaned, data
			e.features = append(e.features, FeatureBackgroundCleanup)
			return nil
		})
	}

	e.result.URL = p.publishBytes(ctx, prefix+"/logo.png", e.png, graphics.ContentTypePNG, e.result.URL, logger)
	e.result.ThumbnailURL = p.publish(ctx, prefix+"/thumbnail.png", graphics.Thumbnail(e.image, p.cfg.ThumbnailSize), e.result.ThumbnailURL, logger)

	attempt(logger, FeatureColorExtraction, func() error {
		colors, err := p.rt.Extractor.Extract(ctx, e.image, extractColorCount)
		if err != nil || len(colors) == 0 {
			logger.Warn("color extraction failed, using defaults", "error", err)
			colors = graphics.DefaultColors()
		}
		e.colors = colors
		e.result.Metadata["extracted_colors"] = colors
		e.features = append(e.features, FeatureColorExtraction)
		return nil
	})

	if p.cfg.ColorVariations {
		attempt(logger, FeatureColorVariations, func() error {
			n := min(graphics.MaxVariants, 2*req.NumVariations)
			for i, v := range graphics.Variants(e.image, n) {
				key := fmt.Sprintf("%s/variant-%d.png", prefix, i+1)
				e.variants = append(e.variants, ColorVariant{
					HueShift:   v.HueShift,
					Saturation: v.Saturation,
					URL:        p.publish(ctx, key, v.Image, "", logger),
				})
			}
			e.result.Metadata["color_variations"] = e.variants
			e.features = append(e.features, FeatureColorVariations)
			return nil
		})
	}

	if p.cfg.Upscaling {
		attempt(logger, FeatureUpscaling, func() error {
			up := p.upscale(ctx, e.image, req, logger)
			e.upscaled = true
			e.result.Metadata["upscaled"] = true
			e.result.Metadata["upscaled_url"] = p.publish(ctx, prefix+"/upscaled.png", up, "", logger)
			e.features = append(e.features, FeatureUpscaling)
			return nil
		})
	}

	if p.cfg.SocialExports {
		attempt(logger, FeatureSocialExports, func() error {
			exports, err := p.socialExports(ctx, prefix, e.image, logger)
			if err != nil {
				return err
			}
			e.exports = exports
			e.result.Metadata["social_exports"] = exports
			e.features = append(e.features, FeatureSocialExports)
			return nil
		})
	}

	e.result.Metadata["enhanced"] = true
	e.result.Metadata["enhancement_features"] = e.features
	e.result.StyleConfidence = clampScore(e.result.StyleConfidence + enhanceIncrement)
	e.result.QualityScore = clampScore(e.result.QualityScore + enhanceIncrement)

	return e
}

func (p *Pipeline) upscale(ctx context.Context, img image.Image, req *Request, logger *slog.Logger) image.Image {
	if p.rt.Upscaler != nil {
		up, err := p.rt.Upscaler.Upscale(ctx, img, BuildPrompt(req))
		if err == nil && up != nil {
			return up
		}
		logger.Warn("upscaler failed, using 2x resize", "error", err)
	}
	return graphics.Double(img)
}

func (p *Pipeline) socialExports(ctx context.Context, prefix string, img image.Image, logger *slog.Logger) (map[string]string, error) {
	var mu sync.Mutex
	exports := make(map[string]string, len(graphics.SocialFormats))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(socialWorkers)

	for _, f := range graphics.SocialFormats {
		g.Go(func() error {
			canvas := graphics.RenderSocial(img, f)
			url := p.publish(gctx, fmt.Sprintf("%s/social/%s.png", prefix, f.Name), canvas, "", logger)
			if url == "" {
				return fmt.Errorf("render %s: empty export", f.Name)
			}

			mu.Lock()
			exports[f.Name] = url
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return exports, nil
}

func (p *Pipeline) logoSheet(ctx context.Context, jobID string, logos []*concept, logger *slog.Logger) string {
	var pages [][]byte
	for _, c := range logos {
		if c.png != nil {
			pages = append(pages, c.png)
		}
	}
	if len(pages) == 0 {
		return ""
	}

	pdf, err := graphics.LogoSheet(pages)
	if err != nil {
		logger.Warn("logo sheet failed", "error", err)
		return ""
	}

	key := path.Join("kits", jobID, "logo-sheet.pdf")
	return p.publishBytes(ctx, key, pdf, graphics.ContentTypePDF, "", logger)
}

// publish encodes img as PNG and stores it under key. See publishBytes.
func (p *Pipeline) publish(ctx context.Context, key string, img image.Image, fallback string, logger *slog.Logger) string {
	data, err := graphics.EncodePNG(img)
	if err != nil {
		logger.Warn("encode asset failed", "key", key, "error", err)
		return fallback
	}
	return p.publishBytes(ctx, key, data, graphics.ContentTypePNG, fallback, logger)
}

// publishBytes uploads data and returns its storage URL. When storage is
// absent or fails it returns fallback, or a data URL of data when fallback
// is empty.
func (p *Pipeline) publishBytes(ctx context.Context, key string, data []byte, contentType, fallback string, logger *slog.Logger) string {
	if fallback == "" {
		fallback = graphics.DataURL(contentType, data)
	}

	if p.rt.Storage == nil || !p.rt.Storage.Ready() {
		return fallback
	}

	if err := p.rt.Storage.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		logger.Warn("asset upload failed, embedding", "key", key, "error", err)
		return fallback
	}

	url, err := p.rt.Storage.URL(ctx, key)
	if err != nil {
		logger.Warn("asset url failed, embedding", "key", key, "error", err)
		return fallback
	}
	return url
}

// attempt runs one enhancement action, logging its error or panic without
// propagating either.
func attempt(logger *slog.Logger, action string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("enhancement action panicked", "action", action, "panic", r)
		}
	}()

	if err := fn(); err != nil {
		logger.Warn("enhancement action failed", "action", action, "error", err)
	}
}
