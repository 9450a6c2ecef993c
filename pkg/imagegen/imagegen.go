// Package imagegen produces logo images from text prompts.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
)

var (
	ErrUnavailable = errors.New("image generator unavailable")
	ErrNoImages    = errors.New("generator returned no images")
)

// Request describes one generation call. Seed, Steps and GuidanceScale are
// advisory; backends that cannot honor them ignore them.
type Request struct {
	Prompt         string
	NegativePrompt string
	Count          int
	Width          int
	Height         int
	Seed           int64
	Steps          int
	GuidanceScale  float64
}

// Generator renders Count images for a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]image.Image, error)
	Ready() bool
}

// New returns the generator selected by cfg.Provider.
func New(cfg *Config, logger *slog.Logger) (Generator, error) {
	logger = logger.With("system", "imagegen", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderOpenAI:
		return newOpenAI(cfg, logger), nil
	case ProviderNone:
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown image provider %q", cfg.Provider)
	}
}

// Disabled always fails with ErrUnavailable, leaving callers on their
// fallback path.
type Disabled struct{}

func (Disabled) Generate(context.Context, Request) ([]image.Image, error) {
	return nil, ErrUnavailable
}

func (Disabled) Ready() bool { return false }

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req Request) ([]image.Image, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) ([]image.Image, error) {
	return f(ctx, req)
}

func (f GeneratorFunc) Ready() bool { return true }
