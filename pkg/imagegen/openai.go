package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"log/slog"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/JaimeStill/brandkit/pkg/graphics"
)

type openAIGenerator struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

func newOpenAI(cfg *Config, logger *slog.Logger) *openAIGenerator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.TimeoutDuration()}

	return &openAIGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger,
	}
}

func (g *openAIGenerator) Ready() bool { return true }

func (g *openAIGenerator) Generate(ctx context.Context, req Request) ([]image.Image, error) {
	prompt := req.Prompt
	if req.NegativePrompt != "" {
		prompt += ". Avoid: " + req.NegativePrompt
	}

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		N:              max(req.Count, 1),
		Size:           sizeFor(req.Width, req.Height),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, ErrNoImages
	}

	images := make([]image.Image, 0, len(resp.Data))
	for i, d := range resp.Data {
		data, err := base64.StdEncoding.DecodeString(d.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode image %d: %w", i, err)
		}
		img, err := graphics.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode image %d: %w", i, err)
		}
		images = append(images, img)
	}

	g.logger.Debug("images generated", "count", len(images), "model", g.model)
	return images, nil
}

func sizeFor(w, h int) string {
	switch {
	case w <= 256 && h <= 256:
		return openai.CreateImageSize256x256
	case w <= 512 && h <= 512:
		return openai.CreateImageSize512x512
	default:
		return openai.CreateImageSize1024x1024
	}
}
