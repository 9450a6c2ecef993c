package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/pkg/imagegen"
)

// Description writers.
const (
	DescriptionTemplate = "template"
	DescriptionOpenAI   = "openai"
)

const (
	EnvGenerationWidth               = "BRANDKIT_GENERATION_WIDTH"
	EnvGenerationHeight              = "BRANDKIT_GENERATION_HEIGHT"
	EnvGenerationSteps               = "BRANDKIT_GENERATION_STEPS"
	EnvGenerationGuidanceScale       = "BRANDKIT_GENERATION_GUIDANCE_SCALE"
	EnvGenerationPacing              = "BRANDKIT_GENERATION_PACING"
	EnvGenerationMaxConcurrentJobs   = "BRANDKIT_GENERATION_MAX_CONCURRENT_JOBS"
	EnvGenerationEnforceConcurrency  = "BRANDKIT_GENERATION_ENFORCE_CONCURRENCY"
	EnvGenerationDescriptionProvider = "BRANDKIT_GENERATION_DESCRIPTION_PROVIDER"
	EnvGenerationDescriptionModel    = "BRANDKIT_GENERATION_DESCRIPTION_MODEL"
)

var imageEnv = &imagegen.Env{
	Provider: "BRANDKIT_IMAGE_PROVIDER",
	BaseURL:  "BRANDKIT_IMAGE_BASE_URL",
	APIKey:   "BRANDKIT_IMAGE_API_KEY",
	Model:    "BRANDKIT_IMAGE_MODEL",
	Timeout:  "BRANDKIT_IMAGE_TIMEOUT",
}

// GenerationConfig holds the image backend and pipeline tuning. The
// enhancement toggles are pointers so an overlay can switch them off.
type GenerationConfig struct {
	Image               imagegen.Config `toml:"image"`
	Width               int             `toml:"width"`
	Height              int             `toml:"height"`
	Steps               int             `toml:"steps"`
	GuidanceScale       float64         `toml:"guidance_scale"`
	Pacing              string          `toml:"pacing"`
	ThumbnailSize       int             `toml:"thumbnail_size"`
	MaxConcurrentJobs   int             `toml:"max_concurrent_jobs"`
	EnforceConcurrency  bool            `toml:"enforce_concurrency"`
	ColorVariations     *bool           `toml:"color_variations"`
	Upscaling           *bool           `toml:"upscaling"`
	SocialExports       *bool           `toml:"social_exports"`
	LogoSheet           *bool           `toml:"logo_sheet"`
	DescriptionProvider string          `toml:"description_provider"`
	DescriptionModel    string          `toml:"description_model"`
}

// PacingDuration returns Pacing as a time.Duration.
func (c *GenerationConfig) PacingDuration() time.Duration {
	d, _ := time.ParseDuration(c.Pacing)
	return d
}

// Pipeline converts the finalized settings to a pipeline.Config.
func (c *GenerationConfig) Pipeline() pipeline.Config {
	return pipeline.Config{
		Width:              c.Width,
		Height:             c.Height,
		Steps:              c.Steps,
		GuidanceScale:      c.GuidanceScale,
		Pacing:             c.PacingDuration(),
		ThumbnailSize:      c.ThumbnailSize,
		MaxConcurrentJobs:  c.MaxConcurrentJobs,
		EnforceConcurrency: c.EnforceConcurrency,
		ColorVariations:    enabled(c.ColorVariations),
		Upscaling:          enabled(c.Upscaling),
		SocialExports:      enabled(c.SocialExports),
		LogoSheet:          enabled(c.LogoSheet),
	}
}

// Finalize applies defaults, environment variable overrides, and validation
// for generation settings and the nested image backend.
func (c *GenerationConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Image.Finalize(imageEnv); err != nil {
		return fmt.Errorf("image: %w", err)
	}
	if c.DescriptionProvider == DescriptionOpenAI && c.Image.APIKey == "" && c.Image.BaseURL == "" {
		return fmt.Errorf("openai description_provider requires image api_key or base_url")
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *GenerationConfig) Merge(overlay *GenerationConfig) {
	c.Image.Merge(&overlay.Image)

	if overlay.Width != 0 {
		c.Width = overlay.Width
	}
	if overlay.Height != 0 {
		c.Height = overlay.Height
	}
	if overlay.Steps != 0 {
		c.Steps = overlay.Steps
	}
	if overlay.GuidanceScale != 0 {
		c.GuidanceScale = overlay.GuidanceScale
	}
	if overlay.Pacing != "" {
		c.Pacing = overlay.Pacing
	}
	if overlay.ThumbnailSize != 0 {
		c.ThumbnailSize = overlay.ThumbnailSize
	}
	if overlay.MaxConcurrentJobs != 0 {
		c.MaxConcurrentJobs = overlay.MaxConcurrentJobs
	}
	if overlay.EnforceConcurrency {
		c.EnforceConcurrency = true
	}
	if overlay.ColorVariations != nil {
		c.ColorVariations = overlay.ColorVariations
	}
	if overlay.Upscaling != nil {
		c.Upscaling = overlay.Upscaling
	}
	if overlay.SocialExports != nil {
		c.SocialExports = overlay.SocialExports
	}
	if overlay.LogoSheet != nil {
		c.LogoSheet = overlay.LogoSheet
	}
	if overlay.DescriptionProvider != "" {
		c.DescriptionProvider = overlay.DescriptionProvider
	}
	if overlay.DescriptionModel != "" {
		c.DescriptionModel = overlay.DescriptionModel
	}
}

func (c *GenerationConfig) loadDefaults() {
	d := pipeline.DefaultConfig()

	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.Steps == 0 {
		c.Steps = d.Steps
	}
	if c.GuidanceScale == 0 {
		c.GuidanceScale = d.GuidanceScale
	}
	if c.Pacing == "" {
		c.Pacing = "0s"
	}
	if c.ThumbnailSize == 0 {
		c.ThumbnailSize = d.ThumbnailSize
	}
	if c.MaxConcurrentJobs == 0 {
		c.MaxConcurrentJobs = d.MaxConcurrentJobs
	}
	if c.DescriptionProvider == "" {
		c.DescriptionProvider = DescriptionTemplate
	}
	if c.DescriptionModel == "" {
		c.DescriptionModel = "gpt-4o-mini"
	}
}

func (c *GenerationConfig) loadEnv() {
	if v := os.Getenv(EnvGenerationWidth); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Width = n
		}
	}
	if v := os.Getenv(EnvGenerationHeight); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Height = n
		}
	}
	if v := os.Getenv(EnvGenerationSteps); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Steps = n
		}
	}
	if v := os.Getenv(EnvGenerationGuidanceScale); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.GuidanceScale = f
		}
	}
	if v := os.Getenv(EnvGenerationPacing); v != "" {
		c.Pacing = v
	}
	if v := os.Getenv(EnvGenerationMaxConcurrentJobs); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrentJobs = n
		}
	}
	if v := os.Getenv(EnvGenerationEnforceConcurrency); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.EnforceConcurrency = b
		}
	}
	if v := os.Getenv(EnvGenerationDescriptionProvider); v != "" {
		c.DescriptionProvider = v
	}
	if v := os.Getenv(EnvGenerationDescriptionModel); v != "" {
		c.DescriptionModel = v
	}
}

func (c *GenerationConfig) validate() error {
	if c.Width < 64 || c.Height < 64 {
		return fmt.Errorf("invalid dimensions %dx%d: minimum is 64", c.Width, c.Height)
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be positive")
	}
	if c.GuidanceScale <= 0 {
		return fmt.Errorf("guidance_scale must be positive")
	}
	if c.ThumbnailSize < 1 {
		return fmt.Errorf("thumbnail_size must be positive")
	}
	if c.MaxConcurrentJobs < 1 {
		return fmt.Errorf("max_concurrent_jobs must be positive")
	}
	if _, err := time.ParseDuration(c.Pacing); err != nil {
		return fmt.Errorf("invalid pacing: %w", err)
	}
	switch c.DescriptionProvider {
	case DescriptionTemplate, DescriptionOpenAI:
	default:
		return fmt.Errorf("unknown description_provider %q", c.DescriptionProvider)
	}
	return nil
}

func enabled(b *bool) bool {
	return b == nil || *b
}
