// Package pipeline runs the six-stage brand kit workflow (logo concepts,
// color palette, typography, description, enhancement, finalize) and
// tracks per-job progress while a run is in flight.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/JaimeStill/brandkit/pkg/graphics"
	"github.com/JaimeStill/brandkit/pkg/imagegen"
	"github.com/JaimeStill/brandkit/pkg/lifecycle"
	"github.com/JaimeStill/brandkit/pkg/storage"
)

// Stage progress checkpoints and labels.
const (
	ProgressLogos       = 0.1
	ProgressPalette     = 0.4
	ProgressTypography  = 0.6
	ProgressDescription = 0.8
	ProgressEnhance     = 0.9
	ProgressFinalize    = 1.0

	StepLogos       = "Generating logo concepts..."
	StepPalette     = "Creating color palette..."
	StepTypography  = "Selecting typography..."
	StepDescription = "Creating brand description..."
	StepEnhance     = "Enhancing images..."
	StepFinalize    = "Finalizing brand kit..."
)

// Config holds generation parameters and enhancement toggles.
type Config struct {
	Width              int
	Height             int
	Steps              int
	GuidanceScale      float64
	Pacing             time.Duration
	ThumbnailSize      int
	MaxConcurrentJobs  int
	EnforceConcurrency bool
	ColorVariations    bool
	Upscaling          bool
	SocialExports      bool
	LogoSheet          bool
}

// DefaultConfig returns 512×512 generation at 20 steps and guidance 7.5
// with every enhancement enabled.
func DefaultConfig() Config {
	return Config{
		Width:             512,
		Height:            512,
		Steps:             20,
		GuidanceScale:     7.5,
		ThumbnailSize:     256,
		MaxConcurrentJobs: 4,
		ColorVariations:   true,
		Upscaling:         true,
		SocialExports:     true,
		LogoSheet:         true,
	}
}

// Archiver persists completed responses.
type Archiver interface {
	Save(ctx context.Context, resp *Response) error
}

// Runtime bundles the capabilities the pipeline stages call into.
// Generator, Extractor and Describer default when nil. Storage, Upscaler,
// Archive and Lifecycle are optional.
type Runtime struct {
	Generator imagegen.Generator
	Upscaler  graphics.Upscaler
	Extractor graphics.Extractor
	Describer Describer
	Storage   storage.System
	Archive   Archiver
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
}

// Pipeline owns the job table and executes runs.
type Pipeline struct {
	cfg    Config
	rt     Runtime
	jobs   *jobTable
	sem    *semaphore.Weighted
	logger *slog.Logger
}

// New creates a Pipeline. A weighted semaphore bounds concurrent runs only
// when cfg.EnforceConcurrency is set.
func New(cfg Config, rt Runtime) *Pipeline {
	if rt.Generator == nil {
		rt.Generator = imagegen.Disabled{}
	}
	if rt.Extractor == nil {
		rt.Extractor = graphics.NewExtractor()
	}
	if rt.Describer == nil {
		rt.Describer = TemplateDescriber{}
	}
	if rt.Logger == nil {
		rt.Logger = slog.Default()
	}
	if cfg.ThumbnailSize < 1 {
		cfg.ThumbnailSize = 256
	}

	p := &Pipeline{
		cfg:    cfg,
		rt:     rt,
		jobs:   newJobTable(),
		logger: rt.Logger.With("system", "pipeline"),
	}
	if cfg.EnforceConcurrency && cfg.MaxConcurrentJobs > 0 {
		p.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrentJobs))
	}
	return p
}

// Status returns the progress record for a job. It reports false for
// unknown ids and for jobs that completed successfully.
func (p *Pipeline) Status(id string) (Job, bool) {
	return p.jobs.get(id)
}

// Active returns the number of job records currently held, including
// failed records.
func (p *Pipeline) Active() int {
	return p.jobs.count()
}

// Running returns the number of jobs still processing.
func (p *Pipeline) Running() int {
	return p.jobs.running()
}

// Generate validates req and runs the pipeline to completion. It fails only
// when validation fails or every logo fallback is exhausted.
func (p *Pipeline) Generate(ctx context.Context, req Request) (*Response, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	p.jobs.create(id)
	return p.run(ctx, id, &req)
}

// Submit validates req, registers a job, and runs the pipeline in the
// background. The returned id can be polled with Status; the finished
// response is delivered to the Archiver.
func (p *Pipeline) Submit(req Request) (string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	p.jobs.create(id)

	run := func(ctx context.Context) {
		if _, err := p.run(ctx, id, &req); err != nil {
			p.logger.Error("background generation failed", "job_id", id, "error", err)
		}
	}

	if p.rt.Lifecycle != nil {
		p.rt.Lifecycle.Background(run)
	} else {
		go run(context.Background())
	}
	return id, nil
}

func (p *Pipeline) run(ctx context.Context, id string, req *Request) (resp *Response, err error) {
	start := time.Now()
	logger := p.logger.With("job_id", id, "business_name", req.BusinessName)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
		if err != nil {
			p.jobs.fail(id, err)
			logger.Error("brand generation failed", "error", err)
			return
		}
		p.jobs.remove(id)
	}()

	if err := p.acquire(ctx, logger); err != nil {
		return nil, err
	}
	defer p.release()

	logger.Info("brand generation started", "num_logos", req.NumLogos)

	p.jobs.advance(id, ProgressLogos, StepLogos)
	concepts, err := p.generateLogos(ctx, req, logger)
	if err != nil {
		return nil, err
	}

	p.jobs.advance(id, ProgressPalette, StepPalette)
	palette := p.buildPalette(req, logger)

	p.jobs.advance(id, ProgressTypography, StepTypography)
	typography := p.selectTypography(req, logger)

	p.jobs.advance(id, ProgressDescription, StepDescription)
	description := p.describe(ctx, req, logger)

	p.jobs.advance(id, ProgressEnhance, StepEnhance)
	enhanced := p.enhance(ctx, id, req, concepts, logger)

	p.jobs.advance(id, ProgressFinalize, StepFinalize)
	resp = finalize(id, req, enhanced, palette, typography, description, start)

	if p.rt.Archive != nil {
		if err := p.rt.Archive.Save(ctx, resp); err != nil {
			logger.Warn("archive brand kit failed", "error", err)
		}
	}

	logger.Info("brand generation completed",
		"duration", time.Since(start),
		"logos", len(resp.Logos),
	)
	return resp, nil
}

func (p *Pipeline) acquire(ctx context.Context, logger *slog.Logger) error {
	if p.sem != nil {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("wait for generation slot: %w", err)
		}
		return nil
	}

	if running := p.jobs.running(); p.cfg.MaxConcurrentJobs > 0 && running > p.cfg.MaxConcurrentJobs {
		logger.Warn("concurrent jobs exceed advisory limit",
			"running", running,
			"max_concurrent_jobs", p.cfg.MaxConcurrentJobs,
		)
	}
	return nil
}

func (p *Pipeline) release() {
	if p.sem != nil {
		p.sem.Release(1)
	}
}

func (p *Pipeline) buildPalette(req *Request, logger *slog.Logger) (palette ColorPalette) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("color palette failed, using default", "panic", r)
			palette = defaultPalette()
		}
	}()
	return Palette(req.ColorScheme)
}

func (p *Pipeline) selectTypography(req *Request, logger *slog.Logger) (typography Typography) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("typography failed, using default", "panic", r)
			typography = defaultTypography()
		}
	}()
	return SelectTypography(req.PrimaryTrait(), req.Industry)
}

func (p *Pipeline) describe(ctx context.Context, req *Request, logger *slog.Logger) (description string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("brand description failed, using fallback", "panic", r)
			description = FallbackDescription(req)
		}
	}()

	desc, err := p.rt.Describer.Describe(ctx, req)
	if err == nil && desc != "" {
		return desc
	}
	if err != nil {
		logger.Warn("describer failed, using template", "error", err)
	}
	return TemplateDescription(req)
}

func clampScore(v float64) float64 {
	return math.Min(math.Round(v*100)/100, 1.0)
}
