package pipeline_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/pkg/graphics"
	"github.com/JaimeStill/brandkit/pkg/imagegen"
	"github.com/JaimeStill/brandkit/pkg/lifecycle"
	"github.com/JaimeStill/brandkit/pkg/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() pipeline.Config {
	cfg := pipeline.DefaultConfig()
	cfg.Width, cfg.Height = 64, 64
	cfg.ThumbnailSize = 32
	cfg.SocialExports = false
	cfg.LogoSheet = false
	return cfg
}

func failingGenerator() imagegen.Generator {
	return imagegen.GeneratorFunc(func(context.Context, imagegen.Request) ([]image.Image, error) {
		return nil, errors.New("model offline")
	})
}

type recordingArchive struct {
	mu     sync.Mutex
	saved  []*pipeline.Response
	done   chan struct{}
	status func(id string) (pipeline.Job, bool)
	atSave []pipeline.Job
}

func (a *recordingArchive) Save(_ context.Context, resp *pipeline.Response) error {
	a.mu.Lock()
	a.saved = append(a.saved, resp)
	if a.status != nil {
		if job, ok := a.status(resp.JobID); ok {
			a.atSave = append(a.atSave, job)
		}
	}
	a.mu.Unlock()
	if a.done != nil {
		close(a.done)
	}
	return nil
}

func TestGenerateAcmeCorp(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	cfg.Width, cfg.Height = 64, 64

	p := pipeline.New(cfg, pipeline.Runtime{Logger: discardLogger()})

	resp, err := p.Generate(context.Background(), acmeRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if resp.Status != pipeline.StatusCompleted {
		t.Errorf("Status = %q, want completed", resp.Status)
	}
	if len(resp.Logos) != 2 {
		t.Fatalf("len(Logos) = %d, want 2", len(resp.Logos))
	}
	want := []string{"#4A90E2", "#357ABD", "#2E86C1", "#708090"}
	if !slices.Equal(resp.ColorPalette, want) {
		t.Errorf("ColorPalette = %v, want %v", resp.ColorPalette, want)
	}
	if resp.FontSuggestion != "Inter" {
		t.Errorf("FontSuggestion = %q, want Inter", resp.FontSuggestion)
	}
	if resp.BusinessName != "Acme Corp" {
		t.Errorf("BusinessName = %q", resp.BusinessName)
	}
	if !strings.HasPrefix(resp.BrandDescription, "Acme Corp is a professional technology company") {
		t.Errorf("BrandDescription = %q", resp.BrandDescription)
	}

	if len(resp.SocialMediaExports) != 2 {
		t.Errorf("SocialMediaExports has %d logos, want 2", len(resp.SocialMediaExports))
	}
	for id, exports := range resp.SocialMediaExports {
		if len(exports) != len(graphics.SocialFormats) {
			t.Errorf("logo %s exports = %d, want %d", id, len(exports), len(graphics.SocialFormats))
		}
	}
	if !resp.UpscalingApplied {
		t.Error("UpscalingApplied = false, want true")
	}
	if !resp.ColorVariationsAvailable {
		t.Error("ColorVariationsAvailable = false, want true")
	}
	if !strings.HasPrefix(resp.LogoSheetURL, "data:application/pdf;base64,") {
		t.Errorf("LogoSheetURL prefix = %.40q", resp.LogoSheetURL)
	}
	if len(resp.ExtractedColors) == 0 || len(resp.ExtractedColors) > pipeline.MaxExtractedColors {
		t.Errorf("ExtractedColors len = %d", len(resp.ExtractedColors))
	}
	for _, f := range []string{pipeline.FeatureColorExtraction, pipeline.FeatureColorVariations, pipeline.FeatureUpscaling, pipeline.FeatureSocialExports} {
		if !slices.Contains(resp.EnhancementFeatures, f) {
			t.Errorf("EnhancementFeatures missing %s: %v", f, resp.EnhancementFeatures)
		}
	}

	if _, ok := p.Status(resp.JobID); ok {
		t.Error("completed job still present in job table")
	}
}

func TestGenerateWithFailingGenerator(t *testing.T) {
	p := pipeline.New(testConfig(), pipeline.Runtime{
		Generator: failingGenerator(),
		Logger:    discardLogger(),
	})

	req := acmeRequest()
	req.NumLogos = 4
	req.ColorScheme = "warm"

	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(resp.Logos) != 4 {
		t.Fatalf("len(Logos) = %d, want 4", len(resp.Logos))
	}

	for i, logo := range resp.Logos {
		if got := logo.Metadata["generated_with"]; got != pipeline.GeneratedWithPlaceholder {
			t.Errorf("logo %d generated_with = %v, want placeholder_fallback", i, got)
		}
		if !strings.HasPrefix(logo.URL, "data:image/png;base64,") {
			t.Errorf("logo %d url prefix = %.30q", i, logo.URL)
		}
	}

	first, err := decodeDataURL(resp.Logos[0].URL)
	if err != nil {
		t.Fatalf("decode logo: %v", err)
	}
	if got := graphics.Hex(first.At(32, 32)); got != "#D2691E" {
		t.Errorf("first placeholder color = %s, want #D2691E", got)
	}
}

func TestGenerateUsesGenerator(t *testing.T) {
	var mu sync.Mutex
	var requests []imagegen.Request

	gen := imagegen.GeneratorFunc(func(_ context.Context, req imagegen.Request) ([]image.Image, error) {
		mu.Lock()
		requests = append(requests, req)
		mu.Unlock()
		return []image.Image{graphics.Solid(64, 64, color.NRGBA{0x22, 0x44, 0x88, 0xff})}, nil
	})

	p := pipeline.New(testConfig(), pipeline.Runtime{Generator: gen, Logger: discardLogger()})

	req := acmeRequest()
	req.NumLogos = 3

	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(requests) != 3 {
		t.Fatalf("generator called %d times, want 3", len(requests))
	}
	for i, r := range requests {
		if r.Seed != pipeline.Seed("Acme Corp", i) {
			t.Errorf("request %d seed = %d, want %d", i, r.Seed, pipeline.Seed("Acme Corp", i))
		}
		if r.Count != 1 || r.Width != 64 || r.Steps != 20 || r.GuidanceScale != 7.5 {
			t.Errorf("request %d params = %+v", i, r)
		}
		if !strings.HasSuffix(r.NegativePrompt, "blurry, cluttered") {
			t.Errorf("request %d negative prompt = %q", i, r.NegativePrompt)
		}
	}

	for i, logo := range resp.Logos {
		if got := logo.Metadata["generated_with"]; got != pipeline.GeneratedWithModel {
			t.Errorf("logo %d generated_with = %v, want image_generation", i, got)
		}
		features, _ := logo.Metadata["enhancement_features"].([]string)
		if !slices.Contains(features, pipeline.FeatureBackgroundCleanup) {
			t.Errorf("logo %d features = %v, want background_cleanup", i, features)
		}
	}
}

func TestScoresNonDecreasingAndClamped(t *testing.T) {
	p := pipeline.New(testConfig(), pipeline.Runtime{Logger: discardLogger()})

	req := acmeRequest()
	req.NumLogos = 5

	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for i, logo := range resp.Logos {
		baseStyle := min(0.85+float64(i)*0.05, 1.0)
		baseQuality := min(0.90+float64(i)*0.02, 1.0)

		if logo.StyleConfidence < baseStyle-1e-9 || logo.StyleConfidence > 1.0 {
			t.Errorf("logo %d style_confidence = %v, base %v", i, logo.StyleConfidence, baseStyle)
		}
		if logo.QualityScore < baseQuality-1e-9 || logo.QualityScore > 1.0 {
			t.Errorf("logo %d quality_score = %v, base %v", i, logo.QualityScore, baseQuality)
		}
	}
}

func TestGenerateRejectsInvalidRequest(t *testing.T) {
	p := pipeline.New(testConfig(), pipeline.Runtime{Logger: discardLogger()})

	req := acmeRequest()
	req.BusinessName = "  "

	if _, err := p.Generate(context.Background(), req); !errors.Is(err, pipeline.ErrInvalidRequest) {
		t.Fatalf("Generate() error = %v, want ErrInvalidRequest", err)
	}
	if p.Active() != 0 {
		t.Errorf("Active() = %d, want 0 after rejected request", p.Active())
	}
}

func TestStatusUnknownJob(t *testing.T) {
	p := pipeline.New(testConfig(), pipeline.Runtime{Logger: discardLogger()})
	if _, ok := p.Status("missing"); ok {
		t.Error("Status() reported unknown job as present")
	}
}

func TestSubmitProgress(t *testing.T) {
	gate := make(chan struct{})
	gen := imagegen.GeneratorFunc(func(context.Context, imagegen.Request) ([]image.Image, error) {
		<-gate
		return nil, errors.New("model offline")
	})

	archive := &recordingArchive{done: make(chan struct{})}
	lc := lifecycle.New()

	p := pipeline.New(testConfig(), pipeline.Runtime{
		Generator: gen,
		Archive:   archive,
		Lifecycle: lc,
		Logger:    discardLogger(),
	})
	archive.status = p.Status

	req := acmeRequest()
	req.NumLogos = 1

	id, err := p.Submit(req)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	job, ok := p.Status(id)
	if !ok {
		t.Fatal("Status() missing submitted job")
	}
	if job.Status != pipeline.StatusProcessing || job.Progress > pipeline.ProgressLogos {
		t.Errorf("Status() = %+v, want processing at or below 0.1", job)
	}

	close(gate)

	last := job.Progress
	deadline := time.After(10 * time.Second)
	for {
		job, ok := p.Status(id)
		if !ok {
			break
		}
		if job.Progress < last {
			t.Fatalf("progress decreased: %v -> %v", last, job.Progress)
		}
		last = job.Progress

		select {
		case <-deadline:
			t.Fatal("job did not complete")
		case <-time.After(time.Millisecond):
		}
	}

	<-archive.done
	if len(archive.saved) != 1 || archive.saved[0].JobID != id {
		t.Errorf("archive saved %d responses", len(archive.saved))
	}
	if len(archive.atSave) != 1 {
		t.Fatalf("job missing from table while archiving")
	}
	final := archive.atSave[0]
	if final.Progress != 1.0 {
		t.Errorf("progress before removal = %v, want 1.0", final.Progress)
	}
	if final.Status != pipeline.StatusProcessing || final.CurrentStep != pipeline.StepFinalize {
		t.Errorf("job before removal = %+v, want processing at finalize", final)
	}
	if last > final.Progress {
		t.Errorf("observed progress %v above final %v", last, final.Progress)
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestEnforcedConcurrencyFailsJob(t *testing.T) {
	started := make(chan struct{})
	gate := make(chan struct{})
	var once sync.Once

	gen := imagegen.GeneratorFunc(func(ctx context.Context, _ imagegen.Request) ([]image.Image, error) {
		once.Do(func() { close(started) })
		select {
		case <-gate:
		case <-ctx.Done():
		}
		return nil, errors.New("model offline")
	})

	cfg := testConfig()
	cfg.MaxConcurrentJobs = 1
	cfg.EnforceConcurrency = true

	p := pipeline.New(cfg, pipeline.Runtime{Generator: gen, Logger: discardLogger()})

	req := acmeRequest()
	req.NumLogos = 1

	if _, err := p.Submit(req); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := p.Generate(ctx, req)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Generate() error = %v, want deadline exceeded", err)
	}
	if p.Active() != 2 {
		t.Errorf("Active() = %d, want 2 (running + failed)", p.Active())
	}

	close(gate)
}

// flakyArchive panics on its first failures calls to Save.
type flakyArchive struct {
	mu       sync.Mutex
	failures int
}

func (a *flakyArchive) Save(context.Context, *pipeline.Response) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failures > 0 {
		a.failures--
		panic("archive unavailable")
	}
	return nil
}

func TestAdvisoryLimitIgnoresFailedJobs(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	cfg := testConfig()
	cfg.MaxConcurrentJobs = 1

	p := pipeline.New(cfg, pipeline.Runtime{
		Archive: &flakyArchive{failures: 2},
		Logger:  logger,
	})

	req := acmeRequest()
	req.NumLogos = 1

	for range 2 {
		if _, err := p.Generate(context.Background(), req); err == nil {
			t.Fatal("Generate() error = nil, want archive panic")
		}
	}
	if p.Active() != 2 || p.Running() != 0 {
		t.Fatalf("Active() = %d, Running() = %d, want 2 failed records and none running", p.Active(), p.Running())
	}

	logs.Reset()
	if _, err := p.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if strings.Contains(logs.String(), "advisory limit") {
		t.Errorf("advisory warning logged with only failed records present:\n%s", logs.String())
	}
}

func TestEnhancementPersistsToStorage(t *testing.T) {
	root := t.TempDir()
	scfg := &storage.Config{Provider: storage.ProviderLocal, LocalPath: root}
	if err := scfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	store, err := storage.New(scfg, discardLogger())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	lc := lifecycle.New()
	if err := store.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	lc.WaitForStartup()

	cfg := testConfig()
	cfg.LogoSheet = true

	p := pipeline.New(cfg, pipeline.Runtime{Storage: store, Logger: discardLogger()})

	req := acmeRequest()
	req.NumLogos = 1
	req.NumVariations = 2

	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	logo := resp.Logos[0]
	wantURL := "/api/v1/storage/kits/" + resp.JobID + "/" + logo.ID + "/logo.png"
	if logo.URL != wantURL {
		t.Errorf("URL = %q, want %q", logo.URL, wantURL)
	}

	variants, _ := logo.Metadata["color_variations"].([]pipeline.ColorVariant)
	if len(variants) != 4 {
		t.Errorf("color_variations = %d, want 4", len(variants))
	}

	if resp.LogoSheetURL != "/api/v1/storage/kits/"+resp.JobID+"/logo-sheet.pdf" {
		t.Errorf("LogoSheetURL = %q", resp.LogoSheetURL)
	}

	for _, name := range []string{"logo.png", "thumbnail.png", "upscaled.png", "variant-1.png"} {
		if _, err := os.Stat(filepath.Join(root, scfg.ContainerName, "kits", resp.JobID, logo.ID, name)); err != nil {
			t.Errorf("stored %s: %v", name, err)
		}
	}
}

type panickingExtractor struct{}

func (panickingExtractor) Extract(context.Context, image.Image, int) ([]graphics.Color, error) {
	panic("extractor exploded")
}

type failingUpscaler struct{}

func (failingUpscaler) Upscale(context.Context, image.Image, string) (image.Image, error) {
	return nil, errors.New("upscaler offline")
}

func TestEnhancementActionsAreIndependent(t *testing.T) {
	p := pipeline.New(testConfig(), pipeline.Runtime{
		Extractor: panickingExtractor{},
		Upscaler:  failingUpscaler{},
		Logger:    discardLogger(),
	})

	req := acmeRequest()
	req.NumLogos = 2

	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if slices.Contains(resp.EnhancementFeatures, pipeline.FeatureColorExtraction) {
		t.Error("color_extraction reported despite panicking extractor")
	}
	if !resp.UpscalingApplied {
		t.Error("UpscalingApplied = false, want 2x fallback")
	}
	if !resp.ColorVariationsAvailable {
		t.Error("ColorVariationsAvailable = false after extractor failure")
	}
	if len(resp.ExtractedColors) != 0 {
		t.Errorf("ExtractedColors = %v, want empty", resp.ExtractedColors)
	}
}

// explodingStorage reports ready and panics on the first upload, which
// happens outside any single enhancement action.
type explodingStorage struct {
	storage.System
}

func (explodingStorage) Ready() bool { return true }

func (explodingStorage) Upload(context.Context, string, io.Reader, string) error {
	panic("storage exploded")
}

func TestEnhancementPanicReturnsLogosUnchanged(t *testing.T) {
	p := pipeline.New(testConfig(), pipeline.Runtime{
		Storage: explodingStorage{},
		Logger:  discardLogger(),
	})

	req := acmeRequest()
	req.NumLogos = 2

	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(resp.Logos) != 2 {
		t.Fatalf("len(Logos) = %d, want 2", len(resp.Logos))
	}

	for i, logo := range resp.Logos {
		if _, ok := logo.Metadata["enhanced"]; ok {
			t.Errorf("logo %d marked enhanced", i)
		}
		if logo.Metadata["generated_with"] != pipeline.GeneratedWithPlaceholder {
			t.Errorf("logo %d generated_with = %v", i, logo.Metadata["generated_with"])
		}
		if want := 0.85 + float64(i)*0.05; logo.StyleConfidence != want {
			t.Errorf("logo %d StyleConfidence = %v, want unenhanced %v", i, logo.StyleConfidence, want)
		}
		if !strings.HasPrefix(logo.URL, "data:image/png;base64,") {
			t.Errorf("logo %d URL = %.40q, want embedded original", i, logo.URL)
		}
	}
	if len(resp.EnhancementFeatures) != 0 {
		t.Errorf("EnhancementFeatures = %v, want none", resp.EnhancementFeatures)
	}
	if resp.UpscalingApplied || resp.ColorVariationsAvailable {
		t.Error("enhancement flags set after stage failure")
	}
}

type failingDescriber struct{}

func (failingDescriber) Describe(context.Context, *pipeline.Request) (string, error) {
	return "", errors.New("llm offline")
}

func TestDescriberFallsBackToTemplate(t *testing.T) {
	p := pipeline.New(testConfig(), pipeline.Runtime{
		Describer: failingDescriber{},
		Logger:    discardLogger(),
	})

	req := acmeRequest()
	req.NumLogos = 1

	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	r := acmeRequest()
	r.Normalize()
	if resp.BrandDescription != pipeline.TemplateDescription(&r) {
		t.Errorf("BrandDescription = %q, want template", resp.BrandDescription)
	}
}

func decodeDataURL(url string) (image.Image, error) {
	_, payload, ok := strings.Cut(url, ",")
	if !ok {
		return nil, errors.New("not a data url")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	return graphics.Decode(data)
}
