package brand

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/internal/share"
)

type repo struct {
	pipeline *pipeline.Pipeline
	share    share.System
	logger   *slog.Logger
}

// New creates a brand System backed by the given pipeline and share service.
func New(p *pipeline.Pipeline, sh share.System, logger *slog.Logger) System {
	return &repo{
		pipeline: p,
		share:    sh,
		logger:   logger.With("system", "brand"),
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, maxBodySize)
}

func (r *repo) Generate(ctx context.Context, req pipeline.Request) (*pipeline.Response, error) {
	r.logger.Info("brand generation requested", "business_name", req.BusinessName)
	return r.pipeline.Generate(ctx, req)
}

func (r *repo) Submit(req pipeline.Request) (string, error) {
	id, err := r.pipeline.Submit(req)
	if err != nil {
		return "", err
	}
	r.logger.Info("brand generation queued", "job_id", id, "business_name", req.BusinessName)
	return id, nil
}

func (r *repo) Status(id string) (*GenerationStatus, error) {
	job, ok := r.pipeline.Status(id)
	if !ok {
		return nil, ErrJobNotFound
	}
	return newGenerationStatus(job), nil
}

func (r *repo) Share(ctx context.Context, req share.Request) (*share.Receipt, error) {
	return r.share.Share(ctx, req)
}
