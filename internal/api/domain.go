package api

import (
	"database/sql"

	"github.com/JaimeStill/brandkit/internal/brand"
	"github.com/JaimeStill/brandkit/internal/config"
	"github.com/JaimeStill/brandkit/internal/kits"
	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/internal/share"
	"github.com/JaimeStill/brandkit/pkg/graphics"
	"github.com/JaimeStill/brandkit/pkg/storage"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Brand    brand.System
	Kits     kits.System
	Pipeline *pipeline.Pipeline
	Share    share.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	var conn *sql.DB
	if runtime.Database != nil {
		conn = runtime.Database.Connection()
	}

	kitsSystem := kits.New(
		conn,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	p := pipeline.New(runtime.Generation.Pipeline(), pipeline.Runtime{
		Generator: runtime.Generator,
		Upscaler:  graphics.LanczosUpscaler{Factor: 2},
		Extractor: graphics.NewExtractor(),
		Describer: newDescriber(&runtime.Generation),
		Storage:   runtime.Storage,
		Archive:   kitsSystem,
		Lifecycle: runtime.Lifecycle,
		Logger:    runtime.Logger,
	})

	shareSystem := share.New(runtime.Mailer, runtime.Lifecycle, runtime.Logger)

	storage.Retention(
		runtime.Lifecycle,
		runtime.Storage,
		kits.Prefix,
		runtime.StorageConfig.RetentionDays,
		runtime.StorageConfig.CleanupIntervalDuration(),
		runtime.Logger,
		kitsSystem.Prune,
	)

	return &Domain{
		Brand:    brand.New(p, shareSystem, runtime.Logger),
		Kits:     kitsSystem,
		Pipeline: p,
		Share:    shareSystem,
	}
}

func newDescriber(cfg *config.GenerationConfig) pipeline.Describer {
	if cfg.DescriptionProvider == config.DescriptionOpenAI {
		return pipeline.NewChatDescriber(cfg.Image.APIKey, cfg.Image.BaseURL, cfg.DescriptionModel)
	}
	return pipeline.TemplateDescriber{}
}
