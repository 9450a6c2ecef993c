package api

import (
	"github.com/JaimeStill/brandkit/internal/config"
	"github.com/JaimeStill/brandkit/internal/infrastructure"
	"github.com/JaimeStill/brandkit/pkg/pagination"
	"github.com/JaimeStill/brandkit/pkg/storage"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Generation    config.GenerationConfig
	Pagination    pagination.Config
	MaxBodySize   int64
	StorageConfig storage.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Generation:     cfg.Generation,
		Pagination:     cfg.API.Pagination,
		MaxBodySize:    cfg.API.MaxBodySizeBytes(),
		StorageConfig:  cfg.Storage,
	}
}
