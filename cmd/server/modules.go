package main

import (
	"net/http"

	"github.com/JaimeStill/brandkit/internal/api"
	"github.com/JaimeStill/brandkit/internal/config"
	"github.com/JaimeStill/brandkit/internal/health"
	"github.com/JaimeStill/brandkit/internal/infrastructure"
	"github.com/JaimeStill/brandkit/pkg/handlers"
	"github.com/JaimeStill/brandkit/pkg/middleware"
	"github.com/JaimeStill/brandkit/pkg/module"
)

type Modules struct {
	API    *module.Module
	Health *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	healthModule := health.NewModule(
		"/health",
		health.NewHandler(infra.Lifecycle, cfg.Version, infra.Logger),
	)

	return &Modules{
		API:    apiModule,
		Health: healthModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API, m.Health)
}

type serviceInfo struct {
	Service  string   `json:"service"`
	Version  string   `json:"version"`
	Status   string   `json:"status"`
	Modules  []string `json:"modules"`
	API      string   `json:"api"`
	Health   string   `json:"health"`
	Examples string   `json:"examples"`
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()
	router.Use(middleware.Logger(infra.Logger.With("module", "root")))

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, serviceInfo{
			Service:  "brandkit",
			Version:  cfg.Version,
			Status:   "running",
			Modules:  router.Prefixes(),
			API:      cfg.API.BasePath + "/v1",
			Health:   "/health",
			Examples: cfg.API.BasePath + "/v1/brand/examples",
		})
	})

	return router
}
