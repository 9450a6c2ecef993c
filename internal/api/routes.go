package api

import (
	"net/http"

	"github.com/JaimeStill/brandkit/internal/brand"
	"github.com/JaimeStill/brandkit/internal/config"
	"github.com/JaimeStill/brandkit/internal/kits"
	"github.com/JaimeStill/brandkit/pkg/openapi"
	"github.com/JaimeStill/brandkit/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	storageHandler := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		kits.Prefix,
		runtime.StorageConfig.MaxListSize,
		runtime.StorageConfig.RetentionDays,
	)

	v1 := routes.Group{
		Prefix: "/v1",
		Children: []routes.Group{
			domain.Brand.Handler(runtime.MaxBodySize).Routes(),
			domain.Kits.Handler().Routes(),
			storageHandler.routes(),
		},
	}
	routes.Register(mux, v1)

	if !cfg.API.OpenAPI.IsEnabled() {
		return nil
	}

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.SetContact(cfg.API.OpenAPI.Contact)
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(brand.Schemas())
	spec.Components.AddSchemas(kits.Schemas())
	routes.Describe(spec, v1)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
