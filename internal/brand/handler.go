package brand

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/internal/share"
	"github.com/JaimeStill/brandkit/pkg/handlers"
	"github.com/JaimeStill/brandkit/pkg/routes"
)

// Handler provides HTTP endpoints for brand generation.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
}

// NewHandler creates a Handler with the given system, logger, and request body limit.
func NewHandler(sys System, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "brand"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for brand endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/brand",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/generate", Handler: h.Generate, OpenAPI: ops.Generate},
			{Method: "POST", Pattern: "/generate/async", Handler: h.GenerateAsync, OpenAPI: ops.GenerateAsync},
			{Method: "GET", Pattern: "/status/{job_id}", Handler: h.Status, OpenAPI: ops.Status},
			{Method: "GET", Pattern: "/styles", Handler: h.Styles, OpenAPI: ops.Styles},
			{Method: "GET", Pattern: "/industries", Handler: h.Industries, OpenAPI: ops.Industries},
			{Method: "GET", Pattern: "/personalities", Handler: h.Personalities, OpenAPI: ops.Personalities},
			{Method: "GET", Pattern: "/color-schemes", Handler: h.ColorSchemes, OpenAPI: ops.ColorSchemes},
			{Method: "GET", Pattern: "/examples", Handler: h.Examples, OpenAPI: ops.Examples},
			{Method: "POST", Pattern: "/share/email", Handler: h.ShareEmail, OpenAPI: ops.ShareEmail},
		},
	}
}

// Generate runs the pipeline to completion and returns the brand kit.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[pipeline.Request](r, h.maxBodySize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	resp, err := h.sys.Generate(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// GenerateAsync starts a background run and returns its job id.
func (h *Handler) GenerateAsync(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[pipeline.Request](r, h.maxBodySize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	id, err := h.sys.Submit(req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, AsyncAccepted{
		JobID:  id,
		Status: pipeline.StatusProcessing,
	})
}

// Status returns the progress of a running or failed job.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.sys.Status(r.PathValue("job_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	respondOK(w, status)
}

// Styles returns the logo style catalog.
func (h *Handler) Styles(w http.ResponseWriter, r *http.Request) {
	respondOK(w, Styles())
}

// Industries returns the industry catalog.
func (h *Handler) Industries(w http.ResponseWriter, r *http.Request) {
	respondOK(w, Industries())
}

// Personalities returns the personality trait catalog.
func (h *Handler) Personalities(w http.ResponseWriter, r *http.Request) {
	respondOK(w, Personalities())
}

// ColorSchemes returns the color scheme catalog.
func (h *Handler) ColorSchemes(w http.ResponseWriter, r *http.Request) {
	respondOK(w, ColorSchemes())
}

// Examples returns the example request presets.
func (h *Handler) Examples(w http.ResponseWriter, r *http.Request) {
	respondOK(w, Examples())
}

// ShareEmail queues an HTML summary of a brand kit for delivery.
func (h *Handler) ShareEmail(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[share.Request](r, h.maxBodySize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	receipt, err := h.sys.Share(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	respondOK(w, receipt)
}
