// Package health reports service liveness and subsystem readiness.
package health

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/brandkit/pkg/handlers"
	"github.com/JaimeStill/brandkit/pkg/module"
	"github.com/JaimeStill/brandkit/pkg/routes"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
	StatusReady     = "ready"
	StatusNotReady  = "not ready"
	StatusAlive     = "alive"
)

// Checker exposes the readiness state of the service and its subsystems.
// lifecycle.Coordinator satisfies it.
type Checker interface {
	Ready() bool
	Services() map[string]bool
}

// Report is the body returned by every health endpoint.
type Report struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
}

// Handler serves the health endpoints.
type Handler struct {
	checker Checker
	version string
	logger  *slog.Logger
	now     func() time.Time
}

// NewHandler creates a Handler reporting version.
func NewHandler(checker Checker, version string, logger *slog.Logger) *Handler {
	return &Handler{
		checker: checker,
		version: version,
		logger:  logger.With("handler", "health"),
		now:     time.Now,
	}
}

// NewModule mounts the health routes under prefix.
func NewModule(prefix string, h *Handler) *module.Module {
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return module.New(prefix, mux)
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: h.Health},
			{Method: "GET", Pattern: "/ready", Handler: h.Ready},
			{Method: "GET", Pattern: "/live", Handler: h.Live},
		},
	}
}

// Health reports every tracked subsystem. A subsystem that is not ready
// degrades the status without failing the request.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	services, healthy := h.services()

	status := StatusHealthy
	if !healthy {
		status = StatusDegraded
		h.logger.Debug("health check degraded", "services", services)
	}

	handlers.RespondJSON(w, http.StatusOK, h.report(status, services))
}

// Ready answers 503 until lifecycle startup completes.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	services, _ := h.services()

	if !h.checker.Ready() {
		handlers.RespondJSON(w, http.StatusServiceUnavailable, h.report(StatusNotReady, services))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.report(StatusReady, services))
}

// Live always answers 200 while the process serves requests.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.report(StatusAlive, nil))
}

func (h *Handler) services() (map[string]string, bool) {
	tracked := h.checker.Services()
	out := make(map[string]string, len(tracked)+1)
	out["api"] = StatusHealthy

	healthy := true
	for name, ready := range tracked {
		if ready {
			out[name] = StatusHealthy
			continue
		}
		out[name] = StatusUnhealthy
		healthy = false
	}
	return out, healthy
}

func (h *Handler) report(status string, services map[string]string) Report {
	return Report{
		Status:    status,
		Version:   h.version,
		Timestamp: h.now().UTC(),
		Services:  services,
	}
}
