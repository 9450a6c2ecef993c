package health_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/brandkit/internal/health"
)

type stubChecker struct {
	ready    bool
	services map[string]bool
}

func (s stubChecker) Ready() bool               { return s.ready }
func (s stubChecker) Services() map[string]bool { return s.services }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, checker health.Checker, path string) (int, health.Report) {
	t.Helper()

	m := health.NewModule("/health", health.NewHandler(checker, "1.0.0", discardLogger()))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	m.Serve(rec, req)

	var report health.Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return rec.Code, report
}

func TestEndpoints(t *testing.T) {
	allReady := stubChecker{
		ready:    true,
		services: map[string]bool{"storage": true, "generator": true},
	}
	degraded := stubChecker{
		ready:    false,
		services: map[string]bool{"storage": false, "generator": true},
	}

	tests := []struct {
		name       string
		checker    stubChecker
		path       string
		wantCode   int
		wantStatus string
	}{
		{name: "health ok", checker: allReady, path: "/health", wantCode: http.StatusOK, wantStatus: health.StatusHealthy},
		{name: "health degraded", checker: degraded, path: "/health", wantCode: http.StatusOK, wantStatus: health.StatusDegraded},
		{name: "ready", checker: allReady, path: "/health/ready", wantCode: http.StatusOK, wantStatus: health.StatusReady},
		{name: "not ready", checker: degraded, path: "/health/ready", wantCode: http.StatusServiceUnavailable, wantStatus: health.StatusNotReady},
		{name: "live while degraded", checker: degraded, path: "/health/live", wantCode: http.StatusOK, wantStatus: health.StatusAlive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, report := serve(t, tt.checker, tt.path)
			if code != tt.wantCode {
				t.Errorf("status code = %d, want %d", code, tt.wantCode)
			}
			if report.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", report.Status, tt.wantStatus)
			}
			if report.Version != "1.0.0" {
				t.Errorf("version = %q, want 1.0.0", report.Version)
			}
			if report.Timestamp.IsZero() {
				t.Error("timestamp not set")
			}
		})
	}
}

func TestServicesReported(t *testing.T) {
	checker := stubChecker{
		ready:    true,
		services: map[string]bool{"storage": true, "database": false},
	}

	_, report := serve(t, checker, "/health")

	want := map[string]string{
		"api":      health.StatusHealthy,
		"storage":  health.StatusHealthy,
		"database": health.StatusUnhealthy,
	}
	for name, status := range want {
		if got := report.Services[name]; got != status {
			t.Errorf("services[%s] = %q, want %q", name, got, status)
		}
	}
}
