package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/JaimeStill/brandkit/internal/config"
	"github.com/JaimeStill/brandkit/pkg/lifecycle"
)

func TestServerRoutes(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.LocalPath = t.TempDir()
	cfg.Logging.Level = "error"
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if err := srv.infra.Start(); err != nil {
		t.Fatalf("infra Start() error = %v", err)
	}
	srv.infra.Lifecycle.WaitForStartup()
	t.Cleanup(func() {
		srv.Shutdown(5 * time.Second)
	})

	handler := srv.http.http.Handler

	tests := []struct {
		path string
		want int
	}{
		{path: "/", want: http.StatusOK},
		{path: "/health", want: http.StatusOK},
		{path: "/health/ready", want: http.StatusOK},
		{path: "/health/live", want: http.StatusOK},
		{path: "/api/v1/brand/styles", want: http.StatusOK},
		{path: "/missing", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
			}
		})
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var info serviceInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode service info: %v", err)
	}
	if !slices.Equal(info.Modules, []string{"/api", "/health"}) {
		t.Errorf("Modules = %v, want [/api /health]", info.Modules)
	}
	if info.Version != cfg.Version {
		t.Errorf("Version = %q, want %q", info.Version, cfg.Version)
	}
}

func TestHTTPStartFailsWhenPortTaken(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer taken.Close()

	cfg := &config.ServerConfig{
		Host: "127.0.0.1",
		Port: taken.Addr().(*net.TCPAddr).Port,
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := newHTTPServer(cfg, http.NotFoundHandler(), logger)

	if err := srv.Start(lifecycle.New()); err == nil {
		t.Error("Start() error = nil, want address in use")
	}
}
