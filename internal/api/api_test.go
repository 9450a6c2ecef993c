package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/brandkit/internal/api"
	"github.com/JaimeStill/brandkit/internal/config"
	"github.com/JaimeStill/brandkit/internal/infrastructure"
	"github.com/JaimeStill/brandkit/internal/kits"
	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/pkg/middleware"
	"github.com/JaimeStill/brandkit/pkg/module"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()

	off := false
	cfg := &config.Config{}
	cfg.Storage.LocalPath = t.TempDir()
	cfg.Generation.Width = 64
	cfg.Generation.Height = 64
	cfg.Generation.ThumbnailSize = 32
	cfg.Generation.SocialExports = &off
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	infra, err := infrastructure.NewWithLogger(cfg, logger, nil)
	if err != nil {
		t.Fatalf("NewWithLogger() error = %v", err)
	}
	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	infra.Lifecycle.WaitForStartup()
	t.Cleanup(func() {
		infra.Lifecycle.Shutdown(5 * time.Second)
	})

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)
	return router
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestCatalogRoutes(t *testing.T) {
	h := newServer(t)

	for _, path := range []string{
		"/api/v1/brand/styles",
		"/api/v1/brand/industries",
		"/api/v1/brand/personalities",
		"/api/v1/brand/color-schemes",
		"/api/v1/brand/examples",
	} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, path, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if rec.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("missing request id header")
			}
		})
	}
}

func TestGenerateArchivesKit(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/brand/generate", map[string]any{
		"business_name":      "Acme Corp",
		"industry":           "technology",
		"style":              "minimal",
		"color_scheme":       "cool",
		"personality_traits": []string{"professional"},
		"target_audience":    "businesses",
		"prompt":             "clean modern logo design",
		"negative_prompt":    "blurry, cluttered",
		"num_logos":          1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status = %d, body = %s", rec.Code, rec.Body)
	}
	resp := decode[pipeline.Response](t, rec)
	if resp.BusinessName != "Acme Corp" || len(resp.Logos) == 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/kits/"+resp.JobID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("find kit status = %d, body = %s", rec.Code, rec.Body)
	}
	detail := decode[kits.Detail](t, rec)
	if detail.ManifestKey != kits.ManifestKey(detail.ID) {
		t.Errorf("ManifestKey = %q", detail.ManifestKey)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/kits", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("list kits without database status = %d, want 503", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/storage/"+detail.ManifestKey, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("download manifest status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("manifest Content-Type = %q", ct)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/storage/usage", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("usage status = %d", rec.Code)
	}
	usage := decode[struct {
		TotalFiles int   `json:"total_files"`
		TotalBytes int64 `json:"total_bytes"`
	}](t, rec)
	if usage.TotalFiles < 2 || usage.TotalBytes == 0 {
		t.Errorf("usage = %+v, want manifest and assets", usage)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/storage?max_results=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list storage status = %d", rec.Code)
	}
	listing := decode[struct {
		Objects   []json.RawMessage `json:"objects"`
		Truncated bool              `json:"truncated"`
	}](t, rec)
	if len(listing.Objects) != 1 || !listing.Truncated {
		t.Errorf("listing = %d objects truncated=%v, want 1 truncated", len(listing.Objects), listing.Truncated)
	}

	rec = do(t, h, http.MethodPost, "/api/v1/storage/cleanup", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cleanup status = %d", rec.Code)
	}
	if result := decode[struct {
		Deleted int `json:"deleted"`
	}](t, rec); result.Deleted != 0 {
		t.Errorf("cleanup deleted %d fresh objects", result.Deleted)
	}

	rec = do(t, h, http.MethodDelete, "/api/v1/kits/"+resp.JobID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete kit status = %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api/v1/kits/"+resp.JobID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("find deleted kit status = %d, want 404", rec.Code)
	}
}

func TestStorageErrors(t *testing.T) {
	h := newServer(t)

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{name: "missing object", method: http.MethodGet, target: "/api/v1/storage/kits/nope.png", want: http.StatusNotFound},
		{name: "bad max results", method: http.MethodGet, target: "/api/v1/storage?max_results=0", want: http.StatusBadRequest},
		{name: "bad cleanup days", method: http.MethodPost, target: "/api/v1/storage/cleanup?days=-1", want: http.StatusBadRequest},
		{name: "bad kit id", method: http.MethodGet, target: "/api/v1/kits/not-a-uuid", want: http.StatusBadRequest},
		{name: "invalid request", method: http.MethodPost, target: "/api/v1/brand/generate", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body any
			if tt.method == http.MethodPost && strings.Contains(tt.target, "generate") {
				body = map[string]any{"business_name": ""}
			}
			rec := do(t, h, tt.method, tt.target, body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestOpenAPISpec(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/api/openapi.json", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	spec := decode[struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths      map[string]map[string]json.RawMessage `json:"paths"`
		Components struct {
			Schemas map[string]json.RawMessage `json:"schemas"`
		} `json:"components"`
	}](t, rec)

	if spec.Info.Title != "Brandkit API" {
		t.Errorf("title = %q", spec.Info.Title)
	}

	want := map[string]string{
		"/v1/brand/generate":        "post",
		"/v1/brand/status/{job_id}": "get",
		"/v1/kits":                  "get",
		"/v1/kits/{id}":             "delete",
		"/v1/storage/{key}":         "get",
		"/v1/storage/cleanup":       "post",
	}

	for path, method := range want {
		if _, ok := spec.Paths[path][method]; !ok {
			t.Errorf("%s %s not documented", method, path)
		}
	}

	for _, name := range []string{"BrandRequest", "BrandResponse", "KitDetail"} {
		if _, ok := spec.Components.Schemas[name]; !ok {
			t.Errorf("schema %s missing", name)
		}
	}

	var list struct {
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal(spec.Paths["/v1/kits"]["get"], &list); err != nil {
		t.Fatalf("decode kits operation: %v", err)
	}
	if len(list.Tags) != 1 || list.Tags[0] != "Kits" {
		t.Errorf("kits tags = %v, want [Kits]", list.Tags)
	}
}

func TestOpenAPIDisabled(t *testing.T) {
	t.Setenv("BRANDKIT_OPENAPI_ENABLED", "false")
	h := newServer(t)

	if rec := do(t, h, http.MethodGet, "/api/openapi.json", nil); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 with the document disabled", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/v1/brand/styles", nil); rec.Code != http.StatusOK {
		t.Errorf("styles status = %d, want routes unaffected", rec.Code)
	}
}
