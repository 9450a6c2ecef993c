package brand_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/brandkit/internal/brand"
	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/internal/share"
	"github.com/JaimeStill/brandkit/pkg/mail"
	"github.com/JaimeStill/brandkit/pkg/routes"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()

	cfg := pipeline.DefaultConfig()
	cfg.Width, cfg.Height = 64, 64
	cfg.ThumbnailSize = 32
	cfg.SocialExports = false
	cfg.LogoSheet = false

	p := pipeline.New(cfg, pipeline.Runtime{Logger: discardLogger()})

	mailCfg := &mail.Config{}
	if err := mailCfg.Finalize(nil); err != nil {
		t.Fatalf("mail Finalize() error = %v", err)
	}
	mailer, err := mail.New(mailCfg, discardLogger())
	if err != nil {
		t.Fatalf("mail.New() error = %v", err)
	}

	sys := brand.New(p, share.New(mailer, nil, discardLogger()), discardLogger())

	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler(1<<20).Routes())
	return mux
}

func acmeBody() map[string]any {
	return map[string]any{
		"business_name":      "Acme Corp",
		"industry":           "technology",
		"style":              "minimal",
		"color_scheme":       "cool",
		"personality_traits": []string{"professional"},
		"target_audience":    "businesses",
		"prompt":             "clean modern logo design",
		"negative_prompt":    "blurry, cluttered",
		"num_logos":          2,
	}
}

func do(t *testing.T, mux http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCatalogEndpoints(t *testing.T) {
	mux := newMux(t)

	tests := []struct {
		path string
		want int
	}{
		{path: "/brand/styles", want: 6},
		{path: "/brand/industries", want: 12},
		{path: "/brand/personalities", want: 6},
		{path: "/brand/color-schemes", want: 4},
		{path: "/brand/examples", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, mux, "GET", tt.path, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var resp brand.APIResponse[[]json.RawMessage]
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if !resp.Success {
				t.Error("success = false")
			}
			if len(resp.Data) != tt.want {
				t.Errorf("len(data) = %d, want %d", len(resp.Data), tt.want)
			}
			if resp.Timestamp.IsZero() {
				t.Error("timestamp missing")
			}
		})
	}
}

func TestCatalogsMatchRequestEnums(t *testing.T) {
	ids := func(opts []brand.Option) []string {
		out := make([]string, len(opts))
		for i, o := range opts {
			out[i] = o.ID
		}
		return out
	}

	if got := ids(brand.Styles()); !slices.Equal(got, pipeline.Styles) {
		t.Errorf("Styles() ids = %v, want %v", got, pipeline.Styles)
	}
	if got := ids(brand.Industries()); !slices.Equal(got, pipeline.Industries) {
		t.Errorf("Industries() ids = %v, want %v", got, pipeline.Industries)
	}
	if got := ids(brand.Personalities()); !slices.Equal(got, pipeline.Traits) {
		t.Errorf("Personalities() ids = %v, want %v", got, pipeline.Traits)
	}

	for _, s := range brand.ColorSchemes() {
		if !slices.Contains(pipeline.ColorSchemes, s.ID) {
			t.Errorf("color scheme %q not accepted by requests", s.ID)
		}
	}

	for _, ex := range brand.Examples() {
		req := pipeline.Request{
			BusinessName:      ex.BusinessName,
			Industry:          ex.Industry,
			Style:             ex.Style,
			ColorScheme:       ex.ColorScheme,
			PersonalityTraits: ex.PersonalityTraits,
			TargetAudience:    ex.TargetAudience,
			Prompt:            ex.Description,
			NegativePrompt:    "blurry, low quality",
			NumLogos:          pipeline.DefaultNumLogos,
			NumVariations:     pipeline.DefaultVariations,
		}
		req.Normalize()
		if err := req.Validate(); err != nil {
			t.Errorf("example %q is not a valid request: %v", ex.BusinessName, err)
		}
	}
}

func TestGenerate(t *testing.T) {
	mux := newMux(t)

	rec := do(t, mux, "POST", "/brand/generate", acmeBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp pipeline.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if resp.Status != pipeline.StatusCompleted {
		t.Errorf("status = %q, want completed", resp.Status)
	}
	if len(resp.Logos) != 2 {
		t.Errorf("len(logos) = %d, want 2", len(resp.Logos))
	}
	if resp.FontSuggestion == "" {
		t.Error("font_suggestion missing")
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	mux := newMux(t)

	emptyName := acmeBody()
	emptyName["business_name"] = "  "

	shortPrompt := acmeBody()
	shortPrompt["prompt"] = "logo please"

	tests := []struct {
		name string
		body any
	}{
		{name: "malformed json", body: "{not json"},
		{name: "empty business name", body: emptyName},
		{name: "two word prompt", body: shortPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, mux, "POST", "/brand/generate", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestStatusUnknownJob(t *testing.T) {
	mux := newMux(t)

	rec := do(t, mux, "GET", "/brand/status/does-not-exist", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] != "job not found" {
		t.Errorf("error = %q, want %q", body["error"], "job not found")
	}
}

func TestGenerateAsync(t *testing.T) {
	mux := newMux(t)

	rec := do(t, mux, "POST", "/brand/generate/async", acmeBody())
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body.String())
	}

	var accepted brand.AsyncAccepted
	if err := json.NewDecoder(rec.Body).Decode(&accepted); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if accepted.JobID == "" || accepted.Status != pipeline.StatusProcessing {
		t.Fatalf("accepted = %+v", accepted)
	}

	deadline := time.Now().Add(10 * time.Second)
	last := 0.0
	for time.Now().Before(deadline) {
		rec := do(t, mux, "GET", "/brand/status/"+accepted.JobID, nil)
		if rec.Code == http.StatusNotFound {
			return
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status poll = %d", rec.Code)
		}

		var resp brand.APIResponse[brand.GenerationStatus]
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if resp.Data.Status == pipeline.StatusFailed {
			t.Fatalf("job failed: %s", resp.Data.ErrorMessage)
		}
		if resp.Data.Progress < last {
			t.Fatalf("progress went backwards: %v -> %v", last, resp.Data.Progress)
		}
		last = resp.Data.Progress
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("job did not complete before deadline")
}

func TestGenerateAsyncRejectsInvalid(t *testing.T) {
	mux := newMux(t)

	body := acmeBody()
	body["business_name"] = ""

	rec := do(t, mux, "POST", "/brand/generate/async", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestShareEmail(t *testing.T) {
	mux := newMux(t)

	t.Run("invalid", func(t *testing.T) {
		rec := do(t, mux, "POST", "/brand/share/email", map[string]any{
			"email":      "nobody",
			"brand_data": map[string]any{},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("queued", func(t *testing.T) {
		rec := do(t, mux, "POST", "/brand/share/email", map[string]any{
			"email": "owner@acme.com",
			"brand_data": map[string]any{
				"business_name": "Acme Corp",
				"color_palette": []string{"#4A90E2"},
			},
			"message": "Here is our new look",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}

		var resp brand.APIResponse[share.Receipt]
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if resp.Data.Status != share.StatusQueued || resp.Data.Email != "owner@acme.com" {
			t.Errorf("receipt = %+v", resp.Data)
		}
	})
}
