package kits_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/brandkit/internal/kits"
	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/pkg/pagination"
	"github.com/JaimeStill/brandkit/pkg/routes"
)

type mockSystem struct {
	listFn   func(context.Context, pagination.PageRequest, kits.Filters) (*pagination.PageResult[kits.Kit], error)
	findFn   func(context.Context, uuid.UUID) (*kits.Detail, error)
	deleteFn func(context.Context, uuid.UUID) error
}

func (m *mockSystem) Handler() *kits.Handler { return nil }
func (m *mockSystem) Indexed() bool          { return true }

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, f kits.Filters) (*pagination.PageResult[kits.Kit], error) {
	return m.listFn(ctx, page, f)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*kits.Detail, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Save(context.Context, *pipeline.Response) error { return nil }

func (m *mockSystem) Prune(context.Context, time.Time) (int64, error) { return 0, nil }

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func newMux(sys kits.System) *http.ServeMux {
	h := kits.NewHandler(sys, discardLogger(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

func TestHandlerList(t *testing.T) {
	var gotPage pagination.PageRequest
	var gotFilters kits.Filters

	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, f kits.Filters) (*pagination.PageResult[kits.Kit], error) {
			gotPage, gotFilters = page, f
			result := pagination.NewPageResult([]kits.Kit{{BusinessName: "Acme Corp"}}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}

	rec := httptest.NewRecorder()
	newMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/kits?page=2&page_size=500&style=minimal", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotPage.Page != 2 || gotPage.PageSize != 100 {
		t.Errorf("page = %+v, want page 2 size 100", gotPage)
	}
	if gotFilters.Style == nil || *gotFilters.Style != "minimal" {
		t.Errorf("filters = %+v, want style minimal", gotFilters)
	}

	var body pagination.PageResult[kits.Kit]
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].BusinessName != "Acme Corp" {
		t.Errorf("data = %+v", body.Data)
	}
}

func TestHandlerListWithoutIndex(t *testing.T) {
	sys := &mockSystem{
		listFn: func(context.Context, pagination.PageRequest, kits.Filters) (*pagination.PageResult[kits.Kit], error) {
			return nil, kits.ErrIndexUnavailable
		},
	}

	rec := httptest.NewRecorder()
	newMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/kits", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandlerFind(t *testing.T) {
	id := uuid.New()

	sys := &mockSystem{
		findFn: func(_ context.Context, got uuid.UUID) (*kits.Detail, error) {
			if got != id {
				return nil, kits.ErrNotFound
			}
			return &kits.Detail{Kit: kits.Kit{ID: id, BusinessName: "Acme Corp"}}, nil
		},
	}
	mux := newMux(sys)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{name: "found", path: "/kits/" + id.String(), status: http.StatusOK},
		{name: "missing", path: "/kits/" + uuid.NewString(), status: http.StatusNotFound},
		{name: "malformed id", path: "/kits/abc", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestHandlerDelete(t *testing.T) {
	var deleted uuid.UUID

	sys := &mockSystem{
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}

	id := uuid.New()
	rec := httptest.NewRecorder()
	newMux(sys).ServeHTTP(rec, httptest.NewRequest("DELETE", "/kits/"+id.String(), nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if deleted != id {
		t.Errorf("deleted = %s, want %s", deleted, id)
	}
}
