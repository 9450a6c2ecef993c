package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/brandkit/pkg/openapi"
	"github.com/JaimeStill/brandkit/pkg/routes"
)

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/v1",
		Children: []routes.Group{
			{
				Prefix: "/brand",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/styles", Handler: respond("styles")},
					{Method: "GET", Pattern: "/status/{job_id}", Handler: func(w http.ResponseWriter, r *http.Request) {
						w.Write([]byte(r.PathValue("job_id")))
					}},
				},
			},
			{
				Prefix: "/kits",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: respond("list")},
					{Method: "DELETE", Pattern: "/{id}", Handler: respond("deleted")},
				},
			},
		},
	})

	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{"child route", "GET", "/v1/brand/styles", http.StatusOK, "styles"},
		{"path value", "GET", "/v1/brand/status/abc", http.StatusOK, "abc"},
		{"empty pattern", "GET", "/v1/kits", http.StatusOK, "list"},
		{"method routed", "DELETE", "/v1/kits/1", http.StatusOK, "deleted"},
		{"wrong method", "POST", "/v1/kits", http.StatusMethodNotAllowed, ""},
		{"unregistered", "GET", "/v1/other", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	listOp := &openapi.Operation{Summary: "List kits"}
	deleteOp := &openapi.Operation{Summary: "Delete kit"}
	downloadOp := &openapi.Operation{Summary: "Download object"}
	rootOp := &openapi.Operation{Summary: "Health"}

	spec := openapi.NewSpec("Test", "1.0.0")
	routes.Describe(spec,
		routes.Group{
			Prefix: "/v1",
			Children: []routes.Group{
				{
					Prefix: "/kits",
					Routes: []routes.Route{
						{Method: "GET", Pattern: "", Handler: respond("list"), OpenAPI: listOp},
						{Method: "DELETE", Pattern: "/{id}", Handler: respond("deleted"), OpenAPI: deleteOp},
						{Method: "GET", Pattern: "/{id}", Handler: respond("undocumented")},
					},
				},
				{
					Prefix: "/storage",
					Routes: []routes.Route{
						{Method: "GET", Pattern: "/{key...}", Handler: respond("file"), OpenAPI: downloadOp},
					},
				},
			},
		},
		routes.Group{
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{$}", Handler: respond("ok"), OpenAPI: rootOp},
			},
		},
	)

	if got := spec.Paths["/v1/kits"]; got == nil || got.Get != listOp {
		t.Errorf("/v1/kits GET not documented: %+v", got)
	}
	if got := spec.Paths["/v1/kits/{id}"]; got == nil || got.Delete != deleteOp || got.Get != nil {
		t.Errorf("/v1/kits/{id} = %+v, want only DELETE", got)
	}
	if got := spec.Paths["/v1/storage/{key}"]; got == nil || got.Get != downloadOp {
		t.Errorf("wildcard path not converted: %v", spec.Paths)
	}
	if got := spec.Paths["/"]; got == nil || got.Get != rootOp {
		t.Errorf("exact root not converted: %v", spec.Paths)
	}
}

func TestDescribeInheritsGroupTag(t *testing.T) {
	untagged := &openapi.Operation{Summary: "List kits"}
	tagged := &openapi.Operation{Summary: "Usage", Tags: []string{"Admin"}}

	spec := openapi.NewSpec("Test", "1.0.0")
	routes.Describe(spec, routes.Group{
		Prefix: "/v1",
		Tag:    "Archive",
		Children: []routes.Group{
			{
				Prefix: "/kits",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: respond("list"), OpenAPI: untagged},
					{Method: "GET", Pattern: "/usage", Handler: respond("usage"), OpenAPI: tagged},
				},
			},
		},
	})

	list := spec.Paths["/v1/kits"].Get
	if len(list.Tags) != 1 || list.Tags[0] != "Archive" {
		t.Errorf("inherited tags = %v, want [Archive]", list.Tags)
	}
	if len(untagged.Tags) != 0 {
		t.Errorf("shared operation mutated: %v", untagged.Tags)
	}
	if usage := spec.Paths["/v1/kits/usage"].Get; usage != tagged {
		t.Errorf("explicitly tagged operation replaced: %+v", usage)
	}
}

func TestWalkVisitsInOrder(t *testing.T) {
	var visited []string
	routes.Walk(func(path, tag string, r routes.Route) {
		visited = append(visited, r.Method+" "+path+" "+tag)
	},
		routes.Group{
			Prefix: "/v1",
			Routes: []routes.Route{{Method: "GET", Pattern: "/styles"}},
			Children: []routes.Group{
				{Prefix: "/kits", Tag: "Kits", Routes: []routes.Route{{Method: "DELETE", Pattern: "/{id}"}}},
			},
		},
	)

	want := []string{"GET /v1/styles ", "DELETE /v1/kits/{id} Kits"}
	if len(visited) != len(want) {
		t.Fatalf("visited = %q, want %q", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}
}
