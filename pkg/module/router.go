package module

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/JaimeStill/brandkit/pkg/middleware"
)

// Router sends each request to the module owning its first path segment and
// everything else to a native ServeMux. Router middleware runs before any
// module middleware.
type Router struct {
	modules    map[string]*Module
	native     *http.ServeMux
	middleware middleware.System
}

func NewRouter() *Router {
	return &Router{
		modules:    map[string]*Module{},
		native:     http.NewServeMux(),
		middleware: middleware.New(),
	}
}

// Use appends middleware that wraps every request.
func (r *Router) Use(mw ...middleware.Func) {
	r.middleware.Use(mw...)
}

// Handler is the router wrapped in its middleware.
func (r *Router) Handler() http.Handler {
	return r.middleware.Apply(r)
}

// Prefixes lists mounted module prefixes in sorted order.
func (r *Router) Prefixes() []string {
	return slices.Sorted(maps.Keys(r.modules))
}

// HandleNative registers pattern on the fallback mux, for routes such as
// the service info document at "GET /{$}".
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount attaches modules by prefix. Mounting two modules on one prefix is a
// wiring bug and panics.
func (r *Router) Mount(modules ...*Module) {
	for _, m := range modules {
		if _, dup := r.modules[m.prefix]; dup {
			panic(fmt.Sprintf("module prefix already mounted: %s", m.prefix))
		}
		r.modules[m.prefix] = m
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
		req.URL.Path = strings.TrimSuffix(p, "/")
	}

	if m, ok := r.modules[firstSegment(req.URL.Path)]; ok {
		m.Serve(w, req)
		return
	}
	r.native.ServeHTTP(w, req)
}

// firstSegment returns "/api" for "/api/v1/kits" and "/" for "/".
func firstSegment(path string) string {
	rest := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return "/" + rest
}
