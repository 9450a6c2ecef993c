// Package module mounts self-contained HTTP surfaces (the API and health
// probes) under single-segment path prefixes on a shared Router.
package module

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/JaimeStill/brandkit/pkg/middleware"
)

// Module serves an inner handler beneath a prefix such as "/api". Requests
// reach the inner handler with the prefix removed and pass through the
// module's own middleware first.
type Module struct {
	prefix     string
	middleware middleware.System
	handler    func() http.Handler
}

// New mounts router beneath prefix. It panics unless prefix is a single
// path segment with a leading slash, since a bad prefix is a wiring bug.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}

	m := &Module{
		prefix:     prefix,
		middleware: middleware.New(),
	}
	m.handler = sync.OnceValue(func() http.Handler {
		return m.middleware.Apply(router)
	})
	return m
}

// Handler is the inner router wrapped in the module middleware. The chain is
// fixed on first call, so Use must come before serving.
func (m *Module) Handler() http.Handler {
	return m.handler()
}

// Prefix is the path segment the module is mounted under.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends to the module middleware.
func (m *Module) Use(mw ...middleware.Func) {
	m.middleware.Use(mw...)
}

// Serve dispatches req to the module with its prefix stripped. The mount
// point itself maps to "/".
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	rest := strings.TrimPrefix(req.URL.Path, m.prefix)
	if rest == "" {
		rest = "/"
	}

	inner := req.Clone(req.Context())
	inner.URL.Path = rest
	inner.URL.RawPath = ""

	m.Handler().ServeHTTP(w, inner)
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case prefix[0] != '/':
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case strings.Count(prefix, "/") != 1:
		return fmt.Errorf("module prefix must be a single path segment: %s", prefix)
	}
	return nil
}
