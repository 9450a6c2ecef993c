// Package middleware holds the HTTP middleware shared by the root router and
// the API module.
package middleware

import (
	"net/http"
	"slices"
)

// Func wraps a handler with cross-cutting behavior.
type Func = func(http.Handler) http.Handler

// System is an ordered middleware stack. The first Func added is the
// outermost wrapper.
type System interface {
	Use(mw ...Func)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	funcs []Func
}

// New returns an empty stack.
func New() System {
	return &stack{}
}

func (s *stack) Use(mw ...Func) {
	s.funcs = append(s.funcs, mw...)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	return Chain(s.funcs...)(handler)
}

// Chain composes mw into a single Func with mw[0] outermost.
func Chain(mw ...Func) Func {
	return func(h http.Handler) http.Handler {
		for _, fn := range slices.Backward(mw) {
			h = fn(h)
		}
		return h
	}
}
