package routes

import "net/http"

// Group nests routes under a shared path prefix. Tag, when set, is the
// OpenAPI tag given to documented routes in the group and its children that
// declare none of their own.
type Group struct {
	Prefix   string
	Tag      string
	Routes   []Route
	Children []Group
}

// Walk visits every route in groups depth-first with its full path pattern
// and the nearest enclosing tag.
func Walk(fn func(path, tag string, r Route), groups ...Group) {
	for _, g := range groups {
		walk(fn, "", "", g)
	}
}

func walk(fn func(path, tag string, r Route), prefix, tag string, g Group) {
	prefix += g.Prefix
	if g.Tag != "" {
		tag = g.Tag
	}

	for _, r := range g.Routes {
		fn(prefix+r.Pattern, tag, r)
	}
	for _, child := range g.Children {
		walk(fn, prefix, tag, child)
	}
}

// Register mounts every route in groups on mux as "METHOD path".
func Register(mux *http.ServeMux, groups ...Group) {
	Walk(func(path, _ string, r Route) {
		mux.HandleFunc(r.Method+" "+path, r.Handler)
	}, groups...)
}
