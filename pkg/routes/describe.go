package routes

import (
	"strings"

	"github.com/JaimeStill/brandkit/pkg/openapi"
)

// Describe adds every route in groups that carries an OpenAPI operation to
// spec. Untagged operations take their group's tag.
func Describe(spec *openapi.Spec, groups ...Group) {
	Walk(func(path, tag string, r Route) {
		if r.OpenAPI == nil {
			return
		}

		op := r.OpenAPI
		if len(op.Tags) == 0 && tag != "" {
			tagged := *op
			tagged.Tags = []string{tag}
			op = &tagged
		}

		spec.AddOperation(specPath(path), r.Method, op)
	}, groups...)
}

// specPath rewrites a ServeMux pattern as an OpenAPI path template:
// "{key...}" becomes "{key}" and a trailing "{$}" is dropped.
func specPath(pattern string) string {
	path := strings.TrimSuffix(pattern, "{$}")
	path = strings.ReplaceAll(path, "...}", "}")
	if path == "" {
		return "/"
	}
	return path
}
