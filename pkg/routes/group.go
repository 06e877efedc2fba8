package routes

import (
	"net/http"

	"github.com/JaimeStill/product-catalog/pkg/openapi"
)

// Route binds a method and pattern to a handler with optional documentation.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group is a set of routes under a common prefix. Children inherit the
// parent prefix.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec documents the group's routes under basePath. Operations without
// explicit tags inherit the group tags.
func (g *Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.walk("", func(prefix string, group *Group) {
		if len(group.Schemas) > 0 {
			spec.Components.AddSchemas(group.Schemas)
		}

		for _, route := range group.Routes {
			if route.OpenAPI == nil {
				continue
			}

			op := route.OpenAPI
			if len(op.Tags) == 0 {
				op.Tags = group.Tags
			}

			spec.AddOperation(specPath(basePath+prefix+route.Pattern), route.Method, op)
		}
	})
}

func (g *Group) register(mux *http.ServeMux) {
	g.walk("", func(prefix string, group *Group) {
		for _, route := range group.Routes {
			mux.HandleFunc(route.Method+" "+muxPath(prefix+route.Pattern), route.Handler)
		}
	})
}

func (g *Group) walk(parent string, fn func(prefix string, group *Group)) {
	prefix := parent + g.Prefix
	fn(prefix, g)
	for i := range g.Children {
		g.Children[i].walk(prefix, fn)
	}
}

func muxPath(path string) string {
	if path == "" || path == "/" {
		return "/{$}"
	}
	return path
}

func specPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
