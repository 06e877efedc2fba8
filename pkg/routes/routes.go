// Package routes registers grouped handlers on a ServeMux and documents
// them in an OpenAPI spec in a single pass.
package routes

import (
	"net/http"

	"github.com/JaimeStill/product-catalog/pkg/openapi"
)

// Register installs every group on mux relative to the mount point and
// adds the groups to spec under basePath.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for i := range groups {
		groups[i].register(mux)
		groups[i].AddToSpec(basePath, spec)
	}
}
