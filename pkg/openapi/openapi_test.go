package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/product-catalog/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Catalog", "1.2.3")
	spec.SetDescription("desc")
	spec.AddServer("http://localhost:8080")
	spec.AddServer("")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("OpenAPI = %q, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Title != "Catalog" || spec.Info.Version != "1.2.3" || spec.Info.Description != "desc" {
		t.Errorf("Info = %+v", spec.Info)
	}
	if len(spec.Servers) != 1 {
		t.Errorf("len(Servers) = %d, want 1", len(spec.Servers))
	}
	if spec.Components == nil {
		t.Fatal("Components = nil")
	}
}

func TestSpec_AddOperation(t *testing.T) {
	spec := openapi.NewSpec("Catalog", "1.0.0")

	for _, m := range []string{"GET", "POST", "PUT", "patch", "DELETE", "HEAD"} {
		spec.AddOperation("/products", m, &openapi.Operation{Summary: m})
	}

	item := spec.Paths["/products"]
	if item == nil {
		t.Fatal("path not added")
	}
	if item.Get == nil || item.Post == nil || item.Put == nil || item.Delete == nil {
		t.Error("standard methods not added")
	}
	if item.Patch == nil || item.Patch.Summary != "patch" {
		t.Error("PATCH operation not added")
	}
}

func TestNewComponents(t *testing.T) {
	c := openapi.NewComponents()

	for _, name := range []string{"Error", "Count", "PageRequest"} {
		if _, ok := c.Schemas[name]; !ok {
			t.Errorf("missing schema %s", name)
		}
	}
	for _, name := range []string{"BadRequest", "NotFound", "Conflict", "PayloadTooLarge", "ServiceUnavailable"} {
		if _, ok := c.Responses[name]; !ok {
			t.Errorf("missing response %s", name)
		}
	}
}

func TestComponents_AddSchemas(t *testing.T) {
	c := openapi.NewComponents()
	c.AddSchemas(map[string]*openapi.Schema{"Product": {Type: "object"}})
	c.AddResponses(map[string]*openapi.Response{"Gone": {Description: "gone"}})

	if c.Schemas["Product"] == nil || c.Schemas["Error"] == nil {
		t.Error("AddSchemas should merge without dropping existing schemas")
	}
	if c.Responses["Gone"] == nil || c.Responses["NotFound"] == nil {
		t.Error("AddResponses should merge without dropping existing responses")
	}
}

func TestMarshalJSON(t *testing.T) {
	spec := openapi.NewSpec("Catalog", "1.0.0")
	spec.AddOperation("/products/{id}", "GET", &openapi.Operation{
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "uuid", "Product ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product", "Product"),
			404: openapi.ResponseRef("NotFound"),
		},
	})

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	var doc struct {
		OpenAPI string `json:"openapi"`
		Paths   map[string]struct {
			Get struct {
				Responses map[string]map[string]any `json:"responses"`
			} `json:"get"`
		} `json:"paths"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	responses := doc.Paths["/products/{id}"].Get.Responses
	if responses["404"]["$ref"] != "#/components/responses/NotFound" {
		t.Errorf("404 response = %v", responses["404"])
	}
}

func TestServeSpec(t *testing.T) {
	w := httptest.NewRecorder()
	openapi.ServeSpec([]byte(`{"openapi":"3.1.0"}`))(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.String() != `{"openapi":"3.1.0"}` {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Override")

	cfg := &openapi.Config{}
	if err := cfg.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Title != "Override" {
		t.Errorf("Title = %q, want Override", cfg.Title)
	}
	if cfg.Path != "/openapi.json" {
		t.Errorf("Path = %q, want /openapi.json", cfg.Path)
	}

	bad := &openapi.Config{Path: "openapi.json"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() accepted relative path")
	}
}
