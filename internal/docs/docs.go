// Package docs serves the interactive API reference page built with Scalar.
// The page loads the OpenAPI document from the service's spec path.
package docs

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed index.html
var indexTemplate string

type pageData struct {
	Title    string
	SpecPath string
}

// Handler serves the pre-rendered documentation page.
type Handler struct {
	page []byte
}

// NewHandler renders the page once so requests only copy bytes.
func NewHandler(title, specPath string) (*Handler, error) {
	t, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse docs template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, pageData{Title: title, SpecPath: specPath}); err != nil {
		return nil, fmt.Errorf("render docs page: %w", err)
	}

	return &Handler{page: buf.Bytes()}, nil
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(h.page)
}
