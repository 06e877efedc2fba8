package assets_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"

	"github.com/JaimeStill/product-catalog/internal/assets"
	"github.com/JaimeStill/product-catalog/pkg/openapi"
	"github.com/JaimeStill/product-catalog/pkg/routes"
)

func newImageMux(t *testing.T) (*http.ServeMux, *fixture) {
	t.Helper()

	f := newFixture(t, nil)
	t.Cleanup(func() { f.queue.Close() })

	h := assets.NewHandler(f.manager, discardLogger())
	mux := http.NewServeMux()
	routes.Register(mux, "/product-images", openapi.NewSpec("Test", "1.0.0"), h.Routes())
	return mux, f
}

func TestHandler_Serve(t *testing.T) {
	mux, f := newImageMux(t)
	f.files.Store(context.Background(), "product-images/preview_1.png", pngBytes)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/preview_1.png", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if w.Body.String() != string(pngBytes) {
		t.Errorf("body = %v, want %v", w.Body.Bytes(), pngBytes)
	}
}

func TestHandler_Serve_Range(t *testing.T) {
	mux, f := newImageMux(t)
	f.files.Store(context.Background(), "product-images/preview_1.png", pngBytes)

	r := httptest.NewRequest(http.MethodGet, "/preview_1.png", nil)
	r.Header.Set("Range", "bytes=0-3")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusPartialContent {
		t.Fatalf("status = %d, want 206", w.Code)
	}
	if w.Body.String() != string(pngBytes[:4]) {
		t.Errorf("body = %v, want %v", w.Body.Bytes(), pngBytes[:4])
	}
}

func TestHandler_Serve_Errors(t *testing.T) {
	mux, _ := newImageMux(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"missing", "/preview_9.png", http.StatusNotFound},
		{"encoded traversal", "/..%2Fconfig.toml", http.StatusBadRequest},
		{"encoded backslash", "/..%5Cconfig.toml", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestHandler_Serve_HiddenTempFile(t *testing.T) {
	mux, f := newImageMux(t)
	afero.WriteFile(f.mem, basePath+"/product-images/.preview_1.png.42.tmp", pngBytes, 0644)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/.preview_1.png.42.tmp", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
