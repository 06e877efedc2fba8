package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/product-catalog/pkg/middleware"
)

func serveCORS(cfg *middleware.CORSConfig, method, origin string) (*httptest.ResponseRecorder, bool) {
	called := false
	wrapped := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	return w, called
}

func TestCORS_Disabled(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: false, Origins: []string{"http://localhost:3000"}}

	w, _ := serveCORS(cfg, http.MethodGet, "http://localhost:3000")
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("CORS headers should not be set when disabled")
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "PUT"},
		AllowCredentials: true,
		MaxAge:           7200,
	}

	w, called := serveCORS(cfg, http.MethodGet, "http://localhost:3000")

	if !called {
		t.Error("handler not called")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, PUT" {
		t.Errorf("Access-Control-Allow-Methods = %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("Access-Control-Allow-Credentials should be set")
	}
	if w.Header().Get("Access-Control-Max-Age") != "7200" {
		t.Errorf("Access-Control-Max-Age = %q", w.Header().Get("Access-Control-Max-Age"))
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: true, Origins: []string{"http://localhost:3000"}}

	w, called := serveCORS(cfg, http.MethodGet, "http://evil.com")
	if !called {
		t.Error("handler not called")
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("CORS headers should not be set for disallowed origin")
	}
}

func TestCORS_Preflight(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: true, Origins: []string{"http://localhost:3000"}}

	w, called := serveCORS(cfg, http.MethodOptions, "http://localhost:3000")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if called {
		t.Error("handler should not be called for OPTIONS preflight")
	}
}

func TestCORSConfig_Finalize_Defaults(t *testing.T) {
	cfg := &middleware.CORSConfig{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if len(cfg.AllowedMethods) == 0 || len(cfg.AllowedHeaders) == 0 {
		t.Error("allowed methods and headers should have defaults")
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want 3600", cfg.MaxAge)
	}
}

func TestCORSConfig_Finalize_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", "http://localhost:3000, http://localhost:8080")
	t.Setenv("TEST_CORS_MAX_AGE", "60")

	cfg := &middleware.CORSConfig{}
	env := &middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
		MaxAge:  "TEST_CORS_MAX_AGE",
	}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !cfg.Enabled {
		t.Error("Enabled should be true from env")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://localhost:8080" {
		t.Errorf("Origins = %v", cfg.Origins)
	}
	if cfg.MaxAge != 60 {
		t.Errorf("MaxAge = %d, want 60", cfg.MaxAge)
	}
}

func TestCORSConfig_Finalize_WildcardCredentials(t *testing.T) {
	cfg := &middleware.CORSConfig{Origins: []string{"*"}, AllowCredentials: true}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() succeeded, want error")
	}
}

func TestCORSConfig_Merge(t *testing.T) {
	base := &middleware.CORSConfig{Origins: []string{"http://a"}, MaxAge: 3600}
	base.Merge(&middleware.CORSConfig{Enabled: true, Origins: []string{"http://b"}})

	if !base.Enabled {
		t.Error("Enabled should be merged")
	}
	if len(base.Origins) != 1 || base.Origins[0] != "http://b" {
		t.Errorf("Origins = %v, want [http://b]", base.Origins)
	}
	if base.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want 3600", base.MaxAge)
	}
}
