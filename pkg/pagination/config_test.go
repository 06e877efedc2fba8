package pagination_test

import (
	"testing"

	"github.com/JaimeStill/product-catalog/pkg/pagination"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
		t.Errorf("got default=%d max=%d, want 20/100", cfg.DefaultPageSize, cfg.MaxPageSize)
	}
}

func TestConfig_Finalize_Env(t *testing.T) {
	t.Setenv("TEST_PAGE_SIZE", "10")
	t.Setenv("TEST_MAX_PAGE_SIZE", "50")

	cfg := &pagination.Config{}
	env := &pagination.ConfigEnv{DefaultPageSize: "TEST_PAGE_SIZE", MaxPageSize: "TEST_MAX_PAGE_SIZE"}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.DefaultPageSize != 10 || cfg.MaxPageSize != 50 {
		t.Errorf("got default=%d max=%d, want 10/50", cfg.DefaultPageSize, cfg.MaxPageSize)
	}
}

func TestConfig_Finalize_DefaultExceedsMax(t *testing.T) {
	cfg := &pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() succeeded, want error")
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := &pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	cfg.Merge(&pagination.Config{MaxPageSize: 250})

	if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 250 {
		t.Errorf("got default=%d max=%d, want 20/250", cfg.DefaultPageSize, cfg.MaxPageSize)
	}
}
