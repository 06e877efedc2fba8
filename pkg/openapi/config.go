package openapi

import (
	"fmt"
	"os"
	"strings"
)

// Config holds document metadata and the path the document is served from.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Path        string `toml:"path"`
}

type ConfigEnv struct {
	Title       string
	Description string
	Path        string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Product Catalog API"
	}
	if c.Description == "" {
		c.Description = "Product records with managed preview images."
	}
	if c.Path == "" {
		c.Path = "/openapi.json"
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{env.Title, &c.Title},
		{env.Description, &c.Description},
		{env.Path, &c.Path},
	} {
		if f.name == "" {
			continue
		}
		if v := os.Getenv(f.name); v != "" {
			*f.dst = v
		}
	}
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("openapi path %q must start with /", c.Path)
	}
	return nil
}
