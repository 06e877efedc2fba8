package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"
)

const (
	EnvAssetsDirectory   = "ASSETS_DIRECTORY"
	EnvAssetsRoutePrefix = "ASSETS_ROUTE_PREFIX"
	EnvAssetsWorkers     = "ASSETS_WORKERS"
	EnvAssetsQueueSize   = "ASSETS_QUEUE_SIZE"
	EnvAssetsTaskTimeout = "ASSETS_TASK_TIMEOUT"
)

// AssetsConfig controls preview image storage and the background queue
// that writes and removes image files.
type AssetsConfig struct {
	// Directory is the storage key prefix for image files.
	Directory string `toml:"directory"`
	// RoutePrefix is the public path images are served from.
	RoutePrefix string `toml:"route_prefix"`
	Workers     int    `toml:"workers"`
	QueueSize   int    `toml:"queue_size"`
	TaskTimeout string `toml:"task_timeout"`
}

func (c *AssetsConfig) TaskTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.TaskTimeout)
	return d
}

func (c *AssetsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *AssetsConfig) Merge(overlay *AssetsConfig) {
	if overlay.Directory != "" {
		c.Directory = overlay.Directory
	}
	if overlay.RoutePrefix != "" {
		c.RoutePrefix = overlay.RoutePrefix
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.QueueSize != 0 {
		c.QueueSize = overlay.QueueSize
	}
	if overlay.TaskTimeout != "" {
		c.TaskTimeout = overlay.TaskTimeout
	}
}

func (c *AssetsConfig) loadDefaults() {
	if c.Directory == "" {
		c.Directory = "product-images"
	}
	if c.RoutePrefix == "" {
		c.RoutePrefix = "/product-images"
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.QueueSize == 0 {
		c.QueueSize = 64
	}
	if c.TaskTimeout == "" {
		c.TaskTimeout = "30s"
	}
}

func (c *AssetsConfig) loadEnv() {
	if v := os.Getenv(EnvAssetsDirectory); v != "" {
		c.Directory = v
	}
	if v := os.Getenv(EnvAssetsRoutePrefix); v != "" {
		c.RoutePrefix = v
	}
	if v := os.Getenv(EnvAssetsWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv(EnvAssetsQueueSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.QueueSize = n
		}
	}
	if v := os.Getenv(EnvAssetsTaskTimeout); v != "" {
		c.TaskTimeout = v
	}
}

func (c *AssetsConfig) validate() error {
	dir := path.Clean(c.Directory)
	if dir == "." || dir == ".." || strings.HasPrefix(dir, "../") || path.IsAbs(dir) {
		return fmt.Errorf("directory must be a relative path inside the storage base path")
	}
	c.Directory = dir

	if !strings.HasPrefix(c.RoutePrefix, "/") || len(c.RoutePrefix) == 1 || strings.Contains(c.RoutePrefix[1:], "/") {
		return fmt.Errorf("route_prefix must be a single path segment such as /product-images")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("queue_size must not be negative")
	}
	d, err := time.ParseDuration(c.TaskTimeout)
	if err != nil {
		return fmt.Errorf("invalid task_timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("task_timeout must be positive")
	}
	return nil
}
