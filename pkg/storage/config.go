package storage

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

const (
	defaultBasePath      = ".data"
	defaultMaxUploadSize = "10MB"
	defaultFileMode      = "0644"
)

// Config contains filesystem storage configuration.
type Config struct {
	// BasePath is the root directory for stored files. Default: ".data"
	BasePath string `toml:"base_path"`
	// MaxUploadSize caps request bodies carrying inline image data. Default: "10MB"
	MaxUploadSize string `toml:"max_upload_size"`
	// FileMode is the octal permission set applied to stored files. Default: "0644"
	FileMode string `toml:"file_mode"`

	maxUploadSize int64
	fileMode      fs.FileMode
}

// Env names the environment variables that override Config fields.
type Env struct {
	BasePath      string
	MaxUploadSize string
	FileMode      string
}

// MaxUploadSizeBytes returns the parsed upload limit. Valid after Finalize.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadSize
}

// FileModeValue returns the parsed file permissions. Valid after Finalize.
func (c *Config) FileModeValue() fs.FileMode {
	return c.fileMode
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from overlay. Sizes and modes are re-parsed by Finalize.
func (c *Config) Merge(overlay *Config) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.FileMode != "" {
		c.FileMode = overlay.FileMode
	}
}

func (c *Config) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = defaultBasePath
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = defaultMaxUploadSize
	}
	if c.FileMode == "" {
		c.FileMode = defaultFileMode
	}
}

func (c *Config) loadEnv(env *Env) {
	for _, o := range []struct {
		name   string
		target *string
	}{
		{env.BasePath, &c.BasePath},
		{env.MaxUploadSize, &c.MaxUploadSize},
		{env.FileMode, &c.FileMode},
	} {
		if o.name == "" {
			continue
		}
		if v := os.Getenv(o.name); v != "" {
			*o.target = v
		}
	}
}

func (c *Config) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSize = size

	mode, err := strconv.ParseUint(c.FileMode, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid file_mode %q: %w", c.FileMode, err)
	}
	if mode&^uint64(fs.ModePerm) != 0 {
		return fmt.Errorf("file_mode %q has bits outside 0777", c.FileMode)
	}
	c.fileMode = fs.FileMode(mode)

	return nil
}
