package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level funcheck.yaml configuration.
type Config struct {
	// MaxErrors caps how many diagnostics are printed; 0 means the default.
	MaxErrors int `yaml:"max_errors"`
	// Color controls diagnostic coloring: "auto", "always" or "never".
	Color string `yaml:"color"`
	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig configures the on-disk export cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the configuration used when no funcheck.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads the configuration at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses funcheck.yaml content from bytes. The path argument is used
// only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) validate(path string) error {
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%s: color must be one of auto, always, never (got %q)", path, c.Color)
	}
	if c.MaxErrors < 0 {
		return fmt.Errorf("%s: max_errors must not be negative (got %d)", path, c.MaxErrors)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.MaxErrors == 0 {
		c.MaxErrors = DefaultMaxErrors
	}
	if c.Color == "" {
		c.Color = "auto"
	}
	if c.Cache.Path == "" {
		c.Cache.Path = DefaultCachePath
	}
}
