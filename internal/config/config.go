// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all storefront configuration.
type Config struct {
	Catalog Catalog `yaml:"catalog"`
	Menu    Menu    `yaml:"menu"`
	Header  Header  `yaml:"header"`
	Log     Log     `yaml:"log"`
}

// Catalog holds where the category tree is read from.
type Catalog struct {
	Path     string `yaml:"path"`      // Tree file on disk; empty uses the bundled tree
	LocalDir string `yaml:"local_dir"` // Directory checked before the bundled fixtures
}

// Menu holds desktop menu settings.
type Menu struct {
	StartLevel int `yaml:"start_level"`
}

// Header holds header shell settings.
type Header struct {
	Breakpoint int `yaml:"breakpoint"` // Terminal width below which the mobile layout is used; 0 disables it
}

// Log holds logging settings.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Catalog: Catalog{
			LocalDir: ".storefront/fixtures",
		},
		Menu: Menu{
			StartLevel: 1,
		},
		Header: Header{
			Breakpoint: 80,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Menu.StartLevel < 1 {
		return fmt.Errorf("config: menu.start_level must be at least 1, got %d", c.Menu.StartLevel)
	}
	if c.Header.Breakpoint < 0 {
		return fmt.Errorf("config: header.breakpoint must be non-negative, got %d", c.Header.Breakpoint)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: STOREFRONT_CATALOG, STOREFRONT_BREAKPOINT,
// STOREFRONT_LOG_LEVEL, STOREFRONT_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("STOREFRONT_CATALOG"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("STOREFRONT_BREAKPOINT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid STOREFRONT_BREAKPOINT %q: %w", v, err)
		}
		c.Header.Breakpoint = n
	}
	if v := os.Getenv("STOREFRONT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("STOREFRONT_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Catalog *rawCatalog `yaml:"catalog"`
	Menu    *rawMenu    `yaml:"menu"`
	Header  *rawHeader  `yaml:"header"`
	Log     *rawLog     `yaml:"log"`
}

type rawCatalog struct {
	Path     *string `yaml:"path"`
	LocalDir *string `yaml:"local_dir"`
}

type rawMenu struct {
	StartLevel *int `yaml:"start_level"`
}

type rawHeader struct {
	Breakpoint *int `yaml:"breakpoint"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Catalog != nil {
		if layer.Catalog.Path != nil {
			c.Catalog.Path = *layer.Catalog.Path
		}
		if layer.Catalog.LocalDir != nil {
			c.Catalog.LocalDir = *layer.Catalog.LocalDir
		}
	}
	if layer.Menu != nil && layer.Menu.StartLevel != nil {
		c.Menu.StartLevel = *layer.Menu.StartLevel
	}
	if layer.Header != nil && layer.Header.Breakpoint != nil {
		c.Header.Breakpoint = *layer.Header.Breakpoint
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
