// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all contactform configuration.
type Config struct {
	Endpoint Endpoint `yaml:"endpoint"`
	Log      Log      `yaml:"log"`
	UI       UI       `yaml:"ui"`
}

// Endpoint holds the submission target.
type Endpoint struct {
	URL string `yaml:"url"`
}

// Log holds structured logging settings.
type Log struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format"` // "text" | "json"
	File   string `yaml:"file"`   // Empty means the command's default sink.
}

// UI holds interactive form settings.
type UI struct {
	AltScreen bool `yaml:"alt_screen"`
}

// DefaultConfig returns a Config with defaults. endpoint is the build-time URL.
func DefaultConfig(endpoint string) Config {
	return Config{
		Endpoint: Endpoint{URL: endpoint},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		UI: UI{AltScreen: true},
	}
}

// Load reads a single YAML config file at path on top of defaults.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path, endpoint string) (*Config, error) {
	return LoadLayered(endpoint, path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(endpoint string, paths ...string) (*Config, error) {
	cfg := DefaultConfig(endpoint)

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
	if c.Endpoint.URL == "" {
		return errors.New("config: endpoint.url cannot be empty")
	}
	u, err := url.Parse(c.Endpoint.URL)
	if err != nil {
		return fmt.Errorf("config: endpoint.url %q: %w", c.Endpoint.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: endpoint.url must be an absolute http(s) URL, got %q", c.Endpoint.URL)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
		// valid
	default:
		return fmt.Errorf("config: log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTFORM_ENDPOINT, CONTACTFORM_LOG_LEVEL, CONTACTFORM_LOG_FILE.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CONTACTFORM_ENDPOINT"); v != "" {
		c.Endpoint.URL = v
	}
	if v := os.Getenv("CONTACTFORM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CONTACTFORM_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Endpoint *rawEndpoint `yaml:"endpoint"`
	Log      *rawLog      `yaml:"log"`
	UI       *rawUI       `yaml:"ui"`
}

type rawEndpoint struct {
	URL *string `yaml:"url"`
}

type rawLog struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
	File   *string `yaml:"file"`
}

type rawUI struct {
	AltScreen *bool `yaml:"alt_screen"`
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
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Endpoint != nil && layer.Endpoint.URL != nil {
		c.Endpoint.URL = *layer.Endpoint.URL
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.Format != nil {
			c.Log.Format = *layer.Log.Format
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
	if layer.UI != nil && layer.UI.AltScreen != nil {
		c.UI.AltScreen = *layer.UI.AltScreen
	}
}
