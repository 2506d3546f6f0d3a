// Package config handles engine configuration loading and defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTileURL points at the public World Imagery tile service. Note the
// {z}/{y}/{x} ordering of this particular server.
const DefaultTileURL = "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}"

// Config holds every tunable of the rendering engine. Zero values are
// replaced with defaults after load.
type Config struct {
	TileURL     string `yaml:"tile_url,omitempty"`
	UserAgent   string `yaml:"user_agent,omitempty"`
	FontRegular string `yaml:"font_regular,omitempty"`
	FontBold    string `yaml:"font_bold,omitempty"`

	TileSize      int     `yaml:"tile_size,omitempty"`
	MaxZoom       int     `yaml:"max_zoom,omitempty"`
	TileCap       int     `yaml:"tile_cap,omitempty"`
	Concurrency   int     `yaml:"concurrency,omitempty"`
	MaxConns      int     `yaml:"max_conns,omitempty"`
	TimeoutSec    float64 `yaml:"timeout_seconds,omitempty"`
	RetryAttempts int     `yaml:"retry_attempts,omitempty"`
	RetryBaseMS   int     `yaml:"retry_base_ms,omitempty"`
	CacheSize     int     `yaml:"cache_size,omitempty"`
	RatePerSec    float64 `yaml:"rate_limit,omitempty"`
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the YAML configuration file from the specified path
// and fills in defaults for unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TileURL == "" {
		c.TileURL = DefaultTileURL
	}
	if c.UserAgent == "" {
		c.UserAgent = "cropmap/1.0"
	}
	if c.TileSize <= 0 {
		c.TileSize = 256
	}
	if c.MaxZoom <= 0 {
		c.MaxZoom = 15
	}
	if c.TileCap <= 0 {
		c.TileCap = 50
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 20
	}
	if c.MaxConns <= 0 {
		c.MaxConns = 10
	}
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = 3
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 3
	}
	if c.RetryBaseMS <= 0 {
		c.RetryBaseMS = 300
	}
	if c.CacheSize <= 0 {
		c.CacheSize = 500
	}
}
