// Package config loads the CLI's runtime settings. Sources are layered:
// defaults, then an optional JSON file (-c/-config), then command-line
// flags, with later sources taking precedence.
package config

import "time"

// Config holds runtime settings for the brandkit CLI.
type Config struct {
	// ServerAddr is the base URL of the backend REST API.
	ServerAddr string

	// DatabaseDSN is the path of the local SQLite database.
	DatabaseDSN string

	// RequestTimeout bounds every backend call.
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:8080"
	c.DatabaseDSN = "brandkit.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
