// Package config loads the server's runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Addr        string `envconfig:"ADDR" default:":8080"`
	DatabaseDSN string `envconfig:"DATABASE_DSN" default:""`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	SecretKey       string        `envconfig:"SECRET_KEY" default:"dev-secret"`
	AccessTokenTTL  time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"720h"`

	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`

	// Login throttling: after LoginMaxAttempts failures within LoginWindow,
	// further attempts for that email are rejected until the window expires.
	LoginMaxAttempts int           `envconfig:"LOGIN_MAX_ATTEMPTS" default:"5"`
	LoginWindow      time.Duration `envconfig:"LOGIN_WINDOW" default:"15m"`

	CardsPerBatch int `envconfig:"CARDS_PER_BATCH" default:"5"`
}

// Load reads configuration from the environment. An empty DatabaseDSN
// selects the in-memory repositories, which is what the tests and local
// demos run on.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return &cfg, nil
}
