// Package config loads the process configuration from the environment.
//
// All configuration is read exactly once, in main, and handed to the server
// as a value. No package below this one reads environment variables — the
// signing secret and database path travel by injection, never by ambient
// lookup inside business logic.
package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds every externally supplied setting.
//
// DATABASE_PATH and JWT_SECRET are required: starting without a storage
// location or a signing secret is a misconfiguration, not something to paper
// over with a default. Everything else has a sensible development default.
type Config struct {
	Port         int    `env:"PORT" envDefault:"8080"`
	DatabasePath string `env:"DATABASE_PATH" validate:"required"`
	JWTSecret    string `env:"JWT_SECRET" validate:"required,min=16"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// TokenTTL bounds the lifetime of issued bearer tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// ScrapeTimeout caps how long a single link-metadata fetch may take.
	// Scraping is best-effort; a slow site must not hold a save request hostage.
	ScrapeTimeout time.Duration `env:"SCRAPE_TIMEOUT" envDefault:"5s"`

	// AllowedOrigins is the CORS allow-list for the browser client.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads a .env file if one exists, then the process environment, and
// validates the result. A missing DATABASE_PATH or JWT_SECRET is fatal here,
// before any component is constructed.
func Load() (*Config, error) {
	// Absence of .env is fine — production supplies real env vars.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return cfg, nil
}
