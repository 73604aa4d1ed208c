package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-driven configuration for the CLI
type Config struct {
	// HTTP Configuration
	RequestTimeout time.Duration `env:"STOREKEEP_REQUEST_TIMEOUT" envDefault:"10s"`

	// Session Configuration
	SessionTTL time.Duration `env:"STOREKEEP_SESSION_TTL" envDefault:"12h"`
	// CredStore selects where session credentials are persisted: "file" or "keyring"
	CredStore string `env:"STOREKEEP_CRED_STORE" envDefault:"file"`

	// Local cache location (empty = user cache dir)
	CacheDir string `env:"STOREKEEP_CACHE_DIR"`

	// Logging Configuration
	LogLevel  string `env:"STOREKEEP_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"STOREKEEP_LOG_FORMAT" envDefault:"console"` // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.CredStore != "file" && cfg.CredStore != "keyring" {
		return nil, fmt.Errorf("invalid STOREKEEP_CRED_STORE %q (must be file or keyring)", cfg.CredStore)
	}

	return &cfg, nil
}
