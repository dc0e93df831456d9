package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client
type Config struct {
	APIBaseURL  string
	StateDir    string
	Environment string
	HTTPTimeout time.Duration
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		APIBaseURL:  os.Getenv("QRCHECK_API_URL"),
		StateDir:    os.Getenv("QRCHECK_STATE_DIR"),
		HTTPTimeout: 10 * time.Second,
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8000/api"
	}

	if s := os.Getenv("QRCHECK_HTTP_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.HTTPTimeout = d
		} else {
			log.Printf("Warning: invalid QRCHECK_HTTP_TIMEOUT %q, using default: %v", s, err)
		}
	}

	// Tokens live under the user config dir unless overridden.
	if cfg.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		cfg.StateDir = filepath.Join(base, "qrcheck")
	}

	return cfg, nil
}
