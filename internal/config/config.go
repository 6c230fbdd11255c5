package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"vincowealth/internal/logger"
)

// Config holds application configuration
type Config struct {
	Env string `env:"VINCO_ENV" envDefault:"development"`

	// Store
	DBPath         string        `env:"VINCO_DB_PATH"          envDefault:"vincowealth.db"`
	DBBusyTimeout  time.Duration `env:"VINCO_DB_BUSY_TIMEOUT"  envDefault:"5s"`
	DBMaxOpenConns int           `env:"VINCO_DB_MAX_OPEN_CONNS" envDefault:"4"`

	// Command surface
	ListenAddr     string        `env:"VINCO_LISTEN_ADDR"     envDefault:"127.0.0.1:1420"`
	AllowedOrigins []string      `env:"VINCO_ALLOWED_ORIGINS" envSeparator:"," envDefault:"tauri://localhost,http://localhost:3000"`
	SessionSecret  string        `env:"VINCO_SESSION_SECRET"`
	SessionTTL     time.Duration `env:"VINCO_SESSION_TTL"     envDefault:"12h"`

	// Shell
	WindowTitle string `env:"VINCO_WINDOW_TITLE" envDefault:"Vinco Wealth Management"`
}

// Load loads configuration from the environment, reading a .env file first
// when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debugw("no .env file loaded", "error", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DBPath == "" {
		return nil, fmt.Errorf("VINCO_DB_PATH must not be empty")
	}
	if cfg.DBMaxOpenConns < 1 {
		return nil, fmt.Errorf("VINCO_DB_MAX_OPEN_CONNS must be at least 1, got %d", cfg.DBMaxOpenConns)
	}
	if cfg.DBBusyTimeout < 0 {
		return nil, fmt.Errorf("VINCO_DB_BUSY_TIMEOUT must not be negative, got %s", cfg.DBBusyTimeout)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("VINCO_SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	// A fresh secret per launch invalidates tokens from earlier sessions.
	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.SessionSecret = secret
	}

	return cfg, nil
}

// IsProduction reports whether diagnostics and developer tooling should be
// suppressed.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
