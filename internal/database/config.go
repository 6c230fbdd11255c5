package database

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"vincowealth/internal/config"
)

// Config holds store configuration
type Config struct {
	Path         string
	BusyTimeout  time.Duration
	MaxOpenConns int
	// Memory opens a private shared-cache in-memory database named Path.
	// Used by tests; the file is never created on disk.
	Memory bool
	// Silent disables gorm's SQL logger.
	Silent bool
}

// NewConfig creates a store configuration from the application config
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Path:         cfg.DBPath,
		BusyTimeout:  cfg.DBBusyTimeout,
		MaxOpenConns: cfg.DBMaxOpenConns,
		Silent:       cfg.IsProduction(),
	}
}

// DSN returns the go-sqlite3 connection string. Foreign keys are enforced on
// every connection, writes take the database lock at BEGIN, and file stores
// use WAL so readers never block the single writer.
func (c *Config) DSN() (string, error) {
	name := strings.TrimSpace(c.Path)
	if name == "" {
		return "", fmt.Errorf("store path is required")
	}

	params := url.Values{}
	params.Set("_foreign_keys", "1")
	params.Set("_txlock", "immediate")
	params.Set("_busy_timeout", fmt.Sprintf("%d", c.busyTimeout().Milliseconds()))

	if c.Memory {
		params.Set("mode", "memory")
		params.Set("cache", "shared")
		return "file:" + name + "?" + params.Encode(), nil
	}

	params.Set("_journal_mode", "WAL")
	params.Set("_synchronous", "NORMAL")
	return "file:" + filepath.ToSlash(filepath.Clean(name)) + "?" + params.Encode(), nil
}

func (c *Config) busyTimeout() time.Duration {
	if c.BusyTimeout <= 0 {
		return 5 * time.Second
	}
	return c.BusyTimeout
}

func (c *Config) maxOpenConns() int {
	if c.MaxOpenConns < 1 {
		return 1
	}
	return c.MaxOpenConns
}
