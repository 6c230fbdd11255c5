package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "vincowealth/internal/errors"
	"vincowealth/internal/logger"
)

// Manager owns the embedded store. Writers are serialized through a single
// process-wide lock; readers use the connection pool directly.
type Manager struct {
	db     *gorm.DB
	path   string
	writeM sync.Mutex
}

// Open opens (creating if needed) the store described by config and checks
// that it is readable, writable, and enforcing foreign keys. Any failure is a
// STORE_UNAVAILABLE error.
func Open(config *Config) (*Manager, error) {
	dsn, err := config.DSN()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	logLevel := gormlogger.Warn
	if config.Silent {
		logLevel = gormlogger.Silent
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, fmt.Errorf("open %s: %w", config.Path, err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, fmt.Errorf("get underlying DB: %w", err))
	}
	sqlDB.SetMaxOpenConns(config.maxOpenConns())
	sqlDB.SetMaxIdleConns(config.maxOpenConns())
	sqlDB.SetConnMaxLifetime(time.Hour)

	m := &Manager{db: db, path: config.Path}
	if err := m.probe(); err != nil {
		_ = sqlDB.Close()
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, fmt.Errorf("probe %s: %w", config.Path, err))
	}

	logger.Named("store").Infow("opened", "path", config.Path, "memory", config.Memory)
	return m, nil
}

// probe fails on a locked, corrupted, or read-only store before any
// migration runs.
func (m *Manager) probe() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var check string
	if err := m.db.Raw("PRAGMA quick_check").Scan(&check).Error; err != nil {
		return err
	}
	if check != "ok" {
		return fmt.Errorf("integrity check: %s", check)
	}

	var fk int
	if err := m.db.Raw("PRAGMA foreign_keys").Scan(&fk).Error; err != nil {
		return err
	}
	if fk != 1 {
		return fmt.Errorf("foreign key enforcement is disabled")
	}

	// Rewriting user_version with its own value is a no-op write that fails on
	// read-only or locked files.
	var userVersion int
	if err := m.db.Raw("PRAGMA user_version").Scan(&userVersion).Error; err != nil {
		return err
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		return tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", userVersion)).Error
	})
}

// DB returns the underlying GORM database instance for reads.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Path returns the configured store path.
func (m *Manager) Path() string {
	return m.path
}

// Exclusive runs fn while holding the write lock. fn receives the pool
// itself, not a transaction; callers open their own transactions.
func (m *Manager) Exclusive(ctx context.Context, fn func(db *gorm.DB) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.writeM.Lock()
	defer m.writeM.Unlock()
	return fn(m.db.WithContext(ctx))
}

// Write runs fn in a single transaction while holding the write lock. The
// transaction commits when fn returns nil and rolls back otherwise.
func (m *Manager) Write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.Exclusive(ctx, func(db *gorm.DB) error {
		return db.Transaction(fn)
	})
}

// Close closes the underlying connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
