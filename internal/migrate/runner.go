package migrate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "vincowealth/internal/errors"
	"vincowealth/internal/logger"
)

// migrationTable records every applied migration; the store's schema version
// is the highest version recorded in it.
const migrationTable = "schema_migrations"

const createMigrationTableSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version      INTEGER PRIMARY KEY,
    description  TEXT NOT NULL,
    checksum     TEXT NOT NULL,
    applied_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    execution_ms INTEGER NOT NULL DEFAULT 0
)`

// AppliedMigration is a row of the schema_migrations table.
type AppliedMigration struct {
	Version     int64     `gorm:"column:version;primaryKey;autoIncrement:false" json:"version"`
	Description string    `gorm:"column:description;not null" json:"description"`
	Checksum    string    `gorm:"column:checksum;not null" json:"checksum"`
	AppliedAt   time.Time `gorm:"column:applied_at;not null" json:"applied_at"`
	ExecutionMs int64     `gorm:"column:execution_ms;not null" json:"execution_ms"`
}

// TableName pins the metadata table name.
func (AppliedMigration) TableName() string { return migrationTable }

// Store is the store the runner migrates. Exclusive must serialize fn with
// every other writer; the runner holds it for the whole run so that nothing
// observes a partially migrated schema.
type Store interface {
	Exclusive(ctx context.Context, fn func(db *gorm.DB) error) error
	DB() *gorm.DB
}

// Report summarizes a completed run.
type Report struct {
	From    int64       `json:"from"`
	To      int64       `json:"to"`
	Applied []Migration `json:"-"`
}

// Status describes the store's schema relative to a registry.
type Status struct {
	Current int64              `json:"current"`
	Latest  int64              `json:"latest"`
	Pending []Migration        `json:"-"`
	Applied []AppliedMigration `json:"applied"`
}

// Option configures a Runner.
type Option func(*Runner)

// WithObserver registers fn to be called on every state transition.
func WithObserver(fn func(Transition)) Option {
	return func(r *Runner) { r.observe = fn }
}

// Runner applies pending registry migrations to a store, forward only.
type Runner struct {
	store    Store
	registry *Registry
	observe  func(Transition)
	now      func() time.Time

	mu      sync.Mutex
	state   State
	version int64
	failure error
}

// NewRunner creates a Runner for the given store and registry.
func NewRunner(store Store, registry *Registry, opts ...Option) *Runner {
	r := &Runner{
		store:    store,
		registry: registry,
		now:      func() time.Time { return time.Now().UTC() },
		state:    Uninitialized,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the runner's current state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Version returns the schema version last observed or applied by the runner.
func (r *Runner) Version() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// Run brings the store to the registry's latest version. It is a no-op when
// nothing is pending. Each migration's script and its schema_migrations row
// commit in one transaction, so a failure leaves the store at the last fully
// applied version. After a failure the runner stays Failed and every later
// call returns the same error.
//
// ctx bounds only the checking phase; once a migration transaction has begun
// the run is not cancellable.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == Failed {
		return nil, r.failure
	}

	log := logger.Named("migrate")
	report := &Report{}

	err := r.store.Exclusive(ctx, func(db *gorm.DB) error {
		r.transition(Checking, r.version)

		current, err := r.check(db.WithContext(ctx))
		if err != nil {
			return err
		}
		r.version = current
		report.From = current
		report.To = current

		pending := r.registry.Pending(current)
		if len(pending) == 0 {
			log.Debugw("schema is up to date", "version", current)
			return nil
		}

		log.Infow("running database migrations",
			"from", current,
			"to", r.registry.Latest(),
			"pending", len(pending),
		)

		applyDB := db.WithContext(context.WithoutCancel(ctx))
		for _, m := range pending {
			r.transition(Applying, m.Version)
			started := time.Now()

			if err := r.apply(applyDB, m); err != nil {
				return err
			}

			r.version = m.Version
			report.To = m.Version
			report.Applied = append(report.Applied, m)
			r.transition(Applied, m.Version)

			log.Infow("applied migration",
				"version", m.Version,
				"description", m.Description,
				"duration_ms", time.Since(started).Milliseconds(),
			)
		}
		return nil
	})
	if err != nil {
		r.failure = asMigrationError(r.version, err)
		r.transition(Failed, r.version)
		log.Errorw("database migration failed",
			"version", r.version,
			"error", r.failure,
		)
		return nil, r.failure
	}

	r.transition(Ready, r.version)
	return report, nil
}

// Status reports the store's current and latest versions along with the
// applied history. It does not take the exclusive lock.
func (r *Runner) Status(ctx context.Context) (*Status, error) {
	db := r.store.DB().WithContext(ctx)
	status := &Status{Latest: r.registry.Latest()}

	if db.Migrator().HasTable(migrationTable) {
		if err := db.Order("version ASC").Find(&status.Applied).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if n := len(status.Applied); n > 0 {
		status.Current = status.Applied[n-1].Version
	}
	status.Pending = r.registry.Pending(status.Current)
	return status, nil
}

// check bootstraps the metadata table and returns the applied version.
func (r *Runner) check(db *gorm.DB) (int64, error) {
	if err := db.Exec(createMigrationTableSQL).Error; err != nil {
		return 0, apperrors.Migration(0, "create schema_migrations table", err)
	}

	var applied []AppliedMigration
	if err := db.Order("version ASC").Find(&applied).Error; err != nil {
		return 0, apperrors.Migration(0, "read applied migrations", err)
	}

	var current int64
	for _, a := range applied {
		if a.Version > current {
			current = a.Version
		}
		m, ok := r.registry.Lookup(a.Version)
		if !ok {
			continue
		}
		if m.Checksum() != a.Checksum {
			logger.Named("migrate").Warnw("applied migration differs from registry; it will not be re-applied",
				"version", a.Version,
				"description", a.Description,
			)
		}
	}

	if latest := r.registry.Latest(); current > latest {
		return 0, apperrors.Migration(current,
			fmt.Sprintf("store schema version %d is ahead of application version %d", current, latest), nil)
	}
	return current, nil
}

// apply runs one migration and records it in the same transaction.
func (r *Runner) apply(db *gorm.DB, m Migration) error {
	started := time.Now()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.Script).Error; err != nil {
			return apperrors.Migration(m.Version,
				fmt.Sprintf("apply migration %d %s", m.Version, m.Description), err)
		}

		row := &AppliedMigration{
			Version:     m.Version,
			Description: m.Description,
			Checksum:    m.Checksum(),
			AppliedAt:   r.now(),
			ExecutionMs: time.Since(started).Milliseconds(),
		}
		if err := tx.Create(row).Error; err != nil {
			return apperrors.Migration(m.Version,
				fmt.Sprintf("record migration %d %s", m.Version, m.Description), err)
		}
		return nil
	})
}

func (r *Runner) transition(to State, version int64) {
	from := r.state
	r.state = to
	if r.observe != nil {
		r.observe(Transition{From: from, To: to, Version: version})
	}
}

// asMigrationError keeps AppErrors produced by the runner and classifies any
// other failure (for example the store refusing the exclusive lock) as a
// migration failure at the current version.
func asMigrationError(version int64, err error) error {
	if _, ok := err.(*apperrors.AppError); ok {
		return err
	}
	return apperrors.Migration(version, "run migrations", err)
}
