// Package testutil provides test helpers for setting up in-memory stores,
// creating fixtures, and making assertions.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"vincowealth/internal/database"
	"vincowealth/internal/database/migrations"
	"vincowealth/internal/logger"
	"vincowealth/internal/migrate"
)

// storeSeq names each in-memory store so tests never share a database.
var storeSeq atomic.Int64

func init() {
	logger.Init("test")
}

// OpenTestStore opens an empty, unmigrated in-memory store that is closed
// when the test ends.
func OpenTestStore(t *testing.T) *database.Manager {
	t.Helper()

	name := fmt.Sprintf("vincotest_%d", storeSeq.Add(1))
	m, err := database.Open(&database.Config{Path: name, Memory: true, Silent: true})
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := m.Close(); err != nil {
			t.Errorf("failed to close test store: %v", err)
		}
	})
	return m
}

// SetupTestDB opens an in-memory store migrated to the latest shipped schema
// through the migration runner.
func SetupTestDB(t *testing.T) *database.Manager {
	t.Helper()

	m := OpenTestStore(t)
	MigrateTestStore(t, m, 0)
	return m
}

// MigrateTestStore applies the shipped migrations up to and including
// version upTo. Zero means all of them.
func MigrateTestStore(t *testing.T, m *database.Manager, upTo int64) *migrate.Report {
	t.Helper()

	reg, err := migrations.Registry()
	if err != nil {
		t.Fatalf("failed to load migrations: %v", err)
	}
	if upTo > 0 {
		var subset []migrate.Migration
		for _, mg := range reg.Migrations() {
			if mg.Version <= upTo {
				subset = append(subset, mg)
			}
		}
		reg = migrate.MustRegistry(subset...)
	}

	report, err := migrate.NewRunner(m, reg).Run(context.Background())
	if err != nil {
		t.Fatalf("failed to migrate test store: %v", err)
	}
	return report
}
