package migrate_test

import (
	"strings"
	"testing"

	"vincowealth/internal/migrate"
)

func mig(version int64, script string) migrate.Migration {
	return migrate.Migration{Version: version, Description: "m", Script: script}
}

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name    string
		input   []migrate.Migration
		wantErr string
	}{
		{"empty registry", nil, ""},
		{"ascending versions", []migrate.Migration{mig(1, "SELECT 1"), mig(2, "SELECT 2"), mig(5, "SELECT 5")}, ""},
		{"zero version", []migrate.Migration{mig(0, "SELECT 1")}, "must be positive"},
		{"duplicate version", []migrate.Migration{mig(1, "SELECT 1"), mig(1, "SELECT 2")}, "must be greater"},
		{"descending versions", []migrate.Migration{mig(2, "SELECT 1"), mig(1, "SELECT 2")}, "must be greater"},
		{"blank script", []migrate.Migration{mig(1, "  ")}, "script is required"},
		{"blank description", []migrate.Migration{{Version: 1, Script: "SELECT 1"}}, "description is required"},
		{"down direction", []migrate.Migration{{Version: 1, Description: "m", Script: "SELECT 1", Direction: "down"}}, "unsupported direction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := migrate.NewRegistry(tt.input...)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if reg.Len() != len(tt.input) {
					t.Errorf("expected %d migrations, got %d", len(tt.input), reg.Len())
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegistry_Queries(t *testing.T) {
	reg := migrate.MustRegistry(mig(1, "SELECT 1"), mig(2, "SELECT 2"), mig(4, "SELECT 4"))

	if reg.Latest() != 4 {
		t.Errorf("expected latest 4, got %d", reg.Latest())
	}

	pending := reg.Pending(1)
	if len(pending) != 2 || pending[0].Version != 2 || pending[1].Version != 4 {
		t.Errorf("unexpected pending after 1: %+v", pending)
	}
	if len(reg.Pending(4)) != 0 {
		t.Error("expected nothing pending at latest")
	}
	if len(reg.Pending(0)) != 3 {
		t.Error("expected everything pending on an empty store")
	}

	if _, ok := reg.Lookup(3); ok {
		t.Error("expected version 3 to be absent")
	}
	m, ok := reg.Lookup(2)
	if !ok || m.Direction != migrate.Up {
		t.Errorf("expected version 2 with default up direction, got %+v", m)
	}

	if empty := migrate.MustRegistry(); empty.Latest() != 0 {
		t.Errorf("expected empty registry latest 0, got %d", empty.Latest())
	}
}

func TestRegistry_MigrationsIsACopy(t *testing.T) {
	reg := migrate.MustRegistry(mig(1, "SELECT 1"))

	list := reg.Migrations()
	list[0].Script = "DROP TABLE clients"

	if m, _ := reg.Lookup(1); m.Script != "SELECT 1" {
		t.Error("registry must not be mutated through Migrations()")
	}
}

func TestMustRegistry_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid registry")
		}
	}()
	migrate.MustRegistry(mig(2, "SELECT 1"), mig(1, "SELECT 1"))
}

func TestMigration_Checksum(t *testing.T) {
	a := mig(1, "CREATE TABLE t (id INTEGER)")
	b := mig(1, "CREATE TABLE t (id INTEGER)")
	c := mig(1, "CREATE TABLE t (id TEXT)")

	if a.Checksum() != b.Checksum() {
		t.Error("expected identical scripts to share a checksum")
	}
	if a.Checksum() == c.Checksum() {
		t.Error("expected different scripts to differ")
	}
	if len(a.Checksum()) != 64 {
		t.Errorf("expected hex sha256, got %q", a.Checksum())
	}
}
