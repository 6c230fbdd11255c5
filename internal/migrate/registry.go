// Package migrate holds the schema migration registry and the forward-only
// runner that brings an embedded store up to the registry's latest version.
package migrate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Direction identifies which way a migration moves the schema. Only Up is
// supported; the engine never migrates downward.
type Direction string

// Up is the only direction a registered migration may have.
const Up Direction = "up"

// Migration is a single versioned schema-change unit.
type Migration struct {
	Version     int64
	Description string
	Script      string
	Direction   Direction
}

// Checksum returns the SHA-256 hex digest of the script, recorded alongside
// the applied version to detect edits to already shipped migrations.
func (m Migration) Checksum() string {
	sum := sha256.Sum256([]byte(m.Script))
	return hex.EncodeToString(sum[:])
}

// Registry is an ordered, immutable catalog of migrations. The declaration
// order is the application order.
type Registry struct {
	migrations []Migration
}

// NewRegistry validates the given migrations and returns a Registry holding a
// private copy of them. Versions must be positive and strictly increasing in
// declaration order; the registry never sorts or deduplicates.
func NewRegistry(migrations ...Migration) (*Registry, error) {
	out := make([]Migration, 0, len(migrations))
	var prev int64
	for i, m := range migrations {
		if m.Version <= 0 {
			return nil, fmt.Errorf("migration #%d: version must be positive, got %d", i+1, m.Version)
		}
		if m.Version <= prev {
			return nil, fmt.Errorf("migration #%d: version %d must be greater than previous version %d", i+1, m.Version, prev)
		}
		if strings.TrimSpace(m.Description) == "" {
			return nil, fmt.Errorf("migration %d: description is required", m.Version)
		}
		if strings.TrimSpace(m.Script) == "" {
			return nil, fmt.Errorf("migration %d: script is required", m.Version)
		}
		if m.Direction == "" {
			m.Direction = Up
		}
		if m.Direction != Up {
			return nil, fmt.Errorf("migration %d: unsupported direction %q", m.Version, m.Direction)
		}
		prev = m.Version
		out = append(out, m)
	}
	return &Registry{migrations: out}, nil
}

// MustRegistry is like NewRegistry but panics on an invalid declaration.
// Intended for package-level registries whose contents are fixed at build time.
func MustRegistry(migrations ...Migration) *Registry {
	r, err := NewRegistry(migrations...)
	if err != nil {
		panic(err)
	}
	return r
}

// Migrations returns a copy of the registered migrations in application order.
func (r *Registry) Migrations() []Migration {
	out := make([]Migration, len(r.migrations))
	copy(out, r.migrations)
	return out
}

// Len returns the number of registered migrations.
func (r *Registry) Len() int { return len(r.migrations) }

// Latest returns the highest registered version, or 0 for an empty registry.
func (r *Registry) Latest() int64 {
	if len(r.migrations) == 0 {
		return 0
	}
	return r.migrations[len(r.migrations)-1].Version
}

// Pending returns, in ascending order, every migration whose version exceeds
// current.
func (r *Registry) Pending(current int64) []Migration {
	var out []Migration
	for _, m := range r.migrations {
		if m.Version > current {
			out = append(out, m)
		}
	}
	return out
}

// Lookup returns the migration registered under version.
func (r *Registry) Lookup(version int64) (Migration, bool) {
	for _, m := range r.migrations {
		if m.Version == version {
			return m, true
		}
	}
	return Migration{}, false
}
