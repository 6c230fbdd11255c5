package migrate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/golang-migrate/migrate/v4/source"
)

// LoadRegistry reads every up migration exposed by a golang-migrate source
// driver and returns them as a Registry. The driver's file identifier (the
// part of "1_create_clients_table.up.sql" between the version and the
// direction) becomes the migration description. The driver is not closed.
func LoadRegistry(src source.Driver) (*Registry, error) {
	version, err := src.First()
	if errors.Is(err, fs.ErrNotExist) {
		return NewRegistry()
	}
	if err != nil {
		return nil, fmt.Errorf("read first migration: %w", err)
	}

	var migrations []Migration
	for {
		m, err := readUp(src, version)
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, m)

		next, err := src.Next(version)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read migration after %d: %w", version, err)
		}
		version = next
	}

	return NewRegistry(migrations...)
}

func readUp(src source.Driver, version uint) (Migration, error) {
	r, identifier, err := src.ReadUp(version)
	if errors.Is(err, fs.ErrNotExist) {
		return Migration{}, fmt.Errorf("migration %d has no up script", version)
	}
	if err != nil {
		return Migration{}, fmt.Errorf("open migration %d: %w", version, err)
	}
	defer r.Close()

	body, err := io.ReadAll(r)
	if err != nil {
		return Migration{}, fmt.Errorf("read migration %d: %w", version, err)
	}

	return Migration{
		Version:     int64(version),
		Description: identifier,
		Script:      string(body),
		Direction:   Up,
	}, nil
}
