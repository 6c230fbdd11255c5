// Package migrations embeds the store's schema migrations. Files follow the
// golang-migrate naming scheme, VERSION_description.up.sql; there are no down
// migrations.
package migrations

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4/source/iofs"

	"vincowealth/internal/migrate"
)

// FS holds the embedded migration scripts.
//
//go:embed *.up.sql
var FS embed.FS

// Registry returns the registry of shipped migrations.
func Registry() (*migrate.Registry, error) {
	src, err := iofs.New(FS, ".")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	defer src.Close()

	return migrate.LoadRegistry(src)
}
