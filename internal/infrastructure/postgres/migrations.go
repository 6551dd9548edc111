package postgres

import (
	"embed"

	pkgpostgres "github.com/jobguard/jobguard/pkg/postgres"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies the bundled schema migrations. When dir is set, migrations
// are read from that directory instead, e.g. "file://./migrations".
func Migrate(dsn, dir string) error {
	if dir != "" {
		return pkgpostgres.RunMigrations(dsn, dir)
	}
	return pkgpostgres.RunEmbeddedMigrations(dsn, migrationFS, "migrations")
}

// MigrateDown rolls back every bundled migration.
func MigrateDown(dsn string) error {
	return pkgpostgres.RunEmbeddedMigrationsDown(dsn, migrationFS, "migrations")
}
