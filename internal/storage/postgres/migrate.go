package postgres

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/cory-johannsen/guildhall/internal/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationResult reports the schema state after a migration run.
type MigrationResult struct {
	Version uint
	Dirty   bool
	Changed bool
}

// Migrate applies the embedded schema migrations to the database at dsn.
// steps > 0 applies that many up migrations, steps < 0 rolls back that many,
// and steps == 0 applies all pending up migrations.
//
// Precondition: dsn must be a postgres:// URL.
// Postcondition: Returns the resulting schema version or a non-nil error.
func Migrate(dsn string, steps int) (MigrationResult, error) {
	m, err := newMigrator(dsn)
	if err != nil {
		return MigrationResult{}, err
	}
	defer m.Close()

	if steps == 0 {
		err = m.Up()
	} else {
		err = m.Steps(steps)
	}
	return migrationResult(m, err)
}

// MigrateDown rolls back every embedded migration.
func MigrateDown(dsn string) (MigrationResult, error) {
	m, err := newMigrator(dsn)
	if err != nil {
		return MigrationResult{}, err
	}
	defer m.Close()
	return migrationResult(m, m.Down())
}

func newMigrator(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("opening embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	return m, nil
}

func migrationResult(m *migrate.Migrate, err error) (MigrationResult, error) {
	changed := true
	if errors.Is(err, migrate.ErrNoChange) {
		changed = false
		err = nil
	}
	if err != nil {
		return MigrationResult{}, fmt.Errorf("migrating: %w", err)
	}
	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return MigrationResult{}, fmt.Errorf("reading schema version: %w", verr)
	}
	return MigrationResult{Version: version, Dirty: dirty, Changed: changed}, nil
}
