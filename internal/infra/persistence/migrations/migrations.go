// Package migrations applies the embedded schema migrations with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

//go:embed sql/*.sql
var files embed.FS

// Manager runs migrations against one database.
type Manager struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewManager creates a Manager for db.
func NewManager(db *sql.DB, logger *slog.Logger) *Manager {
	return &Manager{db: db, logger: logger}
}

// Source returns the embedded migration source.
func Source() (source.Driver, error) {
	driver, err := iofs.New(files, "sql")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded migrations")
	}

	return driver, nil
}

func (m *Manager) migrator() (*migrate.Migrate, error) {
	src, err := Source()
	if err != nil {
		return nil, err
	}

	driver, err := postgres.WithInstance(m.db, &postgres.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration driver")
	}

	migrator, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migrator")
	}

	return migrator, nil
}

// Up applies every pending migration. Nothing to apply is not an error.
func (m *Manager) Up() error {
	migrator, err := m.migrator()
	if err != nil {
		return err
	}

	err = migrator.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply")

		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}

	m.logger.Info("Migrations applied successfully")

	return nil
}

// Down rolls back n migrations, or all of them when n is zero.
func (m *Manager) Down(n int) error {
	migrator, err := m.migrator()
	if err != nil {
		return err
	}

	if n > 0 {
		err = migrator.Steps(-n)
	} else {
		err = migrator.Down()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to roll back")

		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to roll back migrations")
	}

	m.logger.Info("Migrations rolled back successfully", slog.Int("steps", n))

	return nil
}

// Version reports the applied version. A database without migrations reports version 0.
func (m *Manager) Version() (uint, bool, error) {
	migrator, err := m.migrator()
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to read migration version")
	}

	return version, dirty, nil
}
