package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jewelry/backend/internal/infrastructure/config"
	"github.com/jewelry/backend/migrations"
	"go.uber.org/zap"
)

// Migrator applies the embedded schema migrations of one database driver
type Migrator struct {
	migrate *migrate.Migrate
	driver  string
	logger  *zap.Logger
}

// Source returns the embedded migration set for driver
func Source(driver string) (fs.FS, error) {
	switch driver {
	case config.DriverPostgres, config.DriverMySQL, config.DriverSQLite:
		return fs.Sub(migrations.FS, driver)
	}
	return nil, fmt.Errorf("no migrations for database driver %q", driver)
}

// New creates a Migrator over an open connection. For mysql the connection
// must allow multi statements.
func New(db *sql.DB, driver string, logger *zap.Logger) (*Migrator, error) {
	var (
		instance database.Driver
		err      error
	)
	switch driver {
	case config.DriverPostgres:
		instance, err = postgres.WithInstance(db, &postgres.Config{})
	case config.DriverMySQL:
		instance, err = mysql.WithInstance(db, &mysql.Config{})
	case config.DriverSQLite:
		instance, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s migration driver: %w", driver, err)
	}

	src, err := newSource(driver)
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithInstance("iofs", src, driver, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return &Migrator{migrate: m, driver: driver, logger: logger}, nil
}

// NewFromConfig creates a Migrator that opens its own connection from cfg
func NewFromConfig(cfg config.DatabaseConfig, logger *zap.Logger) (*Migrator, error) {
	src, err := newSource(cfg.Driver)
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.MigrationURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return &Migrator{migrate: m, driver: cfg.Driver, logger: logger}, nil
}

func newSource(driver string) (source.Driver, error) {
	sub, err := Source(driver)
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migrations: %w", driver, err)
	}
	return src, nil
}

// Up runs all pending migrations
func (m *Migrator) Up() error {
	m.logger.Info("Running migrations up", zap.String("driver", m.driver))

	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return m.logVersion("Migrations completed")
}

// Down rolls back all migrations
func (m *Migrator) Down() error {
	m.logger.Info("Running migrations down", zap.String("driver", m.driver))

	err := m.migrate.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}
	m.logger.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations (positive = up, negative = down)
func (m *Migrator) Steps(n int) error {
	m.logger.Info("Running migration steps", zap.Int("steps", n))

	err := m.migrate.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration steps failed: %w", err)
	}
	return m.logVersion("Migration steps completed")
}

// GoTo migrates up or down to a specific version
func (m *Migrator) GoTo(version uint) error {
	m.logger.Info("Migrating to version", zap.Uint("target_version", version))

	err := m.migrate.Migrate(version)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Already at target version")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	}
	m.logger.Info("Migration to version completed", zap.Uint("version", version))
	return nil
}

// Version returns the current version; 0 when nothing was applied
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force sets the version without running migrations.
// Only for repairing a dirty database after a failed migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))

	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	m.logger.Info("Migration version forced", zap.Int("version", version))
	return nil
}

// Drop drops every table in the database
func (m *Migrator) Drop() error {
	m.logger.Warn("Dropping database - all data will be lost")

	if err := m.migrate.Drop(); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	m.logger.Info("Database dropped")
	return nil
}

// Close releases the source and the database driver
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}

func (m *Migrator) logVersion(msg string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
