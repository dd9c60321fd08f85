package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"

	"order-functions-api/internal/database/migrations"
)

// MigrationManager handles database migrations
type MigrationManager struct {
	source *DataSource
	logger *logrus.Logger
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(source *DataSource, logger *logrus.Logger) *MigrationManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &MigrationManager{
		source: source,
		logger: logger,
	}
}

// MigrationInfo contains information about a migration
type MigrationInfo struct {
	Version   uint
	Dirty     bool
	Applied   bool
	Timestamp time.Time
}

// RunMigrations executes all pending migrations
func (m *MigrationManager) RunMigrations() error {
	m.logger.WithField("driver", m.source.Driver).Info("Starting database migrations...")

	mg, err := m.initMigrate()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer mg.Close()

	currentVersion, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	if dirty {
		m.logger.Warn("Database is in dirty state, attempting to force version")
		if err := mg.Force(int(currentVersion)); err != nil {
			return fmt.Errorf("failed to force migration version: %w", err)
		}
	}

	m.logger.WithField("current_version", currentVersion).Info("Current migration version")

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get new migration version: %w", err)
	}

	m.logger.WithField("new_version", newVersion).Info("Migrations completed successfully")
	return nil
}

// RollbackMigration rolls back the last migration
func (m *MigrationManager) RollbackMigration() error {
	m.logger.Info("Rolling back last migration...")

	mg, err := m.initMigrate()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer mg.Close()

	currentVersion, _, err := mg.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("no migrations to rollback")
		}
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	m.logger.WithField("current_version", currentVersion).Info("Rolling back from version")

	if err := mg.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	m.logger.Info("Rollback completed successfully")
	return nil
}

// GetMigrationStatus returns the current migration status
func (m *MigrationManager) GetMigrationStatus() (*MigrationInfo, error) {
	mg, err := m.initMigrate()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer mg.Close()

	version, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("failed to get migration version: %w", err)
	}

	return &MigrationInfo{
		Version:   version,
		Dirty:     dirty,
		Applied:   err == nil,
		Timestamp: time.Now(),
	}, nil
}

// initMigrate builds a migrate instance over the embedded migrations of the
// source's dialect
func (m *MigrationManager) initMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, string(m.source.Driver))
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	databaseURL, err := m.migrateURL()
	if err != nil {
		return nil, err
	}

	mg, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mg, nil
}

// migrateURL rewrites the data store URL into the scheme golang-migrate
// registers for the driver
func (m *MigrationManager) migrateURL() (string, error) {
	switch m.source.Driver {
	case DriverPostgres:
		i := strings.Index(m.source.URL, "://")
		return "pgx5" + m.source.URL[i:], nil
	case DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(m.source.Path), 0755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
		return "sqlite3://" + m.source.Path, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", m.source.Driver)
	}
}
