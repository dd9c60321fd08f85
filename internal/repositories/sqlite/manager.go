package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"order-functions-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// SQLiteRepositoryManager implements repositories.RepositoryManager for SQLite
type SQLiteRepositoryManager struct {
	db     *sql.DB
	repos  *repositories.RepositoryContainer
	logger *logrus.Logger
}

// NewSQLiteRepositoryManager wraps an open SQLite database
func NewSQLiteRepositoryManager(db *sql.DB, logger *logrus.Logger) *SQLiteRepositoryManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &SQLiteRepositoryManager{
		db: db,
		repos: &repositories.RepositoryContainer{
			OrderRepo:   NewOrderRepository(db, logger),
			ProfileRepo: NewProfileRepository(db, logger),
		},
		logger: logger,
	}
}

// Repositories returns the repositories bound to this database
func (m *SQLiteRepositoryManager) Repositories() *repositories.RepositoryContainer {
	return m.repos
}

// Ping checks that the database is reachable
func (m *SQLiteRepositoryManager) Ping(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		return repositories.ConnectionError(err)
	}
	return nil
}

// Close closes the database
func (m *SQLiteRepositoryManager) Close() error {
	if err := m.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	m.logger.Info("Database connection closed")
	return nil
}
