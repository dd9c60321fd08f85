package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"order-functions-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// BaseRepository provides common functionality for all SQLite repositories
type BaseRepository[T any] struct {
	db     *sql.DB
	table  string
	logger *logrus.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository[T any](db *sql.DB, table string, logger *logrus.Logger) *BaseRepository[T] {
	if logger == nil {
		logger = logrus.New()
	}
	return &BaseRepository[T]{
		db:     db,
		table:  table,
		logger: logger,
	}
}

// scopeFilter returns the ownership condition for a non-service scope.
// Service scope is unrestricted and gets an empty clause.
func (r *BaseRepository[T]) scopeFilter(scope repositories.AccessScope, column string) (string, []interface{}) {
	if scope.IsService() {
		return "", nil
	}
	return " AND " + column + " = ?", []interface{}{scope.UserID}
}

// logQuery logs a query with its execution time
func (r *BaseRepository[T]) logQuery(operation string, query string, args []interface{}, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"query":     query,
		"args":      args,
		"duration":  duration,
	}

	if err != nil {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
	} else {
		r.logger.WithFields(fields).Debug("Query executed")
	}
}

// executeQuery executes a query and logs the result
func (r *BaseRepository[T]) executeQuery(ctx context.Context, operation, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	duration := time.Since(start)

	r.logQuery(operation, query, args, duration, err)

	if err != nil {
		return nil, repositories.NewRepositoryError(operation, r.table, "", err)
	}

	return rows, nil
}

// queryExactlyOne runs a single-entity lookup and fails unless exactly one
// row matches
func (r *BaseRepository[T]) queryExactlyOne(ctx context.Context, operation, entity, id, query string, scan func(*sql.Rows) (*T, error), args ...interface{}) (*T, error) {
	rows, err := r.executeQuery(ctx, operation, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, repositories.NewRepositoryError(operation, entity, id, err)
		}
		return nil, repositories.NotFoundError(entity, id)
	}

	entityValue, err := scan(rows)
	if err != nil {
		return nil, repositories.NewRepositoryError(operation, entity, id, err)
	}

	if rows.Next() {
		return nil, repositories.MultipleRowsError(entity, id)
	}
	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError(operation, entity, id, err)
	}

	return entityValue, nil
}

// validateID validates that an ID is not empty
func (r *BaseRepository[T]) validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return repositories.NewRepositoryError("validate", r.table, id, repositories.ErrInvalidID)
	}
	return nil
}
