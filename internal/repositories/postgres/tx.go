package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"order-functions-api/internal/repositories"
)

// withScope runs fn in a read-only transaction. For non-service scopes the
// caller's claims are published as request.jwt.claims for the lifetime of
// the transaction so row level security policies see them.
func withScope(ctx context.Context, pool *pgxpool.Pool, scope repositories.AccessScope, fn func(tx pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return repositories.ConnectionError(err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if !scope.IsService() {
		if _, err := tx.Exec(ctx, `SELECT set_config('request.jwt.claims', $1, true)`, scope.Claims); err != nil {
			return fmt.Errorf("publish request claims: %w", err)
		}
	}

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ownerFilter returns the ownership condition for a non-service scope, using
// the next positional parameter
func ownerFilter(scope repositories.AccessScope, column string, nextParam int) (string, []any) {
	if scope.IsService() {
		return "", nil
	}
	return fmt.Sprintf(" AND %s = $%d", column, nextParam), []any{scope.UserID}
}

func logQuery(logger *logrus.Logger, operation, table string, start time.Time, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     table,
		"duration":  time.Since(start),
	}
	if err != nil {
		fields["error"] = err.Error()
		logger.WithFields(fields).Error("Query failed")
		return
	}
	logger.WithFields(fields).Debug("Query executed")
}
