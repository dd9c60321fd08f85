package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"order-functions-api/internal/models"
	"order-functions-api/internal/repositories"
)

const getProfileSQL = `SELECT id::text, full_name FROM profiles WHERE id::text = $1`

var _ repositories.ProfileRepository = (*ProfileRepository)(nil)

// ProfileRepository implements repositories.ProfileRepository backed by PostgreSQL.
type ProfileRepository struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

// NewProfileRepository returns a ProfileRepository that uses the given pool.
func NewProfileRepository(pool *pgxpool.Pool, logger *logrus.Logger) *ProfileRepository {
	return &ProfileRepository{pool: pool, logger: logger}
}

// GetByID returns the purchaser profile of a user.
func (r *ProfileRepository) GetByID(ctx context.Context, scope repositories.AccessScope, userID string) (*models.PurchaserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, repositories.NewRepositoryError("validate", "profile", userID, repositories.ErrInvalidID)
	}

	var profile models.PurchaserProfile
	err := withScope(ctx, r.pool, scope, func(tx pgx.Tx) error {
		filter, args := ownerFilter(scope, "id::text", 2)
		start := time.Now()
		rows, err := tx.Query(ctx, getProfileSQL+filter, append([]any{userID}, args...)...)
		if err != nil {
			logQuery(r.logger, "get_profile", "profiles", start, err)
			return repositories.NewRepositoryError("get_profile", "profile", userID, err)
		}

		profile, err = pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (models.PurchaserProfile, error) {
			var p models.PurchaserProfile
			err := row.Scan(&p.ID, &p.FullName)
			return p, err
		})
		logQuery(r.logger, "get_profile", "profiles", start, err)

		switch {
		case err == nil:
			return nil
		case errors.Is(err, pgx.ErrNoRows):
			return repositories.NotFoundError("profile", userID)
		case errors.Is(err, pgx.ErrTooManyRows):
			return repositories.MultipleRowsError("profile", userID)
		default:
			return repositories.NewRepositoryError("get_profile", "profile", userID, err)
		}
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}
