package sqlite

import (
	"context"
	"database/sql"

	"order-functions-api/internal/models"
	"order-functions-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ProfileRepository implements the ProfileRepository interface for SQLite
type ProfileRepository struct {
	*BaseRepository[models.PurchaserProfile]
}

// NewProfileRepository creates a new SQLite profile repository
func NewProfileRepository(db *sql.DB, logger *logrus.Logger) repositories.ProfileRepository {
	return &ProfileRepository{
		BaseRepository: NewBaseRepository[models.PurchaserProfile](db, "profiles", logger),
	}
}

// GetByID retrieves a purchaser profile by user ID
func (r *ProfileRepository) GetByID(ctx context.Context, scope repositories.AccessScope, userID string) (*models.PurchaserProfile, error) {
	if err := r.validateID(userID); err != nil {
		return nil, err
	}

	filter, filterArgs := r.scopeFilter(scope, "id")
	query := `SELECT id, full_name FROM profiles WHERE id = ?` + filter + ` LIMIT 2`

	args := append([]interface{}{userID}, filterArgs...)
	return r.queryExactlyOne(ctx, "get_profile", "profile", userID, query, func(rows *sql.Rows) (*models.PurchaserProfile, error) {
		profile := &models.PurchaserProfile{}
		var fullName sql.NullString
		if err := rows.Scan(&profile.ID, &fullName); err != nil {
			return nil, err
		}
		if fullName.Valid {
			profile.FullName = &fullName.String
		}
		return profile, nil
	}, args...)
}
