// internal/profile/repository.go
// Data access for traveler profiles

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrProfileNotFound = errors.New("profile not found")

// Repository defines profile data access
type Repository interface {
	GetByUserID(ctx context.Context, userID int64) (*Profile, error)
	Update(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error)
	UpdateLocation(ctx context.Context, userID int64, lat, lng float64, location string) error
	TouchLastActive(ctx context.Context, userID int64) error
	Search(ctx context.Context, query string, limit int) ([]*Profile, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new profile repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const profileColumns = `id, username, display_name, age, bio, location, location_lat, location_lng,
	interests, travel_styles, next_destination, bucket_list, travel_dates,
	languages, elo_rating, is_verified, last_active, created_at, updated_at`

func (r *postgresRepository) GetByUserID(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, profileColumns)
	if err := r.db.GetContext(ctx, &p, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// Update applies only the fields present in the request
func (r *postgresRepository) Update(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error) {
	setClauses := []string{}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.DisplayName != nil {
		addSet("display_name", *req.DisplayName)
	}
	if req.Age != nil {
		addSet("age", *req.Age)
	}
	if req.Bio != nil {
		addSet("bio", *req.Bio)
	}
	if req.Location != nil {
		addSet("location", *req.Location)
	}
	if req.Latitude != nil {
		addSet("location_lat", *req.Latitude)
	}
	if req.Longitude != nil {
		addSet("location_lng", *req.Longitude)
	}
	if req.Interests != nil {
		addSet("interests", pq.StringArray(req.Interests))
	}
	if req.TravelStyles != nil {
		addSet("travel_styles", pq.StringArray(req.TravelStyles))
	}
	if req.NextDestination != nil {
		addSet("next_destination", *req.NextDestination)
	}
	if req.BucketList != nil {
		addSet("bucket_list", pq.StringArray(req.BucketList))
	}
	if req.TravelDates != nil {
		addSet("travel_dates", *req.TravelDates)
	}
	if req.Languages != nil {
		addSet("languages", pq.StringArray(req.Languages))
	}

	if len(setClauses) == 0 {
		return r.GetByUserID(ctx, userID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, userID)

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argPos, profileColumns,
	)

	var p Profile
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) UpdateLocation(ctx context.Context, userID int64, lat, lng float64, location string) error {
	query := `
		UPDATE users
		SET location_lat = $1, location_lng = $2,
		    location = COALESCE(NULLIF($3, ''), location),
		    updated_at = NOW()
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, lat, lng, location, userID)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if rows == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *postgresRepository) TouchLastActive(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_active = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to touch last_active: %w", err)
	}
	return nil
}

func (r *postgresRepository) Search(ctx context.Context, query string, limit int) ([]*Profile, error) {
	profiles := []*Profile{}
	sqlQuery := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE username ILIKE $1 OR display_name ILIKE $1 OR next_destination ILIKE $1
		ORDER BY last_active DESC
		LIMIT $2`, profileColumns)
	pattern := "%" + query + "%"
	if err := r.db.SelectContext(ctx, &profiles, sqlQuery, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}
	return profiles, nil
}
