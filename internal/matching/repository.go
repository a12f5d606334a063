package matching

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound = errors.New("user profile not found")
)

type Repository interface {
	// Profiles (read-only; profile management owns the rows)
	GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error)
	GetCandidatePool(ctx context.Context, userID int64) ([]*UserProfile, error)

	// Swipe ledger
	GetSwipesByUser(ctx context.Context, userID int64) ([]*SwipeRecord, error)
	GetSwipesForPair(ctx context.Context, swiperID, swipedID int64) ([]*SwipeRecord, error)
	InsertSwipe(ctx context.Context, swipe *SwipeRecord) error
	DeleteSwipes(ctx context.Context, ids []int64) error
	HasPositiveSwipe(ctx context.Context, swiperID, swipedID int64) (bool, error)
	GetAllSwipes(ctx context.Context) ([]*SwipeRecord, error)
	GetLikesTargeting(ctx context.Context, userID int64) ([]*LikeReceived, error)

	// Matches
	CreateMatch(ctx context.Context, match *Match) (created bool, err error)
	GetUserMatches(ctx context.Context, userID int64) ([]*Match, error)
	GetMatchForPair(ctx context.Context, user1ID, user2ID int64) (*Match, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const profileColumns = `
	id, display_name, age, bio, location, location_lat, location_lng,
	interests, travel_styles, next_destination, bucket_list, travel_dates,
	is_verified, elo_rating, last_active, created_at
`

func (r *postgresRepository) GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	var profile UserProfile
	query := `SELECT ` + profileColumns + ` FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// GetCandidatePool returns every profile except the user themselves, users
// they disliked, and users they are already matched with. Liked-but-unmatched
// users stay in the pool so a pending like can still become a match.
func (r *postgresRepository) GetCandidatePool(ctx context.Context, userID int64) ([]*UserProfile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM users u
		WHERE u.id != $1
		  AND NOT EXISTS (
		      SELECT 1 FROM swipes s
		      WHERE s.swiper_id = $1 AND s.swiped_id = u.id AND s.kind = 'dislike'
		  )
		  AND NOT EXISTS (
		      SELECT 1 FROM matches m
		      WHERE (m.user1_id = $1 AND m.user2_id = u.id)
		         OR (m.user2_id = $1 AND m.user1_id = u.id)
		  )
		ORDER BY u.id
	`

	var pool []*UserProfile
	if err := r.db.SelectContext(ctx, &pool, query, userID); err != nil {
		return nil, err
	}

	return pool, nil
}

func (r *postgresRepository) GetSwipesByUser(ctx context.Context, userID int64) ([]*SwipeRecord, error) {
	var swipes []*SwipeRecord
	query := `
		SELECT id, swiper_id, swiped_id, kind, created_at
		FROM swipes
		WHERE swiper_id = $1
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &swipes, query, userID); err != nil {
		return nil, err
	}

	return swipes, nil
}

func (r *postgresRepository) GetSwipesForPair(ctx context.Context, swiperID, swipedID int64) ([]*SwipeRecord, error) {
	var swipes []*SwipeRecord
	query := `
		SELECT id, swiper_id, swiped_id, kind, created_at
		FROM swipes
		WHERE swiper_id = $1 AND swiped_id = $2
	`

	if err := r.db.SelectContext(ctx, &swipes, query, swiperID, swipedID); err != nil {
		return nil, err
	}

	return swipes, nil
}

func (r *postgresRepository) InsertSwipe(ctx context.Context, swipe *SwipeRecord) error {
	query := `
		INSERT INTO swipes (swiper_id, swiped_id, kind)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	return r.db.QueryRowxContext(ctx, query, swipe.SwiperID, swipe.SwipedID, swipe.Kind).
		Scan(&swipe.ID, &swipe.CreatedAt)
}

func (r *postgresRepository) DeleteSwipes(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM swipes WHERE id = ANY($1)`
	_, err := r.db.ExecContext(ctx, query, pq.Array(ids))
	return err
}

func (r *postgresRepository) HasPositiveSwipe(ctx context.Context, swiperID, swipedID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM swipes
			WHERE swiper_id = $1 AND swiped_id = $2 AND kind IN ('like', 'superlike')
		)
	`

	err := r.db.GetContext(ctx, &exists, query, swiperID, swipedID)
	return exists, err
}

func (r *postgresRepository) GetAllSwipes(ctx context.Context) ([]*SwipeRecord, error) {
	var swipes []*SwipeRecord
	query := `
		SELECT id, swiper_id, swiped_id, kind, created_at
		FROM swipes
		ORDER BY swiper_id, swiped_id, created_at DESC
	`

	if err := r.db.SelectContext(ctx, &swipes, query); err != nil {
		return nil, err
	}

	return swipes, nil
}

func (r *postgresRepository) GetLikesTargeting(ctx context.Context, userID int64) ([]*LikeReceived, error) {
	query := `
		SELECT s.kind, s.created_at,
		       u.id as "liker.id", u.display_name as "liker.display_name",
		       u.age as "liker.age", u.bio as "liker.bio",
		       u.location as "liker.location",
		       u.next_destination as "liker.next_destination",
		       u.is_verified as "liker.is_verified"
		FROM swipes s
		JOIN users u ON s.swiper_id = u.id
		WHERE s.swiped_id = $1 AND s.kind IN ('like', 'superlike')
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likes []*LikeReceived
	for rows.Next() {
		var like LikeReceived
		var liker UserProfile

		err := rows.Scan(
			&like.Kind, &like.Timestamp,
			&liker.ID, &liker.DisplayName, &liker.Age, &liker.Bio,
			&liker.Location, &liker.NextDestination, &liker.IsVerified,
		)
		if err != nil {
			return nil, err
		}

		like.Liker = &liker
		likes = append(likes, &like)
	}

	return likes, rows.Err()
}

// CreateMatch inserts a match for the canonicalized pair. The unique
// constraint on (user1_id, user2_id) makes concurrent mutual-like races
// converge on a single row; a conflicting insert is reported as
// created=false and the caller reads back the existing match.
func (r *postgresRepository) CreateMatch(ctx context.Context, match *Match) (bool, error) {
	if match.User1ID > match.User2ID {
		match.User1ID, match.User2ID = match.User2ID, match.User1ID
	}
	if match.MatchRef == "" {
		match.MatchRef = uuid.NewString()
	}

	query := `
		INSERT INTO matches (match_ref, user1_id, user2_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING id, matched_at
	`

	err := r.db.QueryRowxContext(ctx, query, match.MatchRef, match.User1ID, match.User2ID, match.Status).
		Scan(&match.ID, &match.MatchedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *postgresRepository) GetUserMatches(ctx context.Context, userID int64) ([]*Match, error) {
	var matches []*Match
	query := `
		SELECT id, match_ref, user1_id, user2_id, status, matched_at,
		       last_message_at, unread_count_user1, unread_count_user2
		FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY matched_at DESC
	`

	if err := r.db.SelectContext(ctx, &matches, query, userID); err != nil {
		return nil, err
	}

	return matches, nil
}

func (r *postgresRepository) GetMatchForPair(ctx context.Context, user1ID, user2ID int64) (*Match, error) {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	var match Match
	query := `
		SELECT id, match_ref, user1_id, user2_id, status, matched_at,
		       last_message_at, unread_count_user1, unread_count_user2
		FROM matches
		WHERE user1_id = $1 AND user2_id = $2
	`

	err := r.db.GetContext(ctx, &match, query, user1ID, user2ID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &match, nil
}
