package matching

import (
	"time"

	"github.com/lib/pq"
)

// Swipe kinds stored in the ledger.
const (
	SwipeLike      = "like"
	SwipeDislike   = "dislike"
	SwipeSuperlike = "superlike"
)

// Match categories derived from the overall compatibility score.
const (
	CategoryPerfect     = "perfect"
	CategoryExcellent   = "excellent"
	CategoryGood        = "good"
	CategoryPotential   = "potential"
	CategoryExploratory = "exploratory"
	CategoryNearby      = "nearby"
)

// BaseEloRating is the starting rating for users without one.
const BaseEloRating = 1500

type SwipeRecord struct {
	ID        int64     `json:"id" db:"id"`
	SwiperID  int64     `json:"swiper_id" db:"swiper_id"`
	SwipedID  int64     `json:"swiped_id" db:"swiped_id"`
	Kind      string    `json:"kind" db:"kind"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Match is an undirected pairing. User1ID < User2ID always holds; the
// repository canonicalizes the pair before insert so the unique constraint
// on (user1_id, user2_id) can enforce one match per pair.
type Match struct {
	ID               int64      `json:"id" db:"id"`
	MatchRef         string     `json:"match_ref" db:"match_ref"`
	User1ID          int64      `json:"user1_id" db:"user1_id"`
	User2ID          int64      `json:"user2_id" db:"user2_id"`
	Status           string     `json:"status" db:"status"`
	MatchedAt        time.Time  `json:"matched_at" db:"matched_at"`
	LastMessageAt    *time.Time `json:"last_message_at,omitempty" db:"last_message_at"`
	UnreadCountUser1 int        `json:"-" db:"unread_count_user1"`
	UnreadCountUser2 int        `json:"-" db:"unread_count_user2"`
}

// MatchView is a Match as seen by one participant: the other user's id and
// the caller's own unread counter projected out.
type MatchView struct {
	MatchRef      string       `json:"match_ref"`
	MatchedUserID int64        `json:"matched_user_id"`
	MatchedUser   *UserProfile `json:"matched_user,omitempty"`
	Status        string       `json:"status"`
	MatchedAt     time.Time    `json:"matched_at"`
	LastMessageAt *time.Time   `json:"last_message_at,omitempty"`
	UnreadCount   int          `json:"unread_count"`
}

// UserProfile is the matching core's read-only view of a user. Profile
// management owns these rows; nothing here mutates them.
type UserProfile struct {
	ID              int64          `json:"id" db:"id"`
	DisplayName     string         `json:"display_name" db:"display_name"`
	Age             int            `json:"age" db:"age"`
	Bio             string         `json:"bio" db:"bio"`
	Location        string         `json:"location" db:"location"`
	LocationLat     *float64       `json:"location_lat,omitempty" db:"location_lat"`
	LocationLng     *float64       `json:"location_lng,omitempty" db:"location_lng"`
	Interests       pq.StringArray `json:"interests" db:"interests"`
	TravelStyles    pq.StringArray `json:"travel_styles" db:"travel_styles"`
	NextDestination string         `json:"next_destination" db:"next_destination"`
	BucketList      pq.StringArray `json:"bucket_list" db:"bucket_list"`
	TravelDates     string         `json:"travel_dates" db:"travel_dates"`
	IsVerified      bool           `json:"is_verified" db:"is_verified"`
	EloRating       int            `json:"elo_rating" db:"elo_rating"`
	LastActive      time.Time      `json:"last_active" db:"last_active"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
}

// Coordinates returns the user's position, or ok=false when either
// component is missing.
func (u *UserProfile) Coordinates() (lat, lng float64, ok bool) {
	if u.LocationLat == nil || u.LocationLng == nil {
		return 0, 0, false
	}
	return *u.LocationLat, *u.LocationLng, true
}

// Rating returns the ELO-style rating, falling back to the baseline.
func (u *UserProfile) Rating() float64 {
	if u.EloRating <= 0 {
		return BaseEloRating
	}
	return float64(u.EloRating)
}

// ScoreBreakdown holds the six component scores scaled to 0-100 for display.
type ScoreBreakdown struct {
	ContentBased      int `json:"content_based"`
	Collaborative     int `json:"collaborative"`
	GraphSimilarity   int `json:"graph_similarity"`
	TextSimilarity    int `json:"text_similarity"`
	TemporalRelevance int `json:"temporal_relevance"`
	DiversityBonus    int `json:"diversity_bonus"`
}

// CompatibilityScore is derived, never persisted.
type CompatibilityScore struct {
	Overall                float64        `json:"overall"`
	Confidence             float64        `json:"confidence"`
	Breakdown              ScoreBreakdown `json:"breakdown"`
	EloRating              int            `json:"elo_rating"`
	Reasons                []string       `json:"reasons"`
	ImprovementSuggestions []string       `json:"improvement_suggestions"`
}

type MatchRecommendation struct {
	User     *UserProfile        `json:"user"`
	Score    *CompatibilityScore `json:"score"`
	Rank     int                 `json:"rank"`
	Category string              `json:"category"`
	Distance *float64            `json:"distance_km,omitempty"`
}

// UserHistory aggregates the swipes a user has authored and the users they
// have matched with. It feeds pool assembly and the collaborative signal.
type UserHistory struct {
	UserID  int64
	Swipes  map[int64]string // swiped user id -> kind
	Matches map[int64]bool
}

// LikeRatio is the share of positive swipes in the history, used as the
// collaborative-filtering proxy. Returns ok=false on an empty history.
func (h *UserHistory) LikeRatio() (float64, bool) {
	if h == nil || len(h.Swipes) == 0 {
		return 0, false
	}
	positive := 0
	for _, kind := range h.Swipes {
		if kind == SwipeLike || kind == SwipeSuperlike {
			positive++
		}
	}
	return float64(positive) / float64(len(h.Swipes)), true
}

// SwipeResult is what RecordSwipe returns to the transport layer.
type SwipeResult struct {
	Match    bool   `json:"match"`
	MatchRef string `json:"match_ref,omitempty"`
}

// LikeReceived is one entry of the likes-received view.
type LikeReceived struct {
	Liker     *UserProfile `json:"liker"`
	Kind      string       `json:"kind"`
	Timestamp time.Time    `json:"timestamp"`
}
