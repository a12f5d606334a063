// internal/matching/dto.go
package matching

// DTOs for API requests/responses

type RecordSwipeDTO struct {
	TargetUserID int64  `json:"target_user_id" validate:"required"`
	Kind         string `json:"kind" validate:"required,oneof=like dislike superlike"`
}

// FilterConfig holds the hard filters applied before scoring. Zero-valued
// fields impose no constraint.
type FilterConfig struct {
	MinAge       int      `json:"min_age"`
	MaxAge       int      `json:"max_age"`
	MaxDistance  float64  `json:"max_distance"`
	VerifiedOnly bool     `json:"verified_only"`
	TravelStyles []string `json:"travel_styles"`
	Destinations []string `json:"destinations"`
}

type DiscoverParams struct {
	Filters FilterConfig
	Limit   int
}

type CleanupResult struct {
	Removed int `json:"removed"`
}
