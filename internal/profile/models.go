// internal/profile/models.go

package profile

import (
	"time"

	"github.com/lib/pq"
)

// Profile represents a traveler's profile as stored in the users table.
type Profile struct {
	ID              int64          `json:"id" db:"id"`
	Username        string         `json:"username" db:"username"`
	DisplayName     string         `json:"display_name" db:"display_name"`
	Age             int            `json:"age" db:"age"`
	Bio             string         `json:"bio" db:"bio"`
	Location        string         `json:"location" db:"location"`
	LocationLat     *float64       `json:"location_lat" db:"location_lat"`
	LocationLng     *float64       `json:"location_lng" db:"location_lng"`
	Interests       pq.StringArray `json:"interests" db:"interests"`
	TravelStyles    pq.StringArray `json:"travel_styles" db:"travel_styles"`
	NextDestination string         `json:"next_destination" db:"next_destination"`
	BucketList      pq.StringArray `json:"bucket_list" db:"bucket_list"`
	TravelDates     string         `json:"travel_dates" db:"travel_dates"`
	Languages       pq.StringArray `json:"languages" db:"languages"`
	EloRating       *int           `json:"elo_rating,omitempty" db:"elo_rating"`
	IsVerified      bool           `json:"is_verified" db:"is_verified"`
	LastActive      time.Time      `json:"last_active" db:"last_active"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// CompletionPercentage reports how much of the profile is filled in.
// The matching engine weights its confidence by the same fields.
func (p *Profile) CompletionPercentage() int {
	total := 0
	if p.Bio != "" {
		total += 20
	}
	if len(p.Interests) > 0 {
		total += 20
	}
	if len(p.TravelStyles) > 0 {
		total += 20
	}
	if p.NextDestination != "" {
		total += 20
	}
	if p.LocationLat != nil && p.LocationLng != nil {
		total += 20
	}
	return total
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	DisplayName     *string  `json:"display_name" validate:"omitempty,min=2,max=100"`
	Age             *int     `json:"age" validate:"omitempty,min=18,max=120"`
	Bio             *string  `json:"bio" validate:"omitempty,max=500"`
	Location        *string  `json:"location" validate:"omitempty,max=100"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
	Interests       []string `json:"interests" validate:"omitempty,max=20,dive,min=1,max=50"`
	TravelStyles    []string `json:"travel_styles" validate:"omitempty,max=10,dive,min=1,max=50"`
	NextDestination *string  `json:"next_destination" validate:"omitempty,max=100"`
	BucketList      []string `json:"bucket_list" validate:"omitempty,max=50,dive,min=1,max=100"`
	TravelDates     *string  `json:"travel_dates" validate:"omitempty,max=100"`
	Languages       []string `json:"languages" validate:"omitempty,max=10,dive,min=2,max=50"`
}

// UpdateLocationRequest updates just the traveler's coordinates
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
	Location  string  `json:"location" validate:"omitempty,max=100"`
}
