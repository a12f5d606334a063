package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(f float64) *float64 { return &f }

func TestApplyFilters(t *testing.T) {
	user := &UserProfile{
		ID:          1,
		Age:         28,
		LocationLat: fptr(48.8566),
		LocationLng: fptr(2.3522),
	}

	paris := &UserProfile{
		ID: 2, Age: 27,
		LocationLat: fptr(48.86), LocationLng: fptr(2.35),
		TravelStyles: []string{"backpacking", "budget"},
		Location:     "Paris, France",
		IsVerified:   true,
	}
	tokyo := &UserProfile{
		ID: 3, Age: 35,
		LocationLat: fptr(35.6762), LocationLng: fptr(139.6503),
		TravelStyles:    []string{"luxury"},
		NextDestination: "Tokyo",
	}
	noCoords := &UserProfile{
		ID: 4, Age: 30,
		TravelStyles: []string{"backpacking"},
	}

	candidates := []*UserProfile{paris, tokyo, noCoords}

	tests := []struct {
		name     string
		cfg      FilterConfig
		expected []int64
	}{
		{"no filters keeps everyone", FilterConfig{}, []int64{2, 3, 4}},
		{"age range is inclusive", FilterConfig{MinAge: 27, MaxAge: 30}, []int64{2, 4}},
		{"min age excludes younger", FilterConfig{MinAge: 30}, []int64{3, 4}},
		{"distance keeps missing coordinates", FilterConfig{MaxDistance: 100}, []int64{2, 4}},
		{"verified only", FilterConfig{VerifiedOnly: true}, []int64{2}},
		{"travel styles use OR semantics", FilterConfig{TravelStyles: []string{"budget", "luxury"}}, []int64{2, 3}},
		{"destination matches location or next destination", FilterConfig{Destinations: []string{"tokyo"}}, []int64{3}},
		{"destination substring", FilterConfig{Destinations: []string{"paris"}}, []int64{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(user, candidates, tt.cfg)
			ids := make([]int64, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestApplyFiltersReturnsSubset(t *testing.T) {
	user := &UserProfile{ID: 1, Age: 25}
	candidates := []*UserProfile{
		{ID: 2, Age: 22}, {ID: 3, Age: 40}, {ID: 4, Age: 31, IsVerified: true},
	}

	got := ApplyFilters(user, candidates, FilterConfig{MinAge: 21, MaxAge: 35})
	assert.LessOrEqual(t, len(got), len(candidates))
	for _, c := range got {
		assert.Contains(t, candidates, c)
	}
}
