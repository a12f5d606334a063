package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(f float64) *float64 { return &f }

func TestCompletionPercentage(t *testing.T) {
	empty := &Profile{}
	assert.Equal(t, 0, empty.CompletionPercentage())

	partial := &Profile{
		Bio:       "Chasing sunsets and street food",
		Interests: []string{"food", "hiking"},
	}
	assert.Equal(t, 40, partial.CompletionPercentage())

	full := &Profile{
		Bio:             "Chasing sunsets and street food",
		Interests:       []string{"food"},
		TravelStyles:    []string{"budget"},
		NextDestination: "Lisbon",
		LocationLat:     fptr(38.7223),
		LocationLng:     fptr(-9.1393),
	}
	assert.Equal(t, 100, full.CompletionPercentage())
}
