package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// Same point
	assert.InDelta(t, 0, HaversineDistance(48.8566, 2.3522, 48.8566, 2.3522), 1e-9)

	// Paris to London is roughly 344 km
	d := HaversineDistance(48.8566, 2.3522, 51.5074, -0.1278)
	assert.InDelta(t, 344, d, 3)

	// Symmetric
	assert.InDelta(t, d, HaversineDistance(51.5074, -0.1278, 48.8566, 2.3522), 1e-9)
}
