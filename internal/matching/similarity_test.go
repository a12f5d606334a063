package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaccardSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		set1     []string
		set2     []string
		expected float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"hiking"}, nil, 0},
		{"identical", []string{"hiking", "food"}, []string{"hiking", "food"}, 1},
		{"disjoint", []string{"hiking"}, []string{"surfing"}, 0},
		{"partial overlap", []string{"hiking", "food"}, []string{"food", "surfing"}, 1.0 / 3.0},
		{"duplicates do not inflate", []string{"food", "food"}, []string{"food"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, JaccardSimilarity(tt.set1, tt.set2), 1e-9)
		})
	}
}

func TestJaccardSimilaritySymmetric(t *testing.T) {
	a := []string{"hiking", "food", "photography"}
	b := []string{"food", "museums"}

	assert.Equal(t, JaccardSimilarity(a, b), JaccardSimilarity(b, a))
}

func TestAgeSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, AgeSimilarity(30, 30), 1e-9)

	// 5-year gap is exactly one sigma: exp(-0.5)
	assert.InDelta(t, 0.6065, AgeSimilarity(25, 30), 0.001)

	// Larger gaps score strictly lower
	assert.Greater(t, AgeSimilarity(25, 28), AgeSimilarity(25, 35))
}

func TestDistanceDecay(t *testing.T) {
	// Sigmoid midpoint at 50 km
	assert.InDelta(t, 0.5, DistanceDecay(50), 1e-9)

	// Close by scores near 1, far away near 0
	assert.Greater(t, DistanceDecay(0), 0.9)
	assert.Less(t, DistanceDecay(200), 0.01)

	// Strictly decreasing
	assert.Greater(t, DistanceDecay(10), DistanceDecay(30))
	assert.Greater(t, DistanceDecay(30), DistanceDecay(80))
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("I love Hiking, good food & ART!")
	assert.Equal(t, []string{"love", "hiking", "good", "food", "art"}, tokens)

	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("a an it"))
}

func TestExtractTraits(t *testing.T) {
	traits := ExtractTraits("Always up for an adventure, love art and design, very outgoing")
	assert.ElementsMatch(t, []string{"adventurous", "creative", "social"}, traits)

	assert.Empty(t, ExtractTraits("nothing to see here"))
}
