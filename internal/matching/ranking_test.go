package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id int64, overall float64, interests ...string) *MatchRecommendation {
	return &MatchRecommendation{
		User:  &UserProfile{ID: id, Interests: interests},
		Score: &CompatibilityScore{Overall: overall},
	}
}

func TestRankWithDiversityEmpty(t *testing.T) {
	assert.Empty(t, RankWithDiversity(nil))
	assert.Empty(t, RankWithDiversity([]*MatchRecommendation{}))
}

func TestRankWithDiversityFirstPickIsGlobalMax(t *testing.T) {
	matches := []*MatchRecommendation{
		rec(1, 0.6, "hiking"),
		rec(2, 0.9, "food"),
		rec(3, 0.7, "surfing"),
	}

	ranked := RankWithDiversity(matches)
	require.Len(t, ranked, 3)
	assert.Equal(t, int64(2), ranked[0].User.ID)
}

func TestRankWithDiversityPromotesNovelty(t *testing.T) {
	// Three candidates with identical relevance. The first two are clones,
	// so the dissimilar third one should be pulled up to second place.
	matches := []*MatchRecommendation{
		rec(1, 0.8, "hiking", "photography"),
		rec(2, 0.8, "hiking", "photography"),
		rec(3, 0.8, "cooking"),
	}

	ranked := RankWithDiversity(matches)
	require.Len(t, ranked, 3)
	assert.Equal(t, int64(1), ranked[0].User.ID)
	assert.Equal(t, int64(3), ranked[1].User.ID)
	assert.Equal(t, int64(2), ranked[2].User.ID)
}

func TestRankWithDiversityAssignsSequentialRanks(t *testing.T) {
	matches := []*MatchRecommendation{
		rec(1, 0.5, "a"), rec(2, 0.9, "b"), rec(3, 0.7, "c"), rec(4, 0.3, "d"),
	}

	ranked := RankWithDiversity(matches)
	require.Len(t, ranked, 4)
	for i, m := range ranked {
		assert.Equal(t, i+1, m.Rank)
	}
}

func TestRankWithDiversityTiesKeepPoolOrder(t *testing.T) {
	// Clones all the way down: MMR scores tie at every step, so the
	// original order must be preserved.
	matches := []*MatchRecommendation{
		rec(1, 0.8, "hiking"),
		rec(2, 0.8, "hiking"),
		rec(3, 0.8, "hiking"),
	}

	ranked := RankWithDiversity(matches)
	ids := []int64{ranked[0].User.ID, ranked[1].User.ID, ranked[2].User.ID}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestRankWithDiversityDistinctScores(t *testing.T) {
	// Top score leads; the tied pair keeps pool order because their
	// diversity against the leader is identical (disjoint interests).
	matches := []*MatchRecommendation{
		rec(1, 0.9, "a"),
		rec(2, 0.85, "b"),
		rec(3, 0.85, "c"),
		rec(4, 0.4, "d"),
		rec(5, 0.2, "e"),
	}

	ranked := RankWithDiversity(matches)
	require.Len(t, ranked, 5)
	assert.Equal(t, int64(1), ranked[0].User.ID)
	assert.Equal(t, int64(2), ranked[1].User.ID)
	assert.Equal(t, int64(3), ranked[2].User.ID)
}
