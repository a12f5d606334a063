package matching

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *ScoreCache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewScoreCache(client, time.Minute)
}

func TestScoreCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	score := &CompatibilityScore{
		Overall:    0.82,
		Confidence: 0.6,
		Breakdown:  ScoreBreakdown{ContentBased: 90, Collaborative: 70},
		EloRating:  1500,
		Reasons:    []string{"Strong match on travel preferences and interests"},
	}

	_, ok := cache.Get(ctx, 1, 2)
	assert.False(t, ok)

	cache.Set(ctx, 1, 2, score)

	got, ok := cache.Get(ctx, 1, 2)
	require.True(t, ok)
	assert.Equal(t, score, got)
}

func TestScoreCacheKeyIsOrderIndependent(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, 7, 3, &CompatibilityScore{Overall: 0.5})

	got, ok := cache.Get(ctx, 3, 7)
	require.True(t, ok)
	assert.InDelta(t, 0.5, got.Overall, 1e-9)
}

func TestScoreCacheInvalidate(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, 1, 2, &CompatibilityScore{Overall: 0.9})
	cache.Invalidate(ctx, 2, 1)

	_, ok := cache.Get(ctx, 1, 2)
	assert.False(t, ok)
}

func TestScoreCacheNilSafe(t *testing.T) {
	ctx := context.Background()

	var cache *ScoreCache
	_, ok := cache.Get(ctx, 1, 2)
	assert.False(t, ok)
	cache.Set(ctx, 1, 2, &CompatibilityScore{})
	cache.Invalidate(ctx, 1, 2)

	// Nil client behaves the same as a nil cache
	disabled := NewScoreCache(nil, time.Minute)
	_, ok = disabled.Get(ctx, 1, 2)
	assert.False(t, ok)
}
