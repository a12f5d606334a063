// internal/matching/cache.go
// Optional Redis cache for pair compatibility scores. A nil client disables
// caching; every method degrades to a miss.

package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScoreCache(client *redis.Client, ttl time.Duration) *ScoreCache {
	return &ScoreCache{client: client, ttl: ttl}
}

// key is order-independent so both directions of a pair share one entry.
func (c *ScoreCache) key(userID, targetID int64) string {
	if userID > targetID {
		userID, targetID = targetID, userID
	}
	return fmt.Sprintf("matching:compat:%d:%d", userID, targetID)
}

func (c *ScoreCache) Get(ctx context.Context, userID, targetID int64) (*CompatibilityScore, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, c.key(userID, targetID)).Bytes()
	if err != nil {
		return nil, false
	}

	var score CompatibilityScore
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, false
	}

	return &score, true
}

func (c *ScoreCache) Set(ctx context.Context, userID, targetID int64, score *CompatibilityScore) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(score)
	if err != nil {
		return
	}

	// Cache writes are best effort; a failed set is just a future miss.
	c.client.Set(ctx, c.key(userID, targetID), data, c.ttl)
}

// Invalidate drops the cached score for a pair, called after a swipe changes
// the history that feeds the collaborative signal.
func (c *ScoreCache) Invalidate(ctx context.Context, userID, targetID int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, c.key(userID, targetID))
}
