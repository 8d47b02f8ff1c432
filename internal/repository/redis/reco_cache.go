package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"makeItSell/domain"

	"github.com/redis/go-redis/v9"
)

// RecoCache memoizes computed rankings keyed by (user, slot, strategy,
// limit). The engine itself is stateless; this sits on the caller side and
// is invalidated whenever the user's behavior snapshot changes.
type RecoCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecoCache(client *redis.Client, ttl time.Duration) *RecoCache {
	return &RecoCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(userID, slot, strategy string, limit int) string {
	return fmt.Sprintf("reco:%s:%s:%s:%d", userID, slot, strategy, limit)
}

func (c *RecoCache) Get(ctx context.Context, userID, slot, strategy string, limit int) ([]domain.ScoredProduct, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(userID, slot, strategy, limit)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached recommendations: %w", err)
	}

	var recs []domain.ScoredProduct
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return recs, true, nil
}

func (c *RecoCache) Set(ctx context.Context, userID, slot, strategy string, limit int, recs []domain.ScoredProduct) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(userID, slot, strategy, limit), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache recommendations: %w", err)
	}

	return nil
}

// InvalidateUser drops every memoized ranking for one user.
func (c *RecoCache) InvalidateUser(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("reco:%s:*", userID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate cache key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	return nil
}
