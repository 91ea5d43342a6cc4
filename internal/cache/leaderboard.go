package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"app/internal/model"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:top"

// ErrMiss is returned when the cached leaderboard is absent or expired.
var ErrMiss = errors.New("cache miss")

// LeaderboardCache keeps the ranked projection in Redis for a short TTL so
// the public endpoint does not hammer Postgres. Stale reads are fine; the
// leaderboard is a derived view, not invariant-bearing state.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache creates a cache around an existing Redis client.
func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

// Get returns the cached entries, or ErrMiss when absent.
func (c *LeaderboardCache) Get(ctx context.Context) ([]model.LeaderboardEntry, error) {
	raw, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Set stores the entries under the cache TTL.
func (c *LeaderboardCache) Set(ctx context.Context, entries []model.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, leaderboardKey, raw, c.ttl).Err()
}
