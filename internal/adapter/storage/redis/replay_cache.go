package redis

import (
	"context"
	"fmt"
	"time"

	"mystery-box-service/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// ReplayCache implements ports.ReplayCache using Redis SET NX. It is
// the fast path in front of the durable replay store: an eviction or
// flush loses nothing but a round trip to Postgres.
type ReplayCache struct {
	client *goredis.Client
	prefix string
}

// NewReplayCache creates a new Redis-backed replay cache.
func NewReplayCache(client *goredis.Client) *ReplayCache {
	return &ReplayCache{
		client: client,
		prefix: "replay:",
	}
}

// CheckAndSet atomically checks if (key, phase) exists, setting it if
// not. Returns true if the pair is new within ttl.
func (c *ReplayCache) CheckAndSet(ctx context.Context, key domain.ReplayKey, phase domain.ReplayPhase, ttl time.Duration) (bool, error) {
	redisKey := c.prefix + string(phase) + ":" + string(key)
	result, err := c.client.SetArgs(ctx, redisKey, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists: the pair was already consumed.
			return false, nil
		}
		return false, fmt.Errorf("redis replay check: %w", err)
	}
	return result == "OK", nil
}
