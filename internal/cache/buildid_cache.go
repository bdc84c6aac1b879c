package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

const buildIDKey = "catalog:buildid"

// BuildIDCache keeps the upstream build token in redis for a short TTL so
// catalog requests do not pay a root-page fetch every time. Expiry is the
// only invalidation; a stale token simply ages out.
type BuildIDCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewBuildIDCache(client *redisv9.Client, ttl time.Duration) *BuildIDCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &BuildIDCache{client: client, ttl: ttl}
}

func (c *BuildIDCache) Get(ctx context.Context) (string, bool, error) {
	val, err := c.client.Get(ctx, buildIDKey).Result()
	if err == redisv9.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get build id failed: %w", err)
	}
	return val, true, nil
}

func (c *BuildIDCache) Set(ctx context.Context, buildID string) error {
	if err := c.client.Set(ctx, buildIDKey, buildID, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set build id failed: %w", err)
	}
	return nil
}
