package kb

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient serves knowledge-base lookups from a Redis set per entity
// kind, populated out of band. It lets repeated extraction runs share one
// lookup cache across processes.
type RedisClient struct {
	rdb       *redis.Client
	keyPrefix string
}

// NewRedisClient creates a RedisClient using the given key prefix
// (e.g. "gala:kb").
func NewRedisClient(rdb *redis.Client, keyPrefix string) *RedisClient {
	return &RedisClient{
		rdb:       rdb,
		keyPrefix: keyPrefix,
	}
}

// Lookup checks membership of name in the kind's Redis set.
func (c *RedisClient) Lookup(ctx context.Context, name, kind string) (bool, error) {
	key := fmt.Sprintf("%s:%s", c.keyPrefix, kind)
	ok, err := c.rdb.SIsMember(ctx, key, name).Result()
	if err != nil {
		return false, fmt.Errorf("kb redis lookup: %w", err)
	}
	return ok, nil
}

// HealthCheck pings Redis.
func (c *RedisClient) HealthCheck(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.rdb.Ping(pingCtx).Err()
}
