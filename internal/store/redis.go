package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/i474232898/aqi-explorer/internal/airquality"
)

// RedisCache stores derived series as JSON in Redis with a TTL, so several
// server instances can share aggregation work.
type RedisCache struct {
	redis  *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a cache on top of an existing client.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		redis:  client,
		prefix: "aqi:derived:",
		ttl:    ttl,
	}
}

// Get looks up key. Redis errors are logged and reported as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (airquality.Derived, bool) {
	data, err := c.redis.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return airquality.Derived{}, false
	}
	if err != nil {
		log.Printf("ERROR: redis cache get %s: %v", key, err)
		return airquality.Derived{}, false
	}

	var d airquality.Derived
	if err := json.Unmarshal(data, &d); err != nil {
		log.Printf("ERROR: redis cache decode %s: %v", key, err)
		return airquality.Derived{}, false
	}
	return d, true
}

// Put stores d under key.
func (c *RedisCache) Put(ctx context.Context, key string, d airquality.Derived) {
	data, err := json.Marshal(d)
	if err != nil {
		log.Printf("ERROR: redis cache encode %s: %v", key, err)
		return
	}
	if err := c.redis.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		log.Printf("ERROR: redis cache set %s: %v", key, err)
	}
}
