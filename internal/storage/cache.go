package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ExistenceCache is an optional, disabled-by-default cache in front of
// Store.ObjectExists, absorbing repeated verify polling from a relay
// waiting on a slow upload. Trimmed to the one operation this domain
// needs rather than a general-purpose get/set/pattern-delete surface.
type ExistenceCache struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
}

// CacheConfig configures the optional existence cache.
type CacheConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	TTL      time.Duration
}

// NewExistenceCache constructs the cache. When cfg.Enabled is false, the
// returned cache is a safe no-op: Get always misses and Set is a no-op, so
// callers never need an enabled check of their own.
func NewExistenceCache(cfg CacheConfig) *ExistenceCache {
	if !cfg.Enabled {
		return &ExistenceCache{enabled: false}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
	})
	return &ExistenceCache{client: client, enabled: true, ttl: cfg.TTL}
}

// Get reports a cached existence result for hash, if any.
func (c *ExistenceCache) Get(ctx context.Context, hash string) (exists bool, found bool) {
	if !c.enabled {
		return false, false
	}
	val, err := c.client.Get(ctx, cacheKey(hash)).Result()
	if err != nil {
		return false, false
	}
	return val == "1", true
}

// Set caches an existence result for hash with the configured TTL.
func (c *ExistenceCache) Set(ctx context.Context, hash string, exists bool) {
	if !c.enabled {
		return
	}
	val := "0"
	if exists {
		val = "1"
	}
	_ = c.client.Set(ctx, cacheKey(hash), val, c.ttl).Err()
}

// Close releases the underlying Redis connection, if any.
func (c *ExistenceCache) Close() error {
	if !c.enabled {
		return nil
	}
	return c.client.Close()
}

func cacheKey(hash string) string {
	return "eventrelay:exists:" + hash
}
