// Package cache provides an optional Redis-backed read-through cache for
// read-only GitHub responses.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds cache configuration.
type Config struct {
	Enabled    bool   `yaml:"enabled"`
	URL        string `yaml:"url"`
	Password   string `yaml:"password"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// Cache wraps Redis for short-lived response caching. Misses and Redis
// failures both fall through to the live API, so the cache is never a
// correctness dependency.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

const defaultTTL = 5 * time.Minute

// New connects to Redis and verifies the connection.
func New(cfg Config) (*Cache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}, nil
}

// GetJSON loads a cached value into out, reporting whether the key was
// present and decodable.
func (c *Cache) GetJSON(ctx context.Context, key string, out any) bool {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("Dropping undecodable cache entry", "key", key, "error", err)
		c.rdb.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores a value under key with the configured TTL. Failures are
// logged and ignored.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("Failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("Failed to write cache entry", "key", key, "error", err)
	}
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
