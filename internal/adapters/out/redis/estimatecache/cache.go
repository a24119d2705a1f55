// Package estimatecache stores rendered delivery estimates in Redis.
package estimatecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fleetdelivery/internal/core/ports"
)

// DefaultTTL applies when Set is called with a non-positive ttl.
const DefaultTTL = 10 * time.Minute

const keyPrefix = "fleetdelivery:"

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// RedisEstimateCache implements ports.EstimateCache on a Redis client.
type RedisEstimateCache struct {
	client redis.UniversalClient
}

var _ ports.EstimateCache = (*RedisEstimateCache)(nil)

// New connects to Redis and pings it once.
func New(ctx context.Context, cfg Config) (*RedisEstimateCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client redis.UniversalClient) *RedisEstimateCache {
	return &RedisEstimateCache{client: client}
}

// Get returns ports.ErrCacheMiss when the key is absent or expired.
func (c *RedisEstimateCache) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *RedisEstimateCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return c.client.Set(ctx, keyPrefix+key, value, ttl).Err()
}

// Close releases the connection pool.
func (c *RedisEstimateCache) Close() error {
	return c.client.Close()
}
