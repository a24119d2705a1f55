package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by EstimateCache.Get when no entry exists.
var ErrCacheMiss = errors.New("estimate cache miss")

// EstimateCache stores rendered estimates keyed by a request fingerprint.
// Values are opaque to the cache.
type EstimateCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
