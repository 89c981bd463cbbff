package cache

import (
	"context"
	"time"
)

// NullCache backs --no-cache and cache.backend = "none". Nothing written to
// it survives, so builds against it report every bundle as not installed.
type NullCache struct{}

// NewNullCache returns a cache that forgets every mapping.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get reports a miss for every key.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the mapping.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete has nothing to remove.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close holds no resources.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
