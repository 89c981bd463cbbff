// Package cache stores generated dependency mappings between the install step
// and later formula builds.
//
// Three backends are provided: [FileCache] for local CLI use, [RedisCache] for
// setups where several hosts build from the same mappings, and [NullCache] to
// disable caching entirely. Keys are produced by a [Keyer] so that backends
// never need to know what they are storing.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// MappingKey identifies the dependency mapping of the bundle rooted at dir
	// whose manifest content hashes to manifestHash.
	MappingKey(dir, manifestHash string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// MappingKey implements Keyer.
func (DefaultKeyer) MappingKey(dir, manifestHash string) string {
	return hashKey("mapping", dir, manifestHash)
}
