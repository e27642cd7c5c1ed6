// Package cache stores fetched ontology documents and rendered views.
//
// All backends implement [Cache], a byte-oriented key/value store with
// per-entry TTL:
//
//   - [FileCache]: one JSON file per entry, for the CLI (~/.cache/ontoview)
//   - [RedisCache]: shared cache for several API server instances
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are produced by a [Keyer] so that every caller agrees on the key
// layout. [ScopedKeyer] adds a prefix for namespacing.
//
//	c, _ := cache.NewFileCache(dir)
//	keys := cache.NewDefaultKeyer()
//	data, hit, err := c.Get(ctx, keys.DocumentKey(url))
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	// TTLDocument is how long a fetched remote document is reused.
	TTLDocument = 24 * time.Hour

	// TTLView is how long a rendered view (JSON, DOT, SVG) is reused.
	TTLView = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (hit == false), not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
