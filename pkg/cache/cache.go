// Package cache stores computed layouts and rendered artifacts.
//
// Layout is cheap compared to a round trip through rsvg-convert or a raster
// pass, but the HTTP server renders the same charts repeatedly, so both the
// layout JSON and every rendered format are cached by content hash.
//
// Three backends implement [Cache]:
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: one file per entry under the user cache directory (CLI)
//   - [RedisCache]: shared cache for server deployments
//
// Keys are produced by a [Keyer] so callers never build key strings by hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Default entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
