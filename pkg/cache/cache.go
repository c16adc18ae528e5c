// Package cache stores rendered diagrams and resolved views between runs.
//
// # Backends
//
// Three [Cache] implementations share one contract:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps one JSON entry per key under a directory, for the CLI
//   - [RedisCache] keeps entries in Redis, for `nestview serve` deployments
//
// # Keys
//
// A [Keyer] derives keys from the SHA-256 [Hash] of the input dataset plus
// everything else that changes the output: scope, tunables, recorded
// positions and format. Two runs that would draw the same picture share a
// key; anything else gets a fresh one.
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(dataset), cache.ArtifactKeyOpts{
//	    Format: "svg",
//	    Scope:  "intake",
//	})
//
// [ScopedKeyer] prefixes every key, so several tenants can share a backend.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLView     = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	// A missing or expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear empties c if the backend supports it and reports whether it did.
func Clear(ctx context.Context, c Cache) (bool, error) {
	cl, ok := c.(Clearer)
	if !ok {
		return false, nil
	}
	return true, cl.Clear(ctx)
}
