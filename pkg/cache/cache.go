// Package cache provides caching for computed layouts and rendered scenes.
//
// Running a force simulation to convergence is the most expensive step in the
// pipeline, so the host layer caches settled positions keyed by the snapshot
// content hash and the layout configuration. Backends:
//   - FileCache: file-based cache under a directory (CLI usage)
//   - RedisCache: shared cache backed by Redis (server usage)
//   - NullCache: no-op cache for testing or disabled caching
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// LayoutKey builds the cache key for settled layout positions.
// The key covers the snapshot content and every input that changes the
// settled result, so a stale entry can never be served for different data.
func LayoutKey(snapshotHash, view string, config any) string {
	return hashKey("layout:"+view, snapshotHash, config)
}

// SceneKey builds the cache key for a fully built scene.
func SceneKey(snapshotHash, view string, config any) string {
	return hashKey("scene:"+view, snapshotHash, config)
}
