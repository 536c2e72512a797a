// Package cache stores rendered Graphviz output so that re-rendering an
// unchanged DIA graph skips the Graphviz run.
//
// Entries are keyed by [RenderKey], a hash of the output format and the DOT
// text, so any change to the log or to the style table produces a new key.
// [FileCache] persists entries on disk for CLI use; [NullCache] disables
// caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
