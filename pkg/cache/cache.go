// Package cache stores rendered diagram artifacts between runs.
//
// Rendering through Graphviz is the slow part of generation. Since DOT output
// is deterministic, the rendered bytes of a diagram are a pure function of its
// DOT source, the images it references and the output format, so they can be
// cached under [RenderKey].
//
// Two implementations are provided:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [NullCache]: stores nothing (--no-cache)
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the cached data and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
