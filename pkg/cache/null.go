package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. It backs cache.disabled = true, so sources and
// the server keep a single code path whether caching is on or off.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() *NullCache {
	return &NullCache{}
}

// Get always misses.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (*NullCache) Delete(context.Context, string) error { return nil }

// Clear has nothing to remove.
func (*NullCache) Clear(context.Context, string) (int, error) { return 0, nil }

// Close does nothing.
func (*NullCache) Close() error { return nil }

var (
	_ Cache   = (*NullCache)(nil)
	_ Clearer = (*NullCache)(nil)
)
