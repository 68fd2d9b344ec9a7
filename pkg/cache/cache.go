// Package cache provides the byte cache used in front of project sources
// and rendered pages.
//
// Three backends implement [Cache]:
//   - [FileCache] for the CLI (entries under the user cache directory)
//   - [RedisCache] for a shared cache between server replicas
//   - [NullCache] when caching is disabled
//
// Keys are built by a [Keyer] so that every component agrees on the layout.
// A catalog is cached under [Keyer.ProjectsKey]; rendered output is cached
// under [Keyer.PageKey] and [Keyer.DetailKey], both scoped by a hash of the
// catalog so that a changed catalog never serves stale markup.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional time-to-live.
type Cache interface {
	// Get returns the value for key. The bool reports a hit; a miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry whose key
// starts with a prefix. An empty prefix clears the whole cache.
type Clearer interface {
	Clear(ctx context.Context, prefix string) (int, error)
}

// PageKeyOpts identifies one rendering of the carousel page.
type PageKeyOpts struct {
	Focus     int     `json:"focus"`
	Format    string  `json:"format"`
	Spacing   float64 `json:"spacing"`
	Threshold float64 `json:"threshold"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ProjectsKey is the key for a source's catalog.
	ProjectsKey(kind, location string) string

	// PageKey is the key for a rendered carousel page.
	PageKey(catalogHash string, opts PageKeyOpts) string

	// DetailKey is the key for a rendered project detail view.
	DetailKey(catalogHash, id string, image int) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key layout.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ProjectsKey returns "projects:<kind>:<location>". Locations are short
// (a path or a database name) so they are kept readable.
func (DefaultKeyer) ProjectsKey(kind, location string) string {
	return "projects:" + kind + ":" + location
}

// PageKey hashes the options together with the catalog hash.
func (DefaultKeyer) PageKey(catalogHash string, opts PageKeyOpts) string {
	return hashKey("page", catalogHash, opts)
}

// DetailKey hashes the project and image position with the catalog hash.
func (DefaultKeyer) DetailKey(catalogHash, id string, image int) string {
	return hashKey("detail", catalogHash, id, image)
}
