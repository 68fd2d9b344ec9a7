package source

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dzikrimr/portfolio-web/pkg/cache"
	"github.com/dzikrimr/portfolio-web/pkg/observability"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
)

// Cached serves a catalog from a cache, loading it from the inner source on
// a miss. Cache failures are logged and fall through to the inner source.
type Cached struct {
	inner  Source
	cache  cache.Cache
	key    string
	ttl    time.Duration
	logger *log.Logger
}

// CachedOption configures a Cached source.
type CachedOption func(*Cached)

// WithLogger sets the logger used for cache failures.
func WithLogger(l *log.Logger) CachedOption {
	return func(c *Cached) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCached wraps inner with c, storing the catalog under key for ttl.
func NewCached(inner Source, c cache.Cache, key string, ttl time.Duration, opts ...CachedOption) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	s := &Cached{
		inner:  inner,
		cache:  c,
		key:    key,
		ttl:    ttl,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the cache key of the catalog.
func (s *Cached) Key() string { return s.key }

// Projects returns the cached catalog or loads it. Transient inner failures
// are retried with backoff.
func (s *Cached) Projects(ctx context.Context) ([]portfolio.Project, error) {
	data, hit, err := s.cache.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("catalog cache read failed", "key", s.key, "err", err)
	} else if hit {
		var projects []portfolio.Project
		if err := json.Unmarshal(data, &projects); err == nil {
			observability.Cache().OnCacheHit(ctx, "projects")
			return projects, nil
		}
		s.logger.Warn("discarding corrupt catalog cache entry", "key", s.key)
		_ = s.cache.Delete(ctx, s.key)
	}
	observability.Cache().OnCacheMiss(ctx, "projects")

	var projects []portfolio.Project
	err = cache.RetryWithBackoff(ctx, func() error {
		var ferr error
		projects, ferr = s.inner.Projects(ctx)
		return ferr
	})
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(projects); err == nil {
		if err := s.cache.Set(ctx, s.key, data, s.ttl); err != nil {
			s.logger.Warn("catalog cache write failed", "key", s.key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "projects", len(data))
		}
	}
	return projects, nil
}

// Invalidate drops the cached catalog.
func (s *Cached) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, s.key)
}

// ReplaceProjects forwards to the inner source when it is a Writer and
// invalidates the cached catalog.
func (s *Cached) ReplaceProjects(ctx context.Context, projects []portfolio.Project) error {
	w, ok := s.inner.(Writer)
	if !ok {
		return errUnwritable(s.inner)
	}
	if err := w.ReplaceProjects(ctx, projects); err != nil {
		return err
	}
	return s.Invalidate(ctx)
}

// Close closes the inner source and the cache.
func (s *Cached) Close() error {
	err := s.inner.Close()
	if cerr := s.cache.Close(); err == nil {
		err = cerr
	}
	return err
}

var (
	_ Source = (*Cached)(nil)
	_ Writer = (*Cached)(nil)
)
