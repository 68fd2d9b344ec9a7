package observability

import (
	"context"
	"time"
)

// Hooks is the union of all hook interfaces.
type Hooks interface {
	CarouselHooks
	CacheHooks
	SourceHooks
	HTTPHooks
}

// Multi forwards every event to each of its hooks in order.
type Multi []Hooks

// OnNavigate implements CarouselHooks.
func (m Multi) OnNavigate(ctx context.Context, action string, from, to int, moved bool) {
	for _, h := range m {
		h.OnNavigate(ctx, action, from, to, moved)
	}
}

// OnGesture implements CarouselHooks.
func (m Multi) OnGesture(ctx context.Context, source, intent string, delta float64) {
	for _, h := range m {
		h.OnGesture(ctx, source, intent, delta)
	}
}

// OnRender implements CarouselHooks.
func (m Multi) OnRender(ctx context.Context, format string, cards int, duration time.Duration, err error) {
	for _, h := range m {
		h.OnRender(ctx, format, cards, duration, err)
	}
}

// OnCacheHit implements CacheHooks.
func (m Multi) OnCacheHit(ctx context.Context, keyType string) {
	for _, h := range m {
		h.OnCacheHit(ctx, keyType)
	}
}

// OnCacheMiss implements CacheHooks.
func (m Multi) OnCacheMiss(ctx context.Context, keyType string) {
	for _, h := range m {
		h.OnCacheMiss(ctx, keyType)
	}
}

// OnCacheSet implements CacheHooks.
func (m Multi) OnCacheSet(ctx context.Context, keyType string, size int) {
	for _, h := range m {
		h.OnCacheSet(ctx, keyType, size)
	}
}

// OnFetch implements SourceHooks.
func (m Multi) OnFetch(ctx context.Context, kind string, count int, duration time.Duration, err error) {
	for _, h := range m {
		h.OnFetch(ctx, kind, count, duration, err)
	}
}

// OnRequest implements HTTPHooks.
func (m Multi) OnRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	for _, h := range m {
		h.OnRequest(ctx, method, route, statusCode, duration)
	}
}

// SetAll registers h for every hook category.
func SetAll(h Hooks) {
	SetCarouselHooks(h)
	SetCacheHooks(h)
	SetSourceHooks(h)
	SetHTTPHooks(h)
}
