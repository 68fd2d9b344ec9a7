package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	h := NewPrometheusHooks(reg)

	h.OnNavigate(ctx, "advance", 0, 1, true)
	h.OnNavigate(ctx, "advance", 1, 2, true)
	h.OnNavigate(ctx, "jump", 2, 2, false)
	if got := testutil.ToFloat64(h.navigations.WithLabelValues("advance", "true")); got != 2 {
		t.Errorf("advance count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(h.navigations.WithLabelValues("jump", "false")); got != 1 {
		t.Errorf("rejected jump count = %v, want 1", got)
	}

	h.OnGesture(ctx, "touch", "retreat", 55)
	if got := testutil.ToFloat64(h.gestures.WithLabelValues("touch", "retreat")); got != 1 {
		t.Errorf("gesture count = %v, want 1", got)
	}

	h.OnCacheHit(ctx, "page")
	h.OnCacheMiss(ctx, "page")
	h.OnCacheSet(ctx, "page", 512)
	if got := testutil.ToFloat64(h.cacheOps.WithLabelValues("page", "hit")); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.cacheBytes.WithLabelValues("page")); got != 512 {
		t.Errorf("cache bytes = %v, want 512", got)
	}

	h.OnFetch(ctx, "sqlite", 3, time.Millisecond, nil)
	h.OnFetch(ctx, "sqlite", 0, time.Millisecond, errors.New("locked"))
	if got := testutil.ToFloat64(h.catalogSize.WithLabelValues("sqlite")); got != 3 {
		t.Errorf("catalog size = %v, want 3 (failed fetch must not reset it)", got)
	}
	if got := testutil.ToFloat64(h.fetches.WithLabelValues("sqlite", "false")); got != 1 {
		t.Errorf("failed fetches = %v, want 1", got)
	}

	h.OnRequest(ctx, "GET", "/projects", 200, time.Millisecond)
	if got := testutil.ToFloat64(h.httpRequests.WithLabelValues("GET", "/projects", "200")); got != 1 {
		t.Errorf("http requests = %v, want 1", got)
	}

	h.OnRender(ctx, "html", 3, time.Millisecond, nil)
	if got := testutil.ToFloat64(h.renders.WithLabelValues("html", "true")); got != 1 {
		t.Errorf("renders = %v, want 1", got)
	}

	n, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n == 0 {
		t.Error("registry should expose metrics")
	}
}

func TestPrometheusHooksDoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusHooks(reg)
	defer func() {
		if recover() == nil {
			t.Error("registering twice on one registry should panic")
		}
	}()
	NewPrometheusHooks(reg)
}
