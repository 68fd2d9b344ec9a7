package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "portfolio"

// PrometheusHooks implements every hook interface by updating Prometheus
// collectors registered on a caller-supplied registerer.
type PrometheusHooks struct {
	navigations    *prometheus.CounterVec
	gestures       *prometheus.CounterVec
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	cacheOps       *prometheus.CounterVec
	cacheBytes     *prometheus.CounterVec
	fetches        *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	catalogSize    *prometheus.GaugeVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// NewPrometheusHooks creates the collectors and registers them on reg.
// It panics if a collector with the same name is already registered.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		navigations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "carousel",
				Name:      "navigations_total",
				Help:      "Carousel navigation actions.",
			},
			[]string{"action", "moved"},
		),
		gestures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "carousel",
				Name:      "gestures_total",
				Help:      "Completed drag gestures by input source and intent.",
			},
			[]string{"source", "intent"},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "total",
				Help:      "Carousel renderings by output format.",
			},
			[]string{"format", "success"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "duration_seconds",
				Help:      "Carousel rendering duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		cacheOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "operations_total",
				Help:      "Cache lookups and writes by key type and result.",
			},
			[]string{"key_type", "result"},
		),
		cacheBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "written_bytes_total",
				Help:      "Bytes written to the cache.",
			},
			[]string{"key_type"},
		),
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "fetches_total",
				Help:      "Project catalog loads by source kind.",
			},
			[]string{"kind", "success"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "fetch_duration_seconds",
				Help:      "Project catalog load duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		catalogSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "projects",
				Help:      "Number of projects in the last successful load.",
			},
			[]string{"kind"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
	reg.MustRegister(
		h.navigations, h.gestures, h.renders, h.renderDuration,
		h.cacheOps, h.cacheBytes,
		h.fetches, h.fetchDuration, h.catalogSize,
		h.httpRequests, h.httpDuration,
	)
	return h
}

// OnNavigate counts a navigation action.
func (h *PrometheusHooks) OnNavigate(_ context.Context, action string, _, _ int, moved bool) {
	h.navigations.WithLabelValues(action, strconv.FormatBool(moved)).Inc()
}

// OnGesture counts a completed gesture.
func (h *PrometheusHooks) OnGesture(_ context.Context, source, intent string, _ float64) {
	h.gestures.WithLabelValues(source, intent).Inc()
}

// OnRender counts a rendering and observes its duration.
func (h *PrometheusHooks) OnRender(_ context.Context, format string, _ int, duration time.Duration, err error) {
	h.renders.WithLabelValues(format, strconv.FormatBool(err == nil)).Inc()
	h.renderDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// OnCacheHit counts a hit.
func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss counts a miss.
func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet counts a write and its size.
func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// OnFetch counts a catalog load. The catalog size gauge only moves on
// success.
func (h *PrometheusHooks) OnFetch(_ context.Context, kind string, count int, duration time.Duration, err error) {
	h.fetches.WithLabelValues(kind, strconv.FormatBool(err == nil)).Inc()
	h.fetchDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if err == nil {
		h.catalogSize.WithLabelValues(kind).Set(float64(count))
	}
}

// OnRequest counts a served request.
func (h *PrometheusHooks) OnRequest(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	h.httpRequests.WithLabelValues(method, route, status).Inc()
	h.httpDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

var (
	_ CarouselHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ SourceHooks   = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
