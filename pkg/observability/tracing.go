package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used for spans started by this
// module.
const TracerName = "github.com/dzikrimr/portfolio-web"

// Tracer returns the module tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// SetupTracing installs an OTLP/HTTP tracer provider exporting to endpoint.
// An empty endpoint leaves the global no-op provider in place. The returned
// function flushes pending spans and should be deferred by the caller.
func SetupTracing(ctx context.Context, serviceName, endpoint string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// TracingHooks records hook events as events on the span carried by ctx.
// Events without a recording span are dropped.
type TracingHooks struct{}

// OnNavigate adds a carousel.navigate event.
func (TracingHooks) OnNavigate(ctx context.Context, action string, from, to int, moved bool) {
	trace.SpanFromContext(ctx).AddEvent("carousel.navigate", trace.WithAttributes(
		attribute.String("carousel.action", action),
		attribute.Int("carousel.from", from),
		attribute.Int("carousel.to", to),
		attribute.Bool("carousel.moved", moved),
	))
}

// OnGesture adds a carousel.gesture event.
func (TracingHooks) OnGesture(ctx context.Context, source, intent string, delta float64) {
	trace.SpanFromContext(ctx).AddEvent("carousel.gesture", trace.WithAttributes(
		attribute.String("gesture.source", source),
		attribute.String("gesture.intent", intent),
		attribute.Float64("gesture.delta", delta),
	))
}

// OnRender adds a carousel.render event and marks the span failed on error.
func (TracingHooks) OnRender(ctx context.Context, format string, cards int, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("carousel.render", trace.WithAttributes(
		attribute.String("render.format", format),
		attribute.Int("render.cards", cards),
		attribute.Int64("render.duration_ms", duration.Milliseconds()),
	))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
	}
}

// OnCacheHit adds a cache.hit event.
func (TracingHooks) OnCacheHit(ctx context.Context, keyType string) {
	trace.SpanFromContext(ctx).AddEvent("cache.hit", trace.WithAttributes(attribute.String("cache.key_type", keyType)))
}

// OnCacheMiss adds a cache.miss event.
func (TracingHooks) OnCacheMiss(ctx context.Context, keyType string) {
	trace.SpanFromContext(ctx).AddEvent("cache.miss", trace.WithAttributes(attribute.String("cache.key_type", keyType)))
}

// OnCacheSet adds a cache.set event.
func (TracingHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	trace.SpanFromContext(ctx).AddEvent("cache.set", trace.WithAttributes(
		attribute.String("cache.key_type", keyType),
		attribute.Int("cache.size", size),
	))
}

// OnFetch adds a source.fetch event and marks the span failed on error.
func (TracingHooks) OnFetch(ctx context.Context, kind string, count int, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("source.fetch", trace.WithAttributes(
		attribute.String("source.kind", kind),
		attribute.Int("source.projects", count),
		attribute.Int64("source.duration_ms", duration.Milliseconds()),
	))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "source fetch failed")
	}
}

// OnRequest sets the response status on the request span.
func (TracingHooks) OnRequest(ctx context.Context, method, route string, statusCode int, _ time.Duration) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.response.status_code", statusCode),
	)
	if statusCode >= 500 {
		span.SetStatus(codes.Error, "server error")
	}
}

var (
	_ CarouselHooks = TracingHooks{}
	_ CacheHooks    = TracingHooks{}
	_ SourceHooks   = TracingHooks{}
	_ HTTPHooks     = TracingHooks{}
)
