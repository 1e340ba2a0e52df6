package instrument

import (
	"context"
	"reflect"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/extend/plugin"
)

// scopeName identifies this instrumentation scope to meters and tracers.
const scopeName = "github.com/jonwraymond/extend/instrument"

// Option configures the instrumentation.
type Option func(*config)

type config struct {
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) { c.meterProvider = mp }
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.tracerProvider = tp }
}

// Evals wraps p so every evaluation records plugin.eval.total,
// plugin.eval.errors, and plugin.eval.duration_ms with a plugin.key
// attribute, inside a trace span. The wrapper caches under p's own key.
//
// Plugins carry no context, so spans are roots under the configured tracer.
func Evals[H, V any](p plugin.Plugin[H, V], opts ...Option) (plugin.Plugin[H, V], error) {
	cfg := config{
		meterProvider:  otel.GetMeterProvider(),
		tracerProvider: otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	meter := cfg.meterProvider.Meter(scopeName)

	total, err := meter.Int64Counter(
		"plugin.eval.total",
		metric.WithDescription("Total number of plugin evaluations"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, err
	}

	errCount, err := meter.Int64Counter(
		"plugin.eval.errors",
		metric.WithDescription("Total number of failed plugin evaluations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"plugin.eval.duration_ms",
		metric.WithDescription("Plugin evaluation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	key := plugin.KeyOf(p)
	return &instrumented[H, V]{
		inner:    p,
		key:      key,
		attrs:    metric.WithAttributes(attribute.String("plugin.key", key.String())),
		spanAttr: attribute.String("plugin.key", key.String()),
		total:    total,
		errCount: errCount,
		duration: duration,
		tracer:   cfg.tracerProvider.Tracer(scopeName),
	}, nil
}

type instrumented[H, V any] struct {
	inner    plugin.Plugin[H, V]
	key      reflect.Type
	attrs    metric.MeasurementOption
	spanAttr attribute.KeyValue
	total    metric.Int64Counter
	errCount metric.Int64Counter
	duration metric.Float64Histogram
	tracer   trace.Tracer
}

// Eval evaluates the wrapped plugin and records the outcome.
func (p *instrumented[H, V]) Eval(host H) (V, error) {
	ctx, span := p.tracer.Start(context.Background(), "plugin.eval",
		trace.WithAttributes(p.spanAttr))
	defer span.End()

	start := time.Now()
	v, err := p.inner.Eval(host)
	elapsed := time.Since(start)

	p.total.Add(ctx, 1, p.attrs)
	if err != nil {
		p.errCount.Add(ctx, 1, p.attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	p.duration.Record(ctx, float64(elapsed.Milliseconds()), p.attrs)

	return v, err
}

// PluginKey preserves the wrapped plugin's cache key.
func (p *instrumented[H, V]) PluginKey() reflect.Type {
	return p.key
}

// Compile-time contract assertions.
var (
	_ plugin.Plugin[any, int] = (*instrumented[any, int])(nil)
	_ plugin.Keyed            = (*instrumented[any, int])(nil)
)
