package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ardnew/exprx/log"
)

// Recorder records evaluation and resolution metrics.
// Use [NewRecorder] for OTel metrics or [Noop] when disabled.
type Recorder interface {
	// RecordEval records one expression evaluation.
	RecordEval(ctx context.Context, duration time.Duration, err error)

	// RecordResolve records one template resolution and the number of
	// distinct markers it evaluated.
	RecordResolve(ctx context.Context, markers int, duration time.Duration, err error)

	// RecordCache records a compiled-program cache lookup.
	RecordCache(ctx context.Context, hit bool)
}

type otelRecorder struct {
	evals          metric.Int64Counter
	evalErrors     metric.Int64Counter
	evalLatency    metric.Float64Histogram
	resolves       metric.Int64Counter
	resolveErrors  metric.Int64Counter
	resolveLatency metric.Float64Histogram
	markers        metric.Int64Histogram
	cacheLookups   metric.Int64Counter
}

var defaultRecorder = sync.OnceValues(func() (*otelRecorder, error) {
	return newOtelRecorder(otel.Meter(ScopeName))
})

func newOtelRecorder(meter metric.Meter) (*otelRecorder, error) {
	var (
		r   otelRecorder
		err error
	)

	if r.evals, err = meter.Int64Counter("exprx.eval.count",
		metric.WithDescription("Number of expression evaluations"),
	); err != nil {
		return nil, err
	}

	if r.evalErrors, err = meter.Int64Counter("exprx.eval.errors",
		metric.WithDescription("Number of failed expression evaluations"),
	); err != nil {
		return nil, err
	}

	if r.evalLatency, err = meter.Float64Histogram("exprx.eval.latency_ms",
		metric.WithDescription("Expression evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	if r.resolves, err = meter.Int64Counter("exprx.template.resolves",
		metric.WithDescription("Number of template resolutions"),
	); err != nil {
		return nil, err
	}

	if r.resolveErrors, err = meter.Int64Counter("exprx.template.errors",
		metric.WithDescription("Number of failed template resolutions"),
	); err != nil {
		return nil, err
	}

	if r.resolveLatency, err = meter.Float64Histogram("exprx.template.latency_ms",
		metric.WithDescription("Template resolution latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	if r.markers, err = meter.Int64Histogram("exprx.template.markers",
		metric.WithDescription("Distinct markers evaluated per template"),
	); err != nil {
		return nil, err
	}

	if r.cacheLookups, err = meter.Int64Counter("exprx.cache.lookups",
		metric.WithDescription("Compiled program cache lookups"),
	); err != nil {
		return nil, err
	}

	return &r, nil
}

// NewRecorder returns a Recorder backed by the global OTel meter provider.
// The instruments are created once per process; if that fails, NewRecorder
// logs a warning and returns [Noop].
func NewRecorder() Recorder {
	r, err := defaultRecorder()
	if err != nil {
		log.Warn("metrics initialization failed, using no-op recorder",
			log.Err(err))

		return Noop{}
	}

	return r
}

func (r *otelRecorder) RecordEval(ctx context.Context, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))

	r.evals.Add(ctx, 1, attrs)
	r.evalLatency.Record(ctx, milliseconds(duration), attrs)

	if err != nil {
		r.evalErrors.Add(ctx, 1)
	}
}

func (r *otelRecorder) RecordResolve(
	ctx context.Context,
	markers int,
	duration time.Duration,
	err error,
) {
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))

	r.resolves.Add(ctx, 1, attrs)
	r.resolveLatency.Record(ctx, milliseconds(duration), attrs)
	r.markers.Record(ctx, int64(markers))

	if err != nil {
		r.resolveErrors.Add(ctx, 1)
	}
}

func (r *otelRecorder) RecordCache(ctx context.Context, hit bool) {
	r.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hit", hit)))
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Noop is a Recorder that does nothing.
type Noop struct{}

var _ Recorder = Noop{}

// RecordEval does nothing.
func (Noop) RecordEval(context.Context, time.Duration, error) {}

// RecordResolve does nothing.
func (Noop) RecordResolve(context.Context, int, time.Duration, error) {}

// RecordCache does nothing.
func (Noop) RecordCache(context.Context, bool) {}
