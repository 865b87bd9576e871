package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ScopeName is the instrumentation scope of every tracer and meter.
const ScopeName = "github.com/ardnew/exprx"

var tracer = otel.Tracer(ScopeName)

// Attribute keys.
const (
	KeyTemplateName    = attribute.Key("template.name")
	KeyTemplateMarkers = attribute.Key("template.markers")
	KeyTemplateLength  = attribute.Key("template.length")
	KeyExprSource      = attribute.Key("expr.source")
	KeyExprCached      = attribute.Key("expr.cached")
)

// StartResolveSpan starts a span for resolving one template.
func StartResolveSpan(
	ctx context.Context,
	name string,
	length int,
) (context.Context, trace.Span) {
	return tracer.Start(ctx, "template.resolve",
		trace.WithAttributes(
			KeyTemplateName.String(name),
			KeyTemplateLength.Int(length),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartEvalSpan starts a span for evaluating one expression. It is a child
// of any resolve span in ctx.
func StartEvalSpan(ctx context.Context, source string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "expr.eval",
		trace.WithAttributes(KeyExprSource.String(source)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan completes a span, recording err if it is non-nil.
func EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}

// AddSpanEvent adds an event to the recording span in ctx, if any.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.AddEvent(name, trace.WithAttributes(attrs...))
}
