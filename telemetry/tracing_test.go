package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTracingTest(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer(ScopeName)

	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		tracer = otel.Tracer(ScopeName)

		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("shutting down tracer provider: %v", err)
		}
	})

	return exporter
}

func TestStartResolveSpan(t *testing.T) {
	exporter := setupTracingTest(t)

	_, span := StartResolveSpan(t.Context(), "greeting", 42)
	EndSpan(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	s := spans[0]
	assert.Equal(t, "template.resolve", s.Name)
	assert.Equal(t, codes.Ok, s.Status.Code)
	assert.Contains(t, s.Attributes, KeyTemplateName.String("greeting"))
	assert.Contains(t, s.Attributes, KeyTemplateLength.Int(42))
}

func TestStartEvalSpan_Child(t *testing.T) {
	exporter := setupTracingTest(t)

	ctx, parent := StartResolveSpan(t.Context(), "t", 1)
	_, child := StartEvalSpan(ctx, "$.name")

	EndSpan(child, errors.New("boom"))
	EndSpan(parent, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	eval := spans[0]
	assert.Equal(t, "expr.eval", eval.Name)
	assert.Equal(t, codes.Error, eval.Status.Code)
	assert.Equal(t, "boom", eval.Status.Description)
	assert.Equal(t, spans[1].SpanContext.SpanID(), eval.Parent.SpanID())
	assert.Contains(t, eval.Attributes, KeyExprSource.String("$.name"))
	require.Len(t, eval.Events, 1)
	assert.Equal(t, "exception", eval.Events[0].Name)
}

func TestAddSpanEvent(t *testing.T) {
	exporter := setupTracingTest(t)

	ctx, span := StartResolveSpan(t.Context(), "t", 0)
	AddSpanEvent(ctx, "marker", attribute.String("body", "1 + 1"))
	EndSpan(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "marker", spans[0].Events[0].Name)
}

func TestAddSpanEvent_NoSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		AddSpanEvent(t.Context(), "ignored")
	})
}

func TestEndSpan_Nil(t *testing.T) {
	assert.NotPanics(t, func() { EndSpan(nil, errors.New("x")) })
}
