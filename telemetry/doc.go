// Package telemetry provides OpenTelemetry tracing and metrics for
// expression evaluation and template resolution.
//
// Spans and instruments use the global OTel providers. Configure them before
// use:
//
//	otel.SetTracerProvider(tp)
//	otel.SetMeterProvider(mp)
//
// Without configured providers every operation is a no-op.
package telemetry
