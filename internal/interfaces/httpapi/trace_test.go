package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func parentContext() context.Context {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestStartSpan(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		span      string
		wantChild bool
	}{
		{name: "handler with parent", ctx: parentContext(), span: "httpapi.Handler.ReshapeTeamMetrics", wantChild: true},
		{name: "handler without parent", ctx: context.Background(), span: "httpapi.Handler.Healthz"},
		{name: "middleware name", ctx: parentContext(), span: "httpapi.RequestLogging"},
		{name: "helper name", ctx: parentContext(), span: "httpapi.writeError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, span := startSpan(tt.ctx, tt.span, datasetAttr("ds_1"))
			defer span.End()

			if tt.wantChild && got == tt.ctx {
				t.Fatalf("expected a derived context for %q", tt.span)
			}
			if !tt.wantChild && got != tt.ctx {
				t.Fatalf("expected context unchanged for %q", tt.span)
			}
		})
	}
}
