package telemetry

import (
	"context"

	"github.com/skeinlabs/gcx/internal/core/ports"
)

// NewNoop returns a tracer that records nothing. Used by commands that do
// not run the pipeline.
func NewNoop() ports.Tracer {
	return noopTracer{}
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End()                     {}
func (noopSpan) RecordError(error)        {}
func (noopSpan) SetAttribute(string, any) {}
