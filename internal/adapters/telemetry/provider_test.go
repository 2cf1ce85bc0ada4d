package telemetry_test

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

	"github.com/skeinlabs/gcx/internal/adapters/telemetry"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

// newRecordingTracer installs a recording tracer provider globally, since
// OTelTracer resolves its tracer through otel.Tracer.
func newRecordingTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		// t.Context() is already canceled once cleanups run.
		require.NoError(t, tp.Shutdown(context.Background()))
	})

	return telemetry.NewOTelTracer("gcx-test"), recorder
}

func TestOTelTracer_StartEnd(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(t.Context(), "rank.solve", ports.WithAttribute("rows", 12))
	span.SetAttribute("family", "ordinary")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "rank.solve", ended[0].Name())

	attrs := ended[0].Attributes()
	assert.Contains(t, attrs, attribute.Int("rows", 12))
	assert.Contains(t, attrs, attribute.String("family", "ordinary"))
}

func TestOTelTracer_ChildSpans(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	ctx, parent := tracer.Start(t.Context(), "parent")
	_, child := tracer.Start(ctx, "child")
	child.End()
	parent.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "child", ended[0].Name())
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestOTelSpan_RecordError(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(t.Context(), "basis.enumerate")
	span.RecordError(errors.New("search space too large"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "search space too large", ended[0].Status().Description)
}

func TestOTelSpan_AttributeTypes(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(t.Context(), "attrs")
	span.SetAttribute("s", "str")
	span.SetAttribute("i", 7)
	span.SetAttribute("i64", int64(9))
	span.SetAttribute("f", 1.5)
	span.SetAttribute("b", true)
	span.SetAttribute("ss", []string{"a", "b"})
	span.SetAttribute("other", struct{ X int }{X: 3})
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	attrs := ended[0].Attributes()
	assert.Contains(t, attrs, attribute.String("s", "str"))
	assert.Contains(t, attrs, attribute.Int("i", 7))
	assert.Contains(t, attrs, attribute.Int64("i64", 9))
	assert.Contains(t, attrs, attribute.Float64("f", 1.5))
	assert.Contains(t, attrs, attribute.Bool("b", true))
	assert.Contains(t, attrs, attribute.StringSlice("ss", []string{"a", "b"}))
	assert.Contains(t, attrs, attribute.String("other", "{3}"))
}

func TestOTelSpan_Write(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(t.Context(), "solver")
	n, err := span.(*telemetry.OTelSpan).Write([]byte("rank 42"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "log", ended[0].Events()[0].Name)
	assert.Contains(t, ended[0].Events()[0].Attributes, attribute.String("message", "rank 42"))
}
