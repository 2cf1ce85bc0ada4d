package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/mock/gomock"

	"github.com/skeinlabs/gcx/internal/adapters/telemetry"
	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports/mocks"
)

func basisCell() domain.CellID {
	return domain.CellID{
		Key: domain.GradingKey{
			Family:     domain.FamilyOrdinary,
			Vertices:   4,
			Loops:      3,
			EdgeParity: domain.ParityOdd,
		},
		Stage: domain.StageBasis,
	}
}

func newBridgedTracer(t *testing.T, bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	t.Helper()

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	t.Cleanup(func() {
		// t.Context() is already canceled once cleanups run.
		require.NoError(t, tp.Shutdown(context.Background()))
	})
	return tp
}

func TestBridge_CellSpanCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	rend := mocks.NewMockRenderer(ctrl)
	cell := basisCell()

	rend.EXPECT().OnCellStart(cell, gomock.Any())
	rend.EXPECT().OnCellComplete(gomock.Any()).Do(func(result domain.CellResult) {
		assert.Equal(t, cell, result.Cell)
		assert.Equal(t, domain.StatusCompleted, result.Status)
		assert.NoError(t, result.Err)
		assert.GreaterOrEqual(t, result.Duration, time.Duration(0))
	})

	tp := newBridgedTracer(t, telemetry.NewBridge(rend))

	_, span := tp.Tracer("test").Start(t.Context(), cell.String())
	span.End()
}

func TestBridge_CellSpanFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	rend := mocks.NewMockRenderer(ctrl)
	cell := basisCell()

	rend.EXPECT().OnCellStart(cell, gomock.Any())
	rend.EXPECT().OnCellComplete(gomock.Any()).Do(func(result domain.CellResult) {
		assert.Equal(t, domain.StatusFailed, result.Status)
		require.Error(t, result.Err)
		assert.Equal(t, "enumeration blew up", result.Err.Error())
	})

	tp := newBridgedTracer(t, telemetry.NewBridge(rend))

	_, span := tp.Tracer("test").Start(t.Context(), cell.String())
	span.SetStatus(codes.Error, "enumeration blew up")
	span.End()
}

func TestBridge_FailedWithoutDescription(t *testing.T) {
	ctrl := gomock.NewController(t)
	rend := mocks.NewMockRenderer(ctrl)
	cell := basisCell()

	rend.EXPECT().OnCellStart(cell, gomock.Any())
	rend.EXPECT().OnCellComplete(gomock.Any()).Do(func(result domain.CellResult) {
		assert.Equal(t, domain.StatusFailed, result.Status)
		require.Error(t, result.Err)
		assert.Equal(t, "cell failed", result.Err.Error())
	})

	tp := newBridgedTracer(t, telemetry.NewBridge(rend))

	_, span := tp.Tracer("test").Start(t.Context(), cell.String())
	span.SetStatus(codes.Error, "")
	span.End()
}

func TestBridge_IgnoresNonCellSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	rend := mocks.NewMockRenderer(ctrl)
	// No expectations: the bridge must not forward spans it cannot parse.

	tp := newBridgedTracer(t, telemetry.NewBridge(rend))

	_, span := tp.Tracer("test").Start(t.Context(), "oracle.enumerate")
	span.End()
}

func TestBridge_NilRenderer(t *testing.T) {
	tp := newBridgedTracer(t, telemetry.NewBridge(nil))

	require.NotPanics(t, func() {
		_, span := tp.Tracer("test").Start(t.Context(), basisCell().String())
		span.End()
	})
}
