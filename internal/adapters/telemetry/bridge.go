package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor, translating spans named after
// cells into renderer events. Spans with other names pass through silently,
// so engines are free to open fine-grained child spans.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{
		renderer: renderer,
	}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil {
		return
	}

	cell, err := domain.ParseCellID(s.Name())
	if err != nil {
		return
	}

	b.renderer.OnCellStart(cell, s.StartTime())
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil {
		return
	}

	cell, err := domain.ParseCellID(s.Name())
	if err != nil {
		return
	}

	result := domain.CellResult{
		Cell:     cell,
		Status:   domain.StatusCompleted,
		Duration: s.EndTime().Sub(s.StartTime()),
	}
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "cell failed"
		}
		result.Status = domain.StatusFailed
		result.Err = errors.New(desc)
	}

	b.renderer.OnCellComplete(result)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
