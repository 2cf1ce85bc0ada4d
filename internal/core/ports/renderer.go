package ports

import (
	"time"

	"github.com/skeinlabs/gcx/internal/core/domain"
)

// Renderer is the abstraction for output rendering. It decouples the
// scheduler's event stream from presentation, so the same run can drive a
// live progress surface or plain CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnPlanEmit is called once with every cell the scheduler will run, in
	// dependency order.
	OnPlanEmit(cells []domain.CellID)

	// OnCellStart is called when a cell begins computing. Cells satisfied
	// from the store never start.
	OnCellStart(cell domain.CellID, startTime time.Time)

	// OnCellComplete is called when a cell finishes, with its final status.
	OnCellComplete(result domain.CellResult)

	// RenderReport renders the final run report after the scheduler drains.
	RenderReport(report domain.RunReport) error
}
