package render

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
	"github.com/skeinlabs/gcx/internal/ui/output"
	"github.com/skeinlabs/gcx/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer with linear, chronological event lines
// on stderr and the final report on stdout.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output
	mode   Mode

	mu sync.Mutex
}

// NewRenderer creates a new Renderer. Nil writers default to the process
// streams.
func NewRenderer(stdout, stderr io.Writer, mode Mode) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if mode == ModeAuto {
		mode = DetectMode()
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		out:    output.NewWithProfile(stderr, output.ColorProfileANSI),
		mode:   mode,
	}
}

// OnPlanEmit prints the planned cell count.
func (r *Renderer) OnPlanEmit(cells []domain.CellID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Planning %d cell(s)\n", len(cells))
}

// OnCellStart prints a cell start line.
func (r *Renderer) OnCellStart(cell domain.CellID, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := r.out.String(fmt.Sprintf("[%s]", cell)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnCellComplete prints the cell's outcome.
func (r *Renderer) OnCellComplete(result domain.CellResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := fmt.Sprintf("[%s]", result.Cell)

	switch result.Status {
	case domain.StatusFailed:
		symbol := r.out.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n",
			prefix, symbol, result.Duration, result.Err)
	case domain.StatusCached:
		symbol := r.out.String(style.Dot).Faint().String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Cached\n", prefix, symbol)
	case domain.StatusSkipped:
		symbol := r.out.String(style.Circle).Foreground(termenv.ANSIYellow).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Skipped (dependency failed)\n", prefix, symbol)
	default:
		symbol := r.out.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n",
			prefix, symbol, result.Duration)
	}
}

// RenderReport prints validator findings, the cohomology table and a run
// summary.
func (r *Renderer) RenderReport(report domain.RunReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, finding := range report.Findings {
		symbol := r.out.String(style.Warning).Foreground(termenv.ANSIYellow).String()
		if _, err := fmt.Fprintf(r.stderr, "%s %s\n", symbol, finding); err != nil {
			return err
		}
	}

	if err := r.renderCohomologyLocked(report.Cohomology); err != nil {
		return err
	}

	return r.renderSummaryLocked(report)
}

// RenderCohomology prints only the dimension table. Watch mode re-renders it
// as artifacts land.
func (r *Renderer) RenderCohomology(entries []domain.CohomologyEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.renderCohomologyLocked(entries)
}

func (r *Renderer) renderCohomologyLocked(entries []domain.CohomologyEntry) error {
	if len(entries) == 0 {
		return nil
	}

	sorted := make([]domain.CohomologyEntry, len(entries))
	copy(sorted, entries)
	domain.SortCohomology(sorted)

	rendered := cohomologyTSV(sorted)
	if r.mode == ModePretty {
		rendered = cohomologyTable(sorted)
	}
	_, err := fmt.Fprintln(r.stdout, rendered)
	return err
}

func (r *Renderer) renderSummaryLocked(report domain.RunReport) error {
	symbol := r.out.String(style.Check).Foreground(termenv.ANSIGreen).String()
	if report.Failed() {
		symbol = r.out.String(style.Cross).Foreground(termenv.ANSIRed).String()
	}

	_, err := fmt.Fprintf(r.stderr, "%s %d completed, %d cached, %d failed, %d skipped in %v\n",
		symbol,
		report.Count(domain.StatusCompleted),
		report.Count(domain.StatusCached),
		report.Count(domain.StatusFailed),
		report.Count(domain.StatusSkipped),
		report.Elapsed)
	return err
}
