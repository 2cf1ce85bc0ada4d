package domain

import (
	"fmt"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// CellStatus is the outcome of one scheduled cell.
type CellStatus string

const (
	// StatusCompleted means the cell was computed this run.
	StatusCompleted CellStatus = "completed"

	// StatusCached means a stored artifact satisfied the cell.
	StatusCached CellStatus = "cached"

	// StatusFailed means the cell's computation returned an error.
	StatusFailed CellStatus = "failed"

	// StatusSkipped means a dependency failed so the cell never ran.
	StatusSkipped CellStatus = "skipped"
)

// CellID addresses one unit of scheduled work.
type CellID struct {
	Key   GradingKey
	Stage Stage
	// Kind is set for operator, rank and validate cells.
	Kind OperatorKind
}

// String renders the cell for logs and the run report.
func (c CellID) String() string {
	if c.Kind != "" {
		return fmt.Sprintf("%s/%s/%s", c.Key.String(), c.Stage, c.Kind)
	}
	return fmt.Sprintf("%s/%s", c.Key.String(), c.Stage)
}

// ParseCellID parses the String rendering of a cell back into a CellID.
func ParseCellID(s string) (CellID, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 && len(parts) != 4 {
		return CellID{}, zerr.With(zerr.Wrap(ErrInvalidCellID, "parsing cell"), "cell", s)
	}

	key, err := ParseGradingKey(parts[0] + "/" + parts[1])
	if err != nil {
		return CellID{}, zerr.With(zerr.Wrap(ErrInvalidCellID, "parsing cell"), "cell", s)
	}
	stage, err := ParseStage(parts[2])
	if err != nil {
		return CellID{}, zerr.With(zerr.Wrap(ErrInvalidCellID, "parsing cell"), "cell", s)
	}

	cell := CellID{Key: key, Stage: stage}
	if len(parts) == 4 {
		kind, err := ParseOperatorKind(parts[3])
		if err != nil {
			return CellID{}, zerr.With(zerr.Wrap(ErrInvalidCellID, "parsing cell"), "cell", s)
		}
		cell.Kind = kind
	}
	return cell, nil
}

// CellResult records how one cell ended.
type CellResult struct {
	Cell     CellID
	Status   CellStatus
	Err      error
	Duration time.Duration
}

// ValidationFinding is one failed algebraic identity or suspicious artifact.
// Findings are reported, not fatal: a nonzero composite usually means a sign
// convention bug.
type ValidationFinding struct {
	// Check names the identity, "square-zero", "anti-commute" or
	// "rank-domain".
	Check string
	Left  OperatorKey
	Right OperatorKey
	// NonzeroEntries is the number of entries surviving in the composite.
	NonzeroEntries int
	// Detail carries non-composite findings, such as a rank persisted under
	// unexpected coefficients.
	Detail string
}

// String renders the finding for logs and the run report.
func (f ValidationFinding) String() string {
	if f.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", f.Check, f.Left.String(), f.Detail)
	}
	return fmt.Sprintf("%s violated: %s then %s leaves %d nonzero entries",
		f.Check, f.Left.String(), f.Right.String(), f.NonzeroEntries)
}

// RunReport aggregates one run: every cell outcome, validator findings and
// the assembled cohomology table.
type RunReport struct {
	Plan       RunPlan
	Cells      []CellResult
	Findings   []ValidationFinding
	Cohomology []CohomologyEntry
	Elapsed    time.Duration
}

// Count returns how many cells ended with the given status.
func (r RunReport) Count(status CellStatus) int {
	n := 0
	for _, c := range r.Cells {
		if c.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any cell failed.
func (r RunReport) Failed() bool { return r.Count(StatusFailed) > 0 }
