// Package rank dispatches matrices to rank backends: small matrices go to
// the in-process solver, large ones to external solver processes, with one
// retry per backend before the next backend is tried.
package rank

import (
	"context"
	"errors"
	"time"

	"go.trai.ch/zerr"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

// attemptsPerBackend is how often one backend is tried before moving on.
const attemptsPerBackend = 2

// Engine computes and persists operator ranks.
type Engine struct {
	store   ports.ArtifactStore
	solvers []ports.RankSolver
	limit   int
	timeout time.Duration
}

// NewEngine creates a rank engine. The solver order is the plan's order; the
// first backend is the primary one whose domain tags the run's ranks.
func NewEngine(store ports.ArtifactStore, solvers []ports.RankSolver, limit int, timeout time.Duration) *Engine {
	return &Engine{store: store, solvers: solvers, limit: limit, timeout: timeout}
}

// Primary returns the coefficient domain of the primary backend.
func (e *Engine) Primary() domain.CoefficientDomain {
	if len(e.solvers) == 0 {
		return domain.Rational
	}
	return e.solvers[0].Domain()
}

// Compute determines the rank of an operator's matrix and persists it. A
// backend that fails is retried once, then the remaining backends are tried
// in order; when all are exhausted the cell fails rather than guess.
func (e *Engine) Compute(ctx context.Context, op domain.OperatorKey, m domain.SparseMatrix) (domain.Rank, error) {
	if len(e.solvers) == 0 {
		return domain.Rank{}, zerr.Wrap(domain.ErrRankSolver, "no backends configured")
	}

	req := ports.RankRequest{Matrix: m, MatrixPath: e.store.MatrixPath(op)}

	var errs error
	for _, solver := range e.ordered(m) {
		for attempt := 1; attempt <= attemptsPerBackend; attempt++ {
			rank, err := e.attempt(ctx, solver, req)
			if err == nil {
				if err := e.store.PutRank(op, rank); err != nil {
					return domain.Rank{}, err
				}
				return rank, nil
			}
			errs = errors.Join(errs, zerr.With(zerr.With(err,
				"backend", solver.Name()),
				"attempt", attempt))
			if ctx.Err() != nil {
				return domain.Rank{}, zerr.Wrap(errs, domain.ErrRankSolver.Error())
			}
		}
	}
	return domain.Rank{}, zerr.With(zerr.Wrap(errs, domain.ErrRankSolver.Error()),
		"operator", op.String())
}

// attempt runs one backend invocation under the solver timeout.
func (e *Engine) attempt(ctx context.Context, solver ports.RankSolver, req ports.RankRequest) (domain.Rank, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return solver.Rank(ctx, req)
}

// ordered returns the backends in preference order for the matrix: below the
// in-process dimension limit the in-process backends come first, above it
// the external ones do.
func (e *Engine) ordered(m domain.SparseMatrix) []ports.RankSolver {
	small := max(m.Rows, m.Cols) <= e.limit

	preferred := make([]ports.RankSolver, 0, len(e.solvers))
	rest := make([]ports.RankSolver, 0, len(e.solvers))
	for _, s := range e.solvers {
		if isInProcess(s) == small {
			preferred = append(preferred, s)
		} else {
			rest = append(rest, s)
		}
	}
	return append(preferred, rest...)
}

// isInProcess reports whether a backend runs inside the engine. The
// in-process solver is the only backend named "inprocess".
func isInProcess(s ports.RankSolver) bool {
	return s.Name() == "inprocess"
}
