package ports

import (
	"context"

	"github.com/skeinlabs/gcx/internal/core/domain"
)

// RankRequest carries a matrix in both the forms backends consume: the
// in-memory entries for in-process elimination and the SMS file path for
// external solver processes.
type RankRequest struct {
	Matrix     domain.SparseMatrix
	MatrixPath string
}

// RankSolver computes the exact rank of a sparse integer matrix over one
// coefficient domain. Implementations must honor context cancellation; a
// backend that cannot produce a trustworthy answer returns an error, never a
// guessed rank.
//
//go:generate mockgen -source=solver.go -destination=mocks/mock_solver.go -package=mocks
type RankSolver interface {
	// Name identifies the backend in logs and the run report.
	Name() string

	// Domain returns the coefficient domain the backend computes over.
	Domain() domain.CoefficientDomain

	// Rank computes the rank of the requested matrix.
	Rank(ctx context.Context, req RankRequest) (domain.Rank, error)
}
