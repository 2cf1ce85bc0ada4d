package ports

import "github.com/skeinlabs/gcx/internal/core/domain"

// ArtifactStore persists the pipeline's artifacts keyed by grading. Get
// methods return domain.ErrCacheMiss when the artifact is absent and
// domain.ErrStoreCorrupt when it fails its integrity checks; callers treat
// both as "recompute".
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// GetBasis retrieves the generator basis for a grading key.
	GetBasis(key domain.GradingKey) (domain.Basis, error)

	// PutBasis stores a basis.
	PutBasis(basis domain.Basis) error

	// GetMatrix retrieves the differential matrix for an operator key.
	GetMatrix(op domain.OperatorKey) (domain.SparseMatrix, error)

	// PutMatrix stores a differential matrix.
	PutMatrix(op domain.OperatorKey, m domain.SparseMatrix) error

	// MatrixPath returns the path the operator's matrix file lives at,
	// whether or not it exists yet. External solvers read it directly.
	MatrixPath(op domain.OperatorKey) string

	// GetRank retrieves the rank of an operator over a coefficient domain.
	GetRank(op domain.OperatorKey, dom domain.CoefficientDomain) (domain.Rank, error)

	// PutRank stores a rank.
	PutRank(op domain.OperatorKey, rank domain.Rank) error

	// GetCohomology retrieves the assembled dimension table.
	GetCohomology() ([]domain.CohomologyEntry, error)

	// PutCohomology stores the assembled dimension table.
	PutCohomology(entries []domain.CohomologyEntry) error

	// Root returns the store's root directory.
	Root() string

	// Clean removes every stored artifact.
	Clean() error
}
