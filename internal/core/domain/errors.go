package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidGraph is returned when an edge list contains loops, duplicate
	// edges or out-of-range endpoints.
	ErrInvalidGraph = zerr.New("invalid graph")

	// ErrMalformedGraph6 is returned when a graph6 string cannot be decoded.
	ErrMalformedGraph6 = zerr.New("malformed graph6 string")

	// ErrInvalidPermutation is returned when a vertex permutation is not a
	// bijection of the expected range.
	ErrInvalidPermutation = zerr.New("invalid permutation")

	// ErrInvalidGradingKey is returned when a grading key has out-of-range
	// components for its family.
	ErrInvalidGradingKey = zerr.New("invalid grading key")

	// ErrUnknownFamily is returned when a complex family name is not recognized.
	ErrUnknownFamily = zerr.New("unknown complex family")

	// ErrUnknownParity is returned when a parity convention name is not recognized.
	ErrUnknownParity = zerr.New("unknown parity convention")

	// ErrUnknownOperatorKind is returned when a differential name is not recognized.
	ErrUnknownOperatorKind = zerr.New("unknown operator kind")

	// ErrEnumeration is returned when the isomorphism oracle cannot enumerate
	// the graphs for a grading key.
	ErrEnumeration = zerr.New("graph enumeration failed")

	// ErrBasisInconsistency is returned when a stored basis disagrees with the
	// grading key it is filed under.
	ErrBasisInconsistency = zerr.New("basis inconsistent with grading key")

	// ErrGeneratorNotInBasis is returned when an operator image canonicalizes to
	// a graph that is absent from the target basis.
	ErrGeneratorNotInBasis = zerr.New("generator not found in target basis")

	// ErrOperatorConstruction is returned when an operator matrix cannot be built.
	ErrOperatorConstruction = zerr.New("operator construction failed")

	// ErrInvalidMatrix is returned when sparse matrix entries are out of bounds,
	// duplicated or zero.
	ErrInvalidMatrix = zerr.New("invalid sparse matrix")

	// ErrShapeMismatch is returned when two matrices cannot be composed or added.
	ErrShapeMismatch = zerr.New("matrix shape mismatch")

	// ErrRankSolver is returned when a rank backend fails or produces an
	// unusable answer.
	ErrRankSolver = zerr.New("rank computation failed")

	// ErrDomainMismatch is returned when ranks over different coefficient
	// domains are combined.
	ErrDomainMismatch = zerr.New("coefficient domain mismatch")

	// ErrValidation is returned when the complex validator cannot run a check.
	// Failed checks are findings, not errors.
	ErrValidation = zerr.New("complex validation failed")

	// ErrCohomologyAssembly is returned when a cohomology dimension comes out
	// negative, which means an upstream rank or basis is wrong.
	ErrCohomologyAssembly = zerr.New("cohomology assembly produced negative dimension")

	// ErrStoreCorrupt is returned when a stored artifact fails its structural
	// integrity checks. The scheduler treats this as a cache miss.
	ErrStoreCorrupt = zerr.New("store artifact corrupt")

	// ErrStoreCreateFailed is returned when a store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create store directory")

	// ErrStoreReadFailed is returned when a store artifact cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read store artifact")

	// ErrStoreWriteFailed is returned when a store artifact cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write store artifact")

	// ErrCacheMiss is returned when a requested artifact is not in the store.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrConfigNotFound is returned when no gcx.yaml is found walking up from
	// the working directory.
	ErrConfigNotFound = zerr.New("could not find gcx.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidPlan is returned when a run plan fails validation.
	ErrInvalidPlan = zerr.New("invalid run plan")

	// ErrInvalidCellID is returned when a string does not parse as a cell id.
	ErrInvalidCellID = zerr.New("invalid cell id")

	// ErrCellFailed is returned when a scheduled cell fails and its dependents
	// are skipped.
	ErrCellFailed = zerr.New("cell computation failed")

	// ErrDependencySkipped is returned for cells skipped because a dependency
	// failed earlier in the run.
	ErrDependencySkipped = zerr.New("skipped due to failed dependency")
)
