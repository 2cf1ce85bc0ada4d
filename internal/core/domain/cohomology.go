package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// CohomologyEntry is the computed dimension of one graded piece with respect
// to one differential.
type CohomologyEntry struct {
	Key       GradingKey
	Kind      OperatorKind
	Dimension int
	Domain    CoefficientDomain
}

// CohomologyDimension combines a space dimension with the ranks of the
// outgoing and incoming differentials: dim H = n - rank(d_out) - rank(d_in).
// A negative result means an upstream artifact is wrong and is an error,
// never clamped.
func CohomologyDimension(key GradingKey, kind OperatorKind, n int, out, in Rank) (CohomologyEntry, error) {
	if out.Domain != in.Domain {
		return CohomologyEntry{}, zerr.With(zerr.With(zerr.With(
			zerr.Wrap(ErrDomainMismatch, "adjacent ranks computed over different coefficients"),
			"key", key.String()),
			"out_domain", out.Domain.String()),
			"in_domain", in.Domain.String())
	}
	dim := n - out.Value - in.Value
	if dim < 0 {
		return CohomologyEntry{}, zerr.With(zerr.With(zerr.With(zerr.With(
			zerr.Wrap(ErrCohomologyAssembly, "negative dimension"),
			"key", key.String()),
			"kind", string(kind)),
			"rank_out", out.Value),
			"rank_in", in.Value)
	}
	return CohomologyEntry{Key: key, Kind: kind, Dimension: dim, Domain: out.Domain}, nil
}

// SortCohomology orders entries by family, kind and grading for stable
// rendering and persistence.
func SortCohomology(entries []CohomologyEntry) {
	slices.SortFunc(entries, func(a, b CohomologyEntry) int {
		if c := strings.Compare(a.Key.SubType(), b.Key.SubType()); c != 0 {
			return c
		}
		if c := strings.Compare(string(a.Kind), string(b.Kind)); c != 0 {
			return c
		}
		if a.Key.Vertices != b.Key.Vertices {
			return a.Key.Vertices - b.Key.Vertices
		}
		if a.Key.Loops != b.Key.Loops {
			return a.Key.Loops - b.Key.Loops
		}
		return a.Key.Hairs - b.Key.Hairs
	})
}
