// Package cohomology assembles the dimension table: for each grading and
// differential, dim H = n - rank(d out) - rank(d in).
package cohomology

import (
	"context"
	"errors"

	"go.trai.ch/zerr"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

// Assembler combines stored bases and ranks into cohomology dimensions.
type Assembler struct {
	store ports.ArtifactStore
	dom   domain.CoefficientDomain
}

// NewAssembler creates an assembler over the run's primary coefficient domain.
func NewAssembler(store ports.ArtifactStore, dom domain.CoefficientDomain) *Assembler {
	return &Assembler{store: store, dom: dom}
}

// Cell assembles the dimension of one grading with respect to one
// differential. The second return is false when a needed artifact is not in
// the store, which happens at the boundary of the computed range; such
// entries belong to a wider run.
func (a *Assembler) Cell(_ context.Context, key domain.GradingKey, kind domain.OperatorKind) (domain.CohomologyEntry, bool, error) {
	if !key.Valid() {
		return domain.CohomologyEntry{Key: key, Kind: kind, Dimension: 0, Domain: a.dom}, true, nil
	}

	basis, err := a.store.GetBasis(key)
	if err != nil {
		return a.incomplete(err)
	}

	out, ok, err := a.rank(domain.OperatorKey{Kind: kind, Source: key})
	if err != nil || !ok {
		return domain.CohomologyEntry{}, false, err
	}
	in, ok, err := a.rank(domain.OperatorKey{Kind: kind, Source: incomingSource(key, kind)})
	if err != nil || !ok {
		return domain.CohomologyEntry{}, false, err
	}

	entry, err := domain.CohomologyDimension(key, kind, basis.Dimension(), out, in)
	if err != nil {
		return domain.CohomologyEntry{}, false, err
	}
	return entry, true, nil
}

// Persist sorts and stores the assembled table.
func (a *Assembler) Persist(entries []domain.CohomologyEntry) error {
	domain.SortCohomology(entries)
	return a.store.PutCohomology(entries)
}

// rank fetches a stored rank. Operators out of an invalid grading are zero
// maps and have rank zero without a stored artifact.
func (a *Assembler) rank(op domain.OperatorKey) (domain.Rank, bool, error) {
	if !op.Source.Valid() || !op.Target().Valid() {
		return domain.Rank{Value: 0, Domain: a.dom}, true, nil
	}
	r, err := a.store.GetRank(op, a.dom)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) || errors.Is(err, domain.ErrStoreCorrupt) {
			return domain.Rank{}, false, nil
		}
		return domain.Rank{}, false, zerr.With(err, "operator", op.String())
	}
	return r, true, nil
}

func (a *Assembler) incomplete(err error) (domain.CohomologyEntry, bool, error) {
	if errors.Is(err, domain.ErrCacheMiss) || errors.Is(err, domain.ErrStoreCorrupt) {
		return domain.CohomologyEntry{}, false, nil
	}
	return domain.CohomologyEntry{}, false, err
}

// incomingSource is the grading whose differential of the given kind lands
// in key: contraction comes from one more vertex, deletion from one more
// loop.
func incomingSource(key domain.GradingKey, kind domain.OperatorKind) domain.GradingKey {
	src := key
	switch kind {
	case domain.KindContract:
		src.Vertices++
	case domain.KindDelete:
		src.Loops++
	}
	return src
}
