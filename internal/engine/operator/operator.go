// Package operator builds the sparse matrices of the differentials: the
// image of every source generator is enumerated, canonicalized, located in
// the target basis and accumulated with its orientation sign.
package operator

import (
	"context"
	"errors"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
	"github.com/skeinlabs/gcx/internal/engine/basis"
)

// BasisSource yields the basis of a grading, building it if absent.
type BasisSource interface {
	Ensure(ctx context.Context, key domain.GradingKey) (domain.Basis, error)
}

// Builder constructs and persists differential matrices.
type Builder struct {
	oracle ports.Oracle
	store  ports.ArtifactStore
	bases  BasisSource
	group  singleflight.Group
}

// NewBuilder creates an operator builder.
func NewBuilder(oracle ports.Oracle, store ports.ArtifactStore, bases BasisSource) *Builder {
	return &Builder{oracle: oracle, store: store, bases: bases}
}

// Ensure returns the matrix of an operator, building and persisting it when
// the store has no usable copy. Concurrent callers for the same operator
// share one computation.
func (b *Builder) Ensure(ctx context.Context, op domain.OperatorKey) (domain.SparseMatrix, error) {
	v, err, _ := b.group.Do(op.String(), func() (any, error) {
		stored, err := b.store.GetMatrix(op)
		if err == nil {
			return stored, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) && !errors.Is(err, domain.ErrStoreCorrupt) {
			return domain.SparseMatrix{}, err
		}

		built, err := b.Build(ctx, op)
		if err != nil {
			return domain.SparseMatrix{}, err
		}
		if err := b.store.PutMatrix(op, built); err != nil {
			return domain.SparseMatrix{}, err
		}
		return built, nil
	})
	if err != nil {
		return domain.SparseMatrix{}, err
	}
	return v.(domain.SparseMatrix), nil
}

// Build computes the matrix of an operator without touching the store. Rows
// index target generators, columns index source generators.
func (b *Builder) Build(ctx context.Context, op domain.OperatorKey) (domain.SparseMatrix, error) {
	src, err := b.bases.Ensure(ctx, op.Source)
	if err != nil {
		return domain.SparseMatrix{}, err
	}
	tgt, err := b.bases.Ensure(ctx, op.Target())
	if err != nil {
		return domain.SparseMatrix{}, err
	}

	acc := make(map[[2]int]int64)
	for col, gen := range src.Generators {
		if err := b.accumulateImages(ctx, op, gen.Canonical, col, tgt, acc); err != nil {
			return domain.SparseMatrix{}, zerr.With(zerr.With(err,
				"operator", op.String()),
				"generator", gen.G6)
		}
	}

	entries := make([]domain.MatrixEntry, 0, len(acc))
	for coord, v := range acc {
		if v == 0 {
			continue
		}
		entries = append(entries, domain.MatrixEntry{Row: coord[0], Col: coord[1], Val: v})
	}
	m, err := domain.NewSparseMatrix(tgt.Dimension(), src.Dimension(), entries)
	if err != nil {
		return domain.SparseMatrix{}, zerr.Wrap(err, domain.ErrOperatorConstruction.Error())
	}
	return m, nil
}

func (b *Builder) accumulateImages(
	ctx context.Context,
	op domain.OperatorKey,
	g domain.Graph,
	col int,
	tgt domain.Basis,
	acc map[[2]int]int64,
) error {
	switch op.Kind {
	case domain.KindContract:
		return b.contractImages(ctx, op, g, col, tgt, acc)
	case domain.KindDelete:
		return b.deleteImages(ctx, op, g, col, tgt, acc)
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownOperatorKind, "building operator"), "kind", string(op.Kind))
	}
}

// contractImages sums the contractions of every internal edge. Each term is
// relabeled so the contracted edge becomes (0,1), contracted, canonicalized
// and located in the target basis; the orientation sign is tracked through
// every step.
func (b *Builder) contractImages(
	ctx context.Context,
	op domain.OperatorKey,
	g domain.Graph,
	col int,
	tgt domain.Basis,
	acc map[[2]int]int64,
) error {
	key := op.Source
	for _, e := range g.Edges() {
		// Hair edges are never contracted: the hair count is part of the
		// grading and the target keeps it.
		if e.U >= key.Vertices || e.V >= key.Vertices {
			continue
		}

		pp := frontPermutation(g.Order(), e.U, e.V)
		sign := domain.EdgePermSign(g, pp, key.EdgeParity) *
			domain.HairPermSign(pp, key.Vertices, key.Hairs, key.HairParity)

		relabeled := g.Relabel(pp)
		slot, ok := relabeled.EdgeIndex(0, 1)
		if !ok {
			return zerr.Wrap(domain.ErrOperatorConstruction, "relabeled edge vanished")
		}
		res := relabeled.ContractEdge(slot)
		if res.Degenerate {
			continue
		}
		if key.EdgeParity == domain.ParityOdd {
			sign *= slotPermSign(res.Slots, slot)
		}

		if err := b.addTerm(ctx, op, res.Graph, sign, col, tgt, acc); err != nil {
			return err
		}
	}
	return nil
}

// deleteImages sums the deletions of every internal edge with alternating
// signs. Deletions whose result leaves the complex are zero.
func (b *Builder) deleteImages(
	ctx context.Context,
	op domain.OperatorKey,
	g domain.Graph,
	col int,
	tgt domain.Basis,
	acc map[[2]int]int64,
) error {
	key := op.Source
	for i, e := range g.Edges() {
		if e.U >= key.Vertices || e.V >= key.Vertices {
			continue
		}

		gg := g.DeleteEdge(i)
		if !gg.IsConnected() || gg.MinDegree() < 3 {
			continue
		}

		if err := b.addTerm(ctx, op, gg, domain.DeletionSign(i), col, tgt, acc); err != nil {
			return err
		}
	}
	return nil
}

// addTerm canonicalizes one image graph and accumulates its coefficient. An
// image whose class was annihilated in the target basis contributes zero.
func (b *Builder) addTerm(
	ctx context.Context,
	op domain.OperatorKey,
	image domain.Graph,
	sign int,
	col int,
	tgt domain.Basis,
	acc map[[2]int]int64,
) error {
	tgtKey := op.Target()
	canon, perm, err := b.oracle.Canonicalize(ctx, image, tgtKey.Partition())
	if err != nil {
		return zerr.Wrap(err, domain.ErrOperatorConstruction.Error())
	}
	sign *= domain.EdgePermSign(image, perm, tgtKey.EdgeParity) *
		domain.HairPermSign(perm, tgtKey.Vertices, tgtKey.Hairs, tgtKey.HairParity)

	row, ok := tgt.Index(canon.Graph6())
	if !ok {
		dropped, err := basis.Annihilated(ctx, b.oracle, tgtKey, canon)
		if err != nil {
			return err
		}
		if dropped {
			return nil
		}
		return zerr.With(zerr.With(
			zerr.Wrap(domain.ErrGeneratorNotInBasis, "image missing from target basis"),
			"target", tgtKey.String()),
			"image", canon.Graph6())
	}
	acc[[2]int{row, col}] += int64(sign)
	return nil
}

// frontPermutation maps u to 0 and v to 1 and keeps every other label in its
// original order behind them.
func frontPermutation(n, u, v int) []int {
	p := make([]int, n)
	next := 2
	for w := 0; w < n; w++ {
		switch w {
		case u:
			p[w] = 0
		case v:
			p[w] = 1
		default:
			p[w] = next
			next++
		}
	}
	return p
}

// slotPermSign is the sign of the edge rearrangement a contraction induces
// under odd edges: the contracted slot leaves the order and the surviving
// slots, given in the target's lexicographic order, permute the rest.
func slotPermSign(slots []int, contracted int) int {
	induced := make([]int, len(slots))
	for i, s := range slots {
		if s > contracted {
			s--
		}
		induced[i] = s
	}
	return domain.PermutationSign(induced) * domain.DeletionSign(contracted)
}
