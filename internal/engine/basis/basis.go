// Package basis builds generator bases: one canonical representative per
// isomorphism class of a grading, with generators carrying an odd
// automorphism removed.
package basis

import (
	"context"
	"errors"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

// Builder enumerates and persists generator bases.
type Builder struct {
	oracle ports.Oracle
	store  ports.ArtifactStore
	group  singleflight.Group
}

// NewBuilder creates a basis builder.
func NewBuilder(oracle ports.Oracle, store ports.ArtifactStore) *Builder {
	return &Builder{oracle: oracle, store: store}
}

// Ensure returns the basis for a grading, building and persisting it when the
// store has no usable copy. Concurrent callers for the same key share one
// computation.
func (b *Builder) Ensure(ctx context.Context, key domain.GradingKey) (domain.Basis, error) {
	v, err, _ := b.group.Do(key.String(), func() (any, error) {
		stored, err := b.store.GetBasis(key)
		if err == nil {
			return stored, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) && !errors.Is(err, domain.ErrStoreCorrupt) {
			return domain.Basis{}, err
		}

		built, err := b.Build(ctx, key)
		if err != nil {
			return domain.Basis{}, err
		}
		if err := b.store.PutBasis(built); err != nil {
			return domain.Basis{}, err
		}
		return built, nil
	})
	if err != nil {
		return domain.Basis{}, err
	}
	return v.(domain.Basis), nil
}

// Build computes the basis of a grading without touching the store. Invalid
// gradings have the empty basis and are never enumerated.
func (b *Builder) Build(ctx context.Context, key domain.GradingKey) (domain.Basis, error) {
	if err := key.Check(); err != nil {
		return domain.Basis{}, err
	}
	if !key.Valid() {
		return domain.NewBasis(key, nil)
	}

	graphs, err := b.oracle.Enumerate(ctx, key)
	if err != nil {
		return domain.Basis{}, zerr.With(err, "key", key.String())
	}

	gens := make([]domain.Generator, 0, len(graphs))
	for _, g := range graphs {
		dropped, err := Annihilated(ctx, b.oracle, key, g)
		if err != nil {
			return domain.Basis{}, err
		}
		if dropped {
			continue
		}
		gens = append(gens, domain.Generator{Canonical: g, G6: g.Graph6()})
	}
	return domain.NewBasis(key, gens)
}

// Annihilated reports whether the graph carries an automorphism acting with
// sign -1 under the key's parity conventions. Such a graph equals minus
// itself and is zero in the complex.
func Annihilated(ctx context.Context, oracle ports.Oracle, key domain.GradingKey, g domain.Graph) (bool, error) {
	autos, err := oracle.Automorphisms(ctx, g, key.Partition())
	if err != nil {
		return false, zerr.With(zerr.With(err, "key", key.String()), "graph", g.String())
	}
	for _, p := range autos {
		sign := domain.EdgePermSign(g, p, key.EdgeParity) *
			domain.HairPermSign(p, key.Vertices, key.Hairs, key.HairParity)
		if sign == -1 {
			return true, nil
		}
	}
	return false, nil
}
