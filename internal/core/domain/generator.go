package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Generator is one basis element of a graded piece: a canonically labeled
// graph together with its graph6 form, which doubles as its identity.
type Generator struct {
	Canonical Graph
	G6        string
}

// Basis is the ordered generator list of one grading. Generators are sorted
// by graph6 string so the column and row indices of operator matrices are
// reproducible across runs.
type Basis struct {
	Key        GradingKey
	Generators []Generator
}

// NewBasis sorts the generators and checks them against the grading key.
func NewBasis(key GradingKey, gens []Generator) (Basis, error) {
	sorted := make([]Generator, len(gens))
	copy(sorted, gens)
	slices.SortFunc(sorted, func(a, b Generator) int {
		return strings.Compare(a.G6, b.G6)
	})
	for i, g := range sorted {
		if g.Canonical.Order() != key.TotalVertices() || g.Canonical.Size() != key.TotalEdges() {
			return Basis{}, zerr.With(zerr.With(
				zerr.Wrap(ErrBasisInconsistency, "generator does not match the grading"),
				"key", key.String()),
				"generator", g.G6)
		}
		if i > 0 && sorted[i-1].G6 == g.G6 {
			return Basis{}, zerr.With(zerr.With(
				zerr.Wrap(ErrBasisInconsistency, "duplicate generator"),
				"key", key.String()),
				"duplicate", g.G6)
		}
	}
	return Basis{Key: key, Generators: sorted}, nil
}

// Dimension returns the number of generators.
func (b Basis) Dimension() int { return len(b.Generators) }

// Index returns the position of the generator with the given graph6 string.
func (b Basis) Index(g6 string) (int, bool) {
	return slices.BinarySearchFunc(b.Generators, g6, func(g Generator, target string) int {
		return strings.Compare(g.G6, target)
	})
}

// G6Strings returns the graph6 strings in basis order.
func (b Basis) G6Strings() []string {
	out := make([]string, len(b.Generators))
	for i, g := range b.Generators {
		out[i] = g.G6
	}
	return out
}
