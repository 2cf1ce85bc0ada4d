// Package oracle implements the graph-isomorphism capability by exhaustive
// search. It is exact and deterministic but only feasible for the small
// parameter ranges the complexes are computed in; past its guards it fails
// with domain.ErrEnumeration instead of guessing.
package oracle

import (
	"context"
	"slices"
	"strings"

	"go.trai.ch/zerr"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

var _ ports.Oracle = (*BruteForce)(nil)

const (
	// MaxSearchSpace bounds the number of labelings tried per graph.
	MaxSearchSpace = 2_000_000

	// MaxCombinations bounds the number of edge sets tried per grading.
	MaxCombinations = 20_000_000
)

// BruteForce is the built-in reference oracle.
type BruteForce struct{}

// NewBruteForce creates the reference oracle.
func NewBruteForce() *BruteForce {
	return &BruteForce{}
}

// Enumerate returns one canonical representative per isomorphism class of
// the grading key's graphs, ordered by graph6 string.
func (o *BruteForce) Enumerate(ctx context.Context, key domain.GradingKey) ([]domain.Graph, error) {
	if err := key.Check(); err != nil {
		return nil, err
	}
	if !key.Valid() {
		return nil, nil
	}

	n := key.TotalVertices()
	m := key.TotalEdges()
	slots := allowedSlots(key)
	if c, ok := binomial(len(slots), m); !ok || c > MaxCombinations {
		return nil, zerr.With(zerr.With(
			zerr.Wrap(domain.ErrEnumeration, "edge combination space too large"),
			"key", key.String()),
			"edges", m)
	}

	partition := key.Partition()
	seen := make(map[string]domain.Graph)
	err := forEachCombination(ctx, len(slots), m, func(pick []int) error {
		edges := make([]domain.Edge, m)
		for i, s := range pick {
			edges[i] = slots[s]
		}
		g, err := domain.NewGraph(n, edges)
		if err != nil {
			return err
		}
		if !admissible(g, key) {
			return nil
		}
		canon, _, err := o.Canonicalize(ctx, g, partition)
		if err != nil {
			return err
		}
		g6 := canon.Graph6()
		if _, ok := seen[g6]; !ok {
			seen[g6] = canon
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Graph, 0, len(seen))
	for _, g := range seen {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b domain.Graph) int {
		return strings.Compare(a.Graph6(), b.Graph6())
	})
	return out, nil
}

// Canonicalize picks the class-respecting labeling with the smallest graph6
// string.
func (o *BruteForce) Canonicalize(ctx context.Context, g domain.Graph, partition [][]int) (domain.Graph, []int, error) {
	var (
		best     domain.Graph
		bestG6   string
		bestPerm []int
	)
	err := forEachClassPerm(ctx, g.Order(), partition, func(p []int) {
		candidate := g.Relabel(p)
		g6 := candidate.Graph6()
		if bestPerm == nil || g6 < bestG6 {
			best = candidate
			bestG6 = g6
			bestPerm = slices.Clone(p)
		}
	})
	if err != nil {
		return domain.Graph{}, nil, err
	}
	return best, bestPerm, nil
}

// Automorphisms returns every class-respecting permutation fixing g.
func (o *BruteForce) Automorphisms(ctx context.Context, g domain.Graph, partition [][]int) ([][]int, error) {
	g6 := g.Graph6()
	var autos [][]int
	err := forEachClassPerm(ctx, g.Order(), partition, func(p []int) {
		if g.Relabel(p).Graph6() == g6 {
			autos = append(autos, slices.Clone(p))
		}
	})
	if err != nil {
		return nil, err
	}
	return autos, nil
}

// allowedSlots lists the edge slots a graph of the key may use: any pair of
// internal vertices, plus internal-to-hair pairs. Hairs never connect to
// each other.
func allowedSlots(key domain.GradingKey) []domain.Edge {
	var slots []domain.Edge
	for i := 0; i < key.Vertices; i++ {
		for j := i + 1; j < key.Vertices; j++ {
			slots = append(slots, domain.Edge{U: i, V: j})
		}
		for h := 0; h < key.Hairs; h++ {
			slots = append(slots, domain.Edge{U: i, V: key.Vertices + h})
		}
	}
	return slots
}

// admissible checks the family's structural constraints: connectivity, hair
// vertices of degree exactly one, and internal vertices of degree at least
// three counting hair attachments.
func admissible(g domain.Graph, key domain.GradingKey) bool {
	if !g.IsConnected() {
		return false
	}
	deg := g.Degrees()
	for v := 0; v < key.Vertices; v++ {
		if deg[v] < 3 {
			return false
		}
	}
	for h := key.Vertices; h < key.TotalVertices(); h++ {
		if deg[h] != 1 {
			return false
		}
	}
	return true
}

// forEachCombination enumerates all size-k index subsets of 0..n-1.
func forEachCombination(ctx context.Context, n, k int, fn func(pick []int) error) error {
	if k > n {
		return nil
	}
	pick := make([]int, k)
	for i := range pick {
		pick[i] = i
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(pick); err != nil {
			return err
		}
		// Advance to the next combination in lexicographic order.
		i := k - 1
		for i >= 0 && pick[i] == n-k+i {
			i--
		}
		if i < 0 {
			return nil
		}
		pick[i]++
		for j := i + 1; j < k; j++ {
			pick[j] = pick[j-1] + 1
		}
	}
}

// forEachClassPerm enumerates every permutation of 0..n-1 mapping each
// partition class onto itself.
func forEachClassPerm(ctx context.Context, n int, partition [][]int, fn func(p []int)) error {
	space := 1
	for _, class := range partition {
		f, ok := factorial(len(class))
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrEnumeration, "labeling space too large"), "class_size", len(class))
		}
		space *= f
		if space > MaxSearchSpace {
			return zerr.With(zerr.Wrap(domain.ErrEnumeration, "labeling space too large"), "space", space)
		}
	}

	perClass := make([][][]int, len(partition))
	for i, class := range partition {
		perClass[i] = permutationsOf(class)
	}

	p := make([]int, n)
	var rec func(depth int) error
	rec = func(depth int) error {
		if depth == len(partition) {
			fn(p)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		class := partition[depth]
		for _, img := range perClass[depth] {
			for i, v := range class {
				p[v] = img[i]
			}
			if err := rec(depth + 1); err != nil {
				return err
			}
		}
		return nil
	}
	return rec(0)
}

// permutationsOf returns all orderings of the given labels.
func permutationsOf(labels []int) [][]int {
	if len(labels) == 0 {
		return [][]int{{}}
	}
	var out [][]int
	var rec func(prefix []int, rest []int)
	rec = func(prefix []int, rest []int) {
		if len(rest) == 0 {
			out = append(out, slices.Clone(prefix))
			return
		}
		for i := range rest {
			next := slices.Clone(rest)
			next = append(next[:i], next[i+1:]...)
			rec(append(slices.Clone(prefix), rest[i]), next)
		}
	}
	rec(nil, labels)
	return out
}

func factorial(n int) (int, bool) {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
		if f > MaxSearchSpace {
			return f, false
		}
	}
	return f, true
}

func binomial(n, k int) (int, bool) {
	if k < 0 || k > n {
		return 0, true
	}
	if k > n-k {
		k = n - k
	}
	c := 1
	for i := 0; i < k; i++ {
		c = c * (n - i) / (i + 1)
		if c > MaxCombinations {
			return c, false
		}
	}
	return c, true
}
