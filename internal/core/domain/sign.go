package domain

import "go.trai.ch/zerr"

// Parity selects the orientation convention of a label class. For edges,
// even means an orientation is an ordering of the vertices together with a
// direction on every edge; odd means an orientation is an ordering of the
// edges. Hair parity is the analogous choice on hair labels.
type Parity string

const (
	// ParityEven is the even orientation convention.
	ParityEven Parity = "even"

	// ParityOdd is the odd orientation convention.
	ParityOdd Parity = "odd"
)

// ParseParity parses a parity convention name.
func ParseParity(s string) (Parity, error) {
	switch Parity(s) {
	case ParityEven, ParityOdd:
		return Parity(s), nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownParity, "parsing parity"), "parity", s)
	}
}

// EdgePermSign returns the sign with which the vertex permutation p acts on
// the orientation of g under the given edge parity.
//
// Even edges: the sign of p as a vertex permutation times -1 for every edge
// whose preferred direction (small to large endpoint) is reversed by p.
//
// Odd edges: the sign of the permutation p induces on the lexicographically
// ordered edge slots.
func EdgePermSign(g Graph, p []int, parity Parity) int {
	switch parity {
	case ParityEven:
		sign := PermutationSign(p)
		for _, e := range g.edges {
			if p[e.U] > p[e.V] {
				sign = -sign
			}
		}
		return sign
	default:
		relabeled := g.Relabel(p)
		induced := make([]int, len(g.edges))
		for j, e := range g.edges {
			k, _ := relabeled.EdgeIndex(p[e.U], p[e.V])
			induced[j] = k
		}
		return PermutationSign(induced)
	}
}

// HairPermSign returns the sign with which p acts on the hair labels
// internal..internal+hairs-1 under the given hair parity. p must map the
// hair block to itself, which holds for any class-respecting permutation.
// Even hairs carry no sign.
func HairPermSign(p []int, internal, hairs int, parity Parity) int {
	if parity == ParityEven || hairs == 0 {
		return 1
	}
	induced := make([]int, hairs)
	for i := 0; i < hairs; i++ {
		induced[i] = p[internal+i] - internal
	}
	return PermutationSign(induced)
}

// DeletionSign returns the sign contributed by removing the edge at
// orientation slot i, which is the parity of its lexicographic position.
func DeletionSign(i int) int {
	if i%2 == 0 {
		return 1
	}
	return -1
}
