package domain

import "go.trai.ch/zerr"

// CheckPermutation verifies that p is a bijection of 0..len(p)-1.
func CheckPermutation(p []int) error {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return zerr.With(zerr.Wrap(ErrInvalidPermutation, "not a bijection"), "length", len(p))
		}
		seen[v] = true
	}
	return nil
}

// PermutationSign returns +1 for even permutations and -1 for odd ones,
// computed from the cycle decomposition.
func PermutationSign(p []int) int {
	seen := make([]bool, len(p))
	sign := 1
	for i := range p {
		if seen[i] {
			continue
		}
		length := 0
		for j := i; !seen[j]; j = p[j] {
			seen[j] = true
			length++
		}
		if length%2 == 0 {
			sign = -sign
		}
	}
	return sign
}

// InversePermutation returns q with q[p[i]] = i.
func InversePermutation(p []int) []int {
	q := make([]int, len(p))
	for i, v := range p {
		q[v] = i
	}
	return q
}

// IdentityPermutation returns 0,1,...,n-1.
func IdentityPermutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}
