// Package solver implements the rank backends: exact in-process elimination
// for small matrices and external solver processes for everything else.
package solver

import (
	"context"
	"math/big"
	"math/bits"

	"go.trai.ch/zerr"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

var _ ports.RankSolver = (*InProcess)(nil)

// InProcess computes ranks by Gaussian elimination: exact rational
// arithmetic over the rationals, field arithmetic over a prime modulus.
type InProcess struct {
	dom domain.CoefficientDomain
}

// NewInProcess creates an in-process backend over the given domain.
func NewInProcess(dom domain.CoefficientDomain) *InProcess {
	return &InProcess{dom: dom}
}

// Name identifies the backend in logs and the run report.
func (s *InProcess) Name() string { return "inprocess" }

// Domain returns the coefficient domain the backend computes over.
func (s *InProcess) Domain() domain.CoefficientDomain { return s.dom }

// Rank computes the rank of the requested matrix.
func (s *InProcess) Rank(ctx context.Context, req ports.RankRequest) (domain.Rank, error) {
	m := req.Matrix

	if m.IsZero() {
		return domain.Rank{Value: 0, Domain: s.dom}, nil
	}

	var value int
	var err error
	if s.dom.IsRational() {
		value, err = rationalRank(ctx, m)
	} else {
		value, err = modularRank(ctx, m, s.dom.Modulus)
	}
	if err != nil {
		return domain.Rank{}, err
	}

	return domain.Rank{Value: value, Domain: s.dom}, nil
}

// rationalRank runs dense elimination over big.Rat. The in-process limit
// keeps the dense representation small.
func rationalRank(ctx context.Context, m domain.SparseMatrix) (int, error) {
	a := make([][]*big.Rat, m.Rows)
	for r := range a {
		a[r] = make([]*big.Rat, m.Cols)
		for c := range a[r] {
			a[r][c] = new(big.Rat)
		}
	}
	for _, e := range m.Entries {
		a[e.Row][e.Col].SetInt64(e.Val)
	}

	rank := 0
	factor := new(big.Rat)
	scaled := new(big.Rat)
	for col := 0; col < m.Cols && rank < m.Rows; col++ {
		if err := ctx.Err(); err != nil {
			return 0, zerr.Wrap(err, domain.ErrRankSolver.Error())
		}

		pivot := -1
		for r := rank; r < m.Rows; r++ {
			if a[r][col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			continue
		}
		a[rank], a[pivot] = a[pivot], a[rank]

		for r := rank + 1; r < m.Rows; r++ {
			if a[r][col].Sign() == 0 {
				continue
			}
			factor.Quo(a[r][col], a[rank][col])
			for c := col; c < m.Cols; c++ {
				if a[rank][c].Sign() == 0 {
					continue
				}
				scaled.Mul(factor, a[rank][c])
				a[r][c].Sub(a[r][c], scaled)
			}
		}
		rank++
	}

	return rank, nil
}

// modularRank runs dense elimination over the prime field of the modulus.
func modularRank(ctx context.Context, m domain.SparseMatrix, modulus uint64) (int, error) {
	if modulus < 2 {
		return 0, zerr.With(zerr.Wrap(domain.ErrRankSolver, "modulus too small"), "modulus", modulus)
	}

	a := make([][]uint64, m.Rows)
	for r := range a {
		a[r] = make([]uint64, m.Cols)
	}
	for _, e := range m.Entries {
		a[e.Row][e.Col] = reduce(e.Val, modulus)
	}

	rank := 0
	for col := 0; col < m.Cols && rank < m.Rows; col++ {
		if err := ctx.Err(); err != nil {
			return 0, zerr.Wrap(err, domain.ErrRankSolver.Error())
		}

		pivot := -1
		for r := rank; r < m.Rows; r++ {
			if a[r][col] != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			continue
		}
		a[rank], a[pivot] = a[pivot], a[rank]

		inv := powMod(a[rank][col], modulus-2, modulus)
		for r := rank + 1; r < m.Rows; r++ {
			if a[r][col] == 0 {
				continue
			}
			factor := mulMod(a[r][col], inv, modulus)
			for c := col; c < m.Cols; c++ {
				if a[rank][c] == 0 {
					continue
				}
				sub := mulMod(factor, a[rank][c], modulus)
				a[r][c] = (a[r][c] + modulus - sub) % modulus
			}
		}
		rank++
	}

	return rank, nil
}

// reduce maps a signed entry into [0, modulus).
func reduce(v int64, modulus uint64) uint64 {
	r := v % int64(modulus) //nolint:gosec // modulus is checked >= 2 and fits int64 entries
	if r < 0 {
		r += int64(modulus)
	}
	return uint64(r)
}

// mulMod computes a*b mod m without overflow via 128-bit intermediate.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// powMod computes a^e mod m by square and multiply.
func powMod(a, e, m uint64) uint64 {
	result := uint64(1 % m)
	base := a % m
	for e > 0 {
		if e&1 == 1 {
			result = mulMod(result, base, m)
		}
		base = mulMod(base, base, m)
		e >>= 1
	}
	return result
}
