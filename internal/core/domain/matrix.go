package domain

import (
	"fmt"
	"slices"

	"go.trai.ch/zerr"
)

// MatrixEntry is one nonzero coordinate of a sparse matrix.
type MatrixEntry struct {
	Row, Col int
	Val      int64
}

// SparseMatrix is an integer matrix in coordinate form. Entries are sorted
// row-major, hold no zeros and no duplicates; rows index target generators
// and columns index source generators.
type SparseMatrix struct {
	Rows, Cols int
	Entries    []MatrixEntry
}

// NewSparseMatrix sorts and validates the entries.
func NewSparseMatrix(rows, cols int, entries []MatrixEntry) (SparseMatrix, error) {
	if rows < 0 || cols < 0 {
		return SparseMatrix{}, zerr.With(zerr.With(
			zerr.Wrap(ErrInvalidMatrix, "negative dimensions"),
			"rows", rows), "cols", cols)
	}
	es := make([]MatrixEntry, len(entries))
	copy(es, entries)
	slices.SortFunc(es, compareEntries)
	for i, e := range es {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return SparseMatrix{}, zerr.With(
				zerr.Wrap(ErrInvalidMatrix, "entry out of bounds"),
				"entry", fmt.Sprintf("(%d,%d)", e.Row, e.Col))
		}
		if e.Val == 0 {
			return SparseMatrix{}, zerr.With(
				zerr.Wrap(ErrInvalidMatrix, "explicit zero"),
				"entry", fmt.Sprintf("(%d,%d)", e.Row, e.Col))
		}
		if i > 0 && es[i-1].Row == e.Row && es[i-1].Col == e.Col {
			return SparseMatrix{}, zerr.With(
				zerr.Wrap(ErrInvalidMatrix, "duplicate coordinate"),
				"entry", fmt.Sprintf("(%d,%d)", e.Row, e.Col))
		}
	}
	return SparseMatrix{Rows: rows, Cols: cols, Entries: es}, nil
}

func compareEntries(a, b MatrixEntry) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

// IsZero reports whether the matrix has no entries.
func (m SparseMatrix) IsZero() bool { return len(m.Entries) == 0 }

// MaxRank returns min(rows, cols), the trivial rank bound.
func (m SparseMatrix) MaxRank() int {
	return min(m.Rows, m.Cols)
}

// Mul returns m * other.
func (m SparseMatrix) Mul(other SparseMatrix) (SparseMatrix, error) {
	if m.Cols != other.Rows {
		return SparseMatrix{}, zerr.With(zerr.With(
			zerr.Wrap(ErrShapeMismatch, "matrix product"),
			"left", fmt.Sprintf("%dx%d", m.Rows, m.Cols)),
			"right", fmt.Sprintf("%dx%d", other.Rows, other.Cols))
	}
	byRow := make(map[int][]MatrixEntry)
	for _, e := range other.Entries {
		byRow[e.Row] = append(byRow[e.Row], e)
	}
	acc := make(map[[2]int]int64)
	for _, a := range m.Entries {
		for _, b := range byRow[a.Col] {
			acc[[2]int{a.Row, b.Col}] += a.Val * b.Val
		}
	}
	return fromAccumulator(m.Rows, other.Cols, acc)
}

// Add returns m + other.
func (m SparseMatrix) Add(other SparseMatrix) (SparseMatrix, error) {
	if m.Rows != other.Rows || m.Cols != other.Cols {
		return SparseMatrix{}, zerr.With(zerr.With(
			zerr.Wrap(ErrShapeMismatch, "matrix sum"),
			"left", fmt.Sprintf("%dx%d", m.Rows, m.Cols)),
			"right", fmt.Sprintf("%dx%d", other.Rows, other.Cols))
	}
	acc := make(map[[2]int]int64)
	for _, e := range m.Entries {
		acc[[2]int{e.Row, e.Col}] += e.Val
	}
	for _, e := range other.Entries {
		acc[[2]int{e.Row, e.Col}] += e.Val
	}
	return fromAccumulator(m.Rows, m.Cols, acc)
}

func fromAccumulator(rows, cols int, acc map[[2]int]int64) (SparseMatrix, error) {
	entries := make([]MatrixEntry, 0, len(acc))
	for coord, v := range acc {
		if v == 0 {
			continue
		}
		entries = append(entries, MatrixEntry{Row: coord[0], Col: coord[1], Val: v})
	}
	return NewSparseMatrix(rows, cols, entries)
}

// CoefficientDomain tags a rank with the coefficients it was computed over.
// Modulus zero means the rationals; otherwise the prime field of that order.
type CoefficientDomain struct {
	Modulus uint64
}

// Rational is the rational coefficient domain.
var Rational = CoefficientDomain{}

// IsRational reports whether the domain is the rationals.
func (d CoefficientDomain) IsRational() bool { return d.Modulus == 0 }

// String renders the domain for logs and rank files.
func (d CoefficientDomain) String() string {
	if d.IsRational() {
		return "rational"
	}
	return fmt.Sprintf("mod%d", d.Modulus)
}

// Rank is a computed matrix rank over a coefficient domain. Ranks over
// distinct domains are never interchangeable.
type Rank struct {
	Value  int
	Domain CoefficientDomain
}
