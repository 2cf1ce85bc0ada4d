package store

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/skeinlabs/gcx/internal/core/domain"
)

// Basis files carry the dimension on the first line and one graph6 string
// per generator, in basis order.

func encodeBasis(basis domain.Basis) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%d\n", basis.Dimension())
	for _, g := range basis.Generators {
		b.WriteString(g.G6)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

func decodeBasis(key domain.GradingKey, data []byte) (domain.Basis, error) {
	lines := splitLines(data)
	if len(lines) == 0 {
		return domain.Basis{}, zerr.Wrap(domain.ErrStoreCorrupt, "empty basis file")
	}
	dim, err := strconv.Atoi(lines[0])
	if err != nil || dim < 0 {
		return domain.Basis{}, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "bad dimension header"), "header", lines[0])
	}
	if len(lines)-1 != dim {
		return domain.Basis{}, zerr.With(zerr.With(
			zerr.Wrap(domain.ErrStoreCorrupt, "generator count disagrees with header"),
			"header", dim),
			"generators", len(lines)-1)
	}
	gens := make([]domain.Generator, 0, dim)
	for _, g6 := range lines[1:] {
		g, err := domain.ParseGraph6(g6)
		if err != nil {
			return domain.Basis{}, zerr.With(
				zerr.Wrap(domain.ErrStoreCorrupt, "bad generator line"),
				"cause", err.Error())
		}
		gens = append(gens, domain.Generator{Canonical: g, G6: g6})
	}
	basis, err := domain.NewBasis(key, gens)
	if err != nil {
		return domain.Basis{}, zerr.With(
			zerr.Wrap(domain.ErrStoreCorrupt, "stored basis is inconsistent"),
			"cause", err.Error())
	}
	return basis, nil
}

// Matrix files use the SMS coordinate format: a "rows cols M" header,
// one-based "row col value" triples and a "0 0 0" trailer.

func encodeMatrix(m domain.SparseMatrix) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%d %d M\n", m.Rows, m.Cols)
	for _, e := range m.Entries {
		fmt.Fprintf(&b, "%d %d %d\n", e.Row+1, e.Col+1, e.Val)
	}
	b.WriteString("0 0 0\n")
	return b.Bytes()
}

func decodeMatrix(data []byte) (domain.SparseMatrix, error) {
	lines := splitLines(data)
	if len(lines) < 2 {
		return domain.SparseMatrix{}, zerr.Wrap(domain.ErrStoreCorrupt, "truncated matrix file")
	}

	var rows, cols int
	var marker string
	if _, err := fmt.Sscanf(lines[0], "%d %d %s", &rows, &cols, &marker); err != nil || marker != "M" {
		return domain.SparseMatrix{}, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "bad matrix header"), "header", lines[0])
	}
	if lines[len(lines)-1] != "0 0 0" {
		return domain.SparseMatrix{}, zerr.Wrap(domain.ErrStoreCorrupt, "missing matrix trailer")
	}

	entries := make([]domain.MatrixEntry, 0, len(lines)-2)
	for _, line := range lines[1 : len(lines)-1] {
		var r, c int
		var v int64
		if _, err := fmt.Sscanf(line, "%d %d %d", &r, &c, &v); err != nil {
			return domain.SparseMatrix{}, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "bad matrix entry"), "entry", line)
		}
		entries = append(entries, domain.MatrixEntry{Row: r - 1, Col: c - 1, Val: v})
	}

	m, err := domain.NewSparseMatrix(rows, cols, entries)
	if err != nil {
		return domain.SparseMatrix{}, zerr.With(
			zerr.Wrap(domain.ErrStoreCorrupt, "stored matrix is inconsistent"),
			"cause", err.Error())
	}
	return m, nil
}

// Rank files carry the value and the coefficient domain it was computed
// over, so a rank can never be silently reused under different coefficients.

func encodeRank(rank domain.Rank) []byte {
	return fmt.Appendf(nil, "%d %s\n", rank.Value, rank.Domain.String())
}

func decodeRank(dom domain.CoefficientDomain, data []byte) (domain.Rank, error) {
	fields := strings.Fields(string(data))
	if len(fields) != 2 {
		return domain.Rank{}, zerr.Wrap(domain.ErrStoreCorrupt, "bad rank file")
	}
	value, err := strconv.Atoi(fields[0])
	if err != nil || value < 0 {
		return domain.Rank{}, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "bad rank value"), "value", fields[0])
	}
	if fields[1] != dom.String() {
		return domain.Rank{}, zerr.With(zerr.With(
			zerr.Wrap(domain.ErrStoreCorrupt, "rank domain disagrees with filename"),
			"tagged", fields[1]),
			"expected", dom.String())
	}
	return domain.Rank{Value: value, Domain: dom}, nil
}

// The cohomology table is one line per entry:
// family parity hair-parity vertices loops hairs kind dimension domain.

func encodeCohomology(entries []domain.CohomologyEntry) []byte {
	var b bytes.Buffer
	for _, e := range entries {
		hp := string(e.Key.HairParity)
		if hp == "" {
			hp = "-"
		}
		fmt.Fprintf(&b, "%s %s %s %d %d %d %s %d %s\n",
			e.Key.Family, e.Key.EdgeParity, hp,
			e.Key.Vertices, e.Key.Loops, e.Key.Hairs,
			e.Kind, e.Dimension, e.Domain.String())
	}
	return b.Bytes()
}

func decodeCohomology(data []byte) ([]domain.CohomologyEntry, error) {
	var entries []domain.CohomologyEntry
	for _, line := range splitLines(data) {
		fields := strings.Fields(line)
		if len(fields) != 9 {
			return nil, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "bad cohomology line"), "line", line)
		}
		family, err := domain.ParseFamily(fields[0])
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "bad cohomology field"), "cause", err.Error())
		}
		edgeParity, err := domain.ParseParity(fields[1])
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "bad cohomology field"), "cause", err.Error())
		}
		var hairParity domain.Parity
		if fields[2] != "-" {
			hairParity, err = domain.ParseParity(fields[2])
			if err != nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "bad cohomology field"), "cause", err.Error())
			}
		}
		kind, err := domain.ParseOperatorKind(fields[6])
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "bad cohomology field"), "cause", err.Error())
		}
		nums := make([]int, 4)
		for i, idx := range []int{3, 4, 5, 7} {
			n, err := strconv.Atoi(fields[idx])
			if err != nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "bad cohomology number"), "line", line)
			}
			nums[i] = n
		}
		dom, err := parseDomain(fields[8])
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.CohomologyEntry{
			Key: domain.GradingKey{
				Family:     family,
				Vertices:   nums[0],
				Loops:      nums[1],
				Hairs:      nums[2],
				EdgeParity: edgeParity,
				HairParity: hairParity,
			},
			Kind:      kind,
			Dimension: nums[3],
			Domain:    dom,
		})
	}
	return entries, nil
}

func parseDomain(s string) (domain.CoefficientDomain, error) {
	if s == "rational" {
		return domain.Rational, nil
	}
	mod, ok := strings.CutPrefix(s, "mod")
	if !ok {
		return domain.CoefficientDomain{}, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "bad coefficient domain"), "domain", s)
	}
	m, err := strconv.ParseUint(mod, 10, 64)
	if err != nil || m == 0 {
		return domain.CoefficientDomain{}, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "bad coefficient domain"), "domain", s)
	}
	return domain.CoefficientDomain{Modulus: m}, nil
}

func splitLines(data []byte) []string {
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
