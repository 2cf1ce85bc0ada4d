package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Family identifies a graph complex family.
type Family string

const (
	// FamilyOrdinary is the complex of connected simple graphs with minimum
	// degree three.
	FamilyOrdinary Family = "ordinary"

	// FamilyHairy is the ordinary complex decorated with unlabeled degree-one
	// hair vertices in their own color class.
	FamilyHairy Family = "hairy"
)

// ParseFamily parses a complex family name.
func ParseFamily(s string) (Family, error) {
	switch Family(s) {
	case FamilyOrdinary, FamilyHairy:
		return Family(s), nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownFamily, "parsing family"), "family", s)
	}
}

// GradingKey addresses one vector space of a graph complex: the family, the
// grading (vertices, loops and hairs) and the orientation conventions.
type GradingKey struct {
	Family     Family
	Vertices   int
	Loops      int
	Hairs      int
	EdgeParity Parity
	HairParity Parity
}

// InternalEdges returns the number of edges between internal vertices,
// determined by connectivity: loops + vertices - 1.
func (k GradingKey) InternalEdges() int {
	return k.Loops + k.Vertices - 1
}

// TotalVertices returns internal vertices plus hair vertices.
func (k GradingKey) TotalVertices() int {
	return k.Vertices + k.Hairs
}

// TotalEdges returns internal edges plus hair edges.
func (k GradingKey) TotalEdges() int {
	return k.InternalEdges() + k.Hairs
}

// Check verifies the key is well formed for its family. Well formed is
// weaker than Valid: a well-formed key may still index an empty space.
func (k GradingKey) Check() error {
	if _, err := ParseFamily(string(k.Family)); err != nil {
		return err
	}
	if _, err := ParseParity(string(k.EdgeParity)); err != nil {
		return err
	}
	if k.Vertices < 0 || k.Loops < 0 || k.Hairs < 0 {
		return zerr.With(zerr.Wrap(ErrInvalidGradingKey, "negative grading"), "key", k.String())
	}
	switch k.Family {
	case FamilyOrdinary:
		if k.Hairs != 0 {
			return zerr.With(
				zerr.Wrap(ErrInvalidGradingKey, "ordinary family has no hairs"),
				"key", k.String())
		}
	case FamilyHairy:
		if _, err := ParseParity(string(k.HairParity)); err != nil {
			return err
		}
	}
	return nil
}

// Valid reports whether the grading can contain any generator at all.
// Invalid keys have dimension zero by fiat and are never enumerated.
func (k GradingKey) Valid() bool {
	e := k.InternalEdges()
	if k.Vertices <= 0 || k.Loops < 0 || e < 0 {
		return false
	}
	if e > k.Vertices*(k.Vertices-1)/2 {
		return false
	}
	switch k.Family {
	case FamilyHairy:
		// Every internal vertex needs degree three counting hair attachments.
		return k.Hairs >= 1 && 3*k.Vertices <= 2*e+k.Hairs
	default:
		return 3*k.Vertices <= 2*e
	}
}

// Partition returns the vertex color classes canonical labelling must
// respect: internal vertices first, then the hair vertices as one
// interchangeable class.
func (k GradingKey) Partition() [][]int {
	internal := make([]int, k.Vertices)
	for i := range internal {
		internal[i] = i
	}
	if k.Hairs == 0 {
		return [][]int{internal}
	}
	hairs := make([]int, k.Hairs)
	for i := range hairs {
		hairs[i] = k.Vertices + i
	}
	return [][]int{internal, hairs}
}

// SubType names the family-plus-convention slice of the store hierarchy.
func (k GradingKey) SubType() string {
	if k.Family == FamilyHairy {
		return fmt.Sprintf("%s_%s_edges_%s_hairs", k.Family, k.EdgeParity, k.HairParity)
	}
	return fmt.Sprintf("%s_%s_edges", k.Family, k.EdgeParity)
}

// String renders the key for logs, errors and store paths.
func (k GradingKey) String() string {
	if k.Family == FamilyHairy {
		return fmt.Sprintf("%s/v%d_l%d_h%d", k.SubType(), k.Vertices, k.Loops, k.Hairs)
	}
	return fmt.Sprintf("%s/v%d_l%d", k.SubType(), k.Vertices, k.Loops)
}

// ParseGradingKey parses the String rendering of a key back into a key.
func ParseGradingKey(s string) (GradingKey, error) {
	sub, grade, ok := strings.Cut(s, "/")
	if !ok {
		return GradingKey{}, zerr.With(zerr.Wrap(ErrInvalidGradingKey, "missing subtype"), "key", s)
	}

	var key GradingKey
	fields := strings.Split(sub, "_")
	switch {
	case len(fields) == 3 && fields[0] == string(FamilyOrdinary) && fields[2] == "edges":
		key.Family = FamilyOrdinary
	case len(fields) == 5 && fields[0] == string(FamilyHairy) && fields[2] == "edges" && fields[4] == "hairs":
		key.Family = FamilyHairy
		hairParity, err := ParseParity(fields[3])
		if err != nil {
			return GradingKey{}, err
		}
		key.HairParity = hairParity
	default:
		return GradingKey{}, zerr.With(zerr.Wrap(ErrInvalidGradingKey, "unknown subtype"), "key", s)
	}

	edgeParity, err := ParseParity(fields[1])
	if err != nil {
		return GradingKey{}, err
	}
	key.EdgeParity = edgeParity

	if key.Family == FamilyHairy {
		if _, err := fmt.Sscanf(grade, "v%d_l%d_h%d", &key.Vertices, &key.Loops, &key.Hairs); err != nil {
			return GradingKey{}, zerr.With(zerr.Wrap(ErrInvalidGradingKey, "bad grading segment"), "key", s)
		}
	} else if _, err := fmt.Sscanf(grade, "v%d_l%d", &key.Vertices, &key.Loops); err != nil {
		return GradingKey{}, zerr.With(zerr.Wrap(ErrInvalidGradingKey, "bad grading segment"), "key", s)
	}

	return key, key.Check()
}

// Hash returns a stable fingerprint of the key.
func (k GradingKey) Hash() uint64 {
	return xxhash.Sum64String(k.String())
}

// WorkEstimate approximates how expensive the grading is to enumerate, used
// to order ready work so the big cells start first. It is the number of
// labeled graphs with the key's edge count, log-scaled.
func (k GradingKey) WorkEstimate() float64 {
	if !k.Valid() {
		return 0
	}
	slots := k.TotalVertices() * (k.TotalVertices() - 1) / 2
	edges := k.TotalEdges()
	// log2 of binomial(slots, edges).
	var est float64
	for i := 0; i < edges; i++ {
		est += math.Log2(float64(slots-i)) - math.Log2(float64(i+1))
	}
	return est
}

// OperatorKind identifies a differential.
type OperatorKind string

const (
	// KindContract is the contract-edge differential.
	KindContract OperatorKind = "contract"

	// KindDelete is the delete-edge differential.
	KindDelete OperatorKind = "delete"
)

// ParseOperatorKind parses a differential name.
func ParseOperatorKind(s string) (OperatorKind, error) {
	switch OperatorKind(s) {
	case KindContract, KindDelete:
		return OperatorKind(s), nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownOperatorKind, "parsing differential"), "kind", s)
	}
}

// SupportedOperators returns the differentials defined on a family.
func SupportedOperators(f Family) []OperatorKind {
	switch f {
	case FamilyHairy:
		return []OperatorKind{KindContract}
	default:
		return []OperatorKind{KindContract, KindDelete}
	}
}

// OperatorKey addresses one differential matrix: the kind and the grading of
// its source space.
type OperatorKey struct {
	Kind   OperatorKind
	Source GradingKey
}

// Target returns the grading of the operator's target space. Contracting an
// edge removes a vertex and keeps the loop count; deleting an edge keeps the
// vertices and removes a loop.
func (o OperatorKey) Target() GradingKey {
	t := o.Source
	switch o.Kind {
	case KindContract:
		t.Vertices--
	case KindDelete:
		t.Loops--
	}
	return t
}

// String renders the operator key for logs, errors and store paths.
func (o OperatorKey) String() string {
	return fmt.Sprintf("%s/%s", o.Source.String(), o.Kind)
}
