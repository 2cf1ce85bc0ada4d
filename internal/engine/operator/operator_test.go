package operator_test

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skeinlabs/gcx/internal/adapters/oracle"
	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports/mocks"
	"github.com/skeinlabs/gcx/internal/engine/basis"
	"github.com/skeinlabs/gcx/internal/engine/operator"
)

// fakeBases serves fixed bases keyed by grading string.
type fakeBases map[string]domain.Basis

func (f fakeBases) Ensure(_ context.Context, key domain.GradingKey) (domain.Basis, error) {
	return f[key.String()], nil
}

// buildingBases computes bases on the fly without a store.
type buildingBases struct{ b *basis.Builder }

func (s buildingBases) Ensure(ctx context.Context, key domain.GradingKey) (domain.Basis, error) {
	return s.b.Build(ctx, key)
}

func ordinaryKey(v, l int, parity domain.Parity) domain.GradingKey {
	return domain.GradingKey{Family: domain.FamilyOrdinary, Vertices: v, Loops: l, EdgeParity: parity}
}

func basisOf(key domain.GradingKey, graphs ...domain.Graph) domain.Basis {
	gens := make([]domain.Generator, len(graphs))
	for i, g := range graphs {
		gens[i] = domain.Generator{Canonical: g, G6: g.Graph6()}
	}
	slices.SortFunc(gens, func(a, b domain.Generator) int { return strings.Compare(a.G6, b.G6) })
	return domain.Basis{Key: key, Generators: gens}
}

// identityCanonicalizer leaves every graph as its own canonical form.
func identityCanonicalizer(o *mocks.MockOracle) {
	o.EXPECT().
		Canonicalize(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, g domain.Graph, _ [][]int) (domain.Graph, []int, error) {
			return g, domain.IdentityPermutation(g.Order()), nil
		}).
		AnyTimes()
}

func star() domain.Graph {
	return domain.MustGraph(4, []domain.Edge{{U: 0, V: 1}, {U: 0, V: 2}, {U: 0, V: 3}})
}

func path() domain.Graph {
	return domain.MustGraph(3, []domain.Edge{{U: 0, V: 1}, {U: 0, V: 2}})
}

// Contracting any edge of the star gives the same labeled path; the three
// terms accumulate to a single coefficient of +1 under either parity.
func TestBuilder_Build_ContractAccumulates(t *testing.T) {
	t.Parallel()

	for _, parity := range []domain.Parity{domain.ParityEven, domain.ParityOdd} {
		t.Run(string(parity), func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			src := ordinaryKey(4, 0, parity)
			op := domain.OperatorKey{Kind: domain.KindContract, Source: src}

			oracleMock := mocks.NewMockOracle(ctrl)
			identityCanonicalizer(oracleMock)

			bases := fakeBases{
				src.String():         basisOf(src, star()),
				op.Target().String(): basisOf(op.Target(), path()),
			}

			b := operator.NewBuilder(oracleMock, mocks.NewMockArtifactStore(ctrl), bases)
			m, err := b.Build(t.Context(), op)
			require.NoError(t, err)

			assert.Equal(t, 1, m.Rows)
			assert.Equal(t, 1, m.Cols)
			require.Len(t, m.Entries, 1)
			assert.Equal(t, domain.MatrixEntry{Row: 0, Col: 0, Val: 1}, m.Entries[0])
		})
	}
}

// The four contractions of the square cancel pairwise under even edges, so
// the accumulated coefficient is elided and the matrix is zero.
func TestBuilder_Build_ContractCancellation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	square := domain.MustGraph(4, []domain.Edge{
		{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 0, V: 3},
	})
	triangle := domain.MustGraph(3, []domain.Edge{{U: 0, V: 1}, {U: 0, V: 2}, {U: 1, V: 2}})

	src := ordinaryKey(4, 1, domain.ParityEven)
	op := domain.OperatorKey{Kind: domain.KindContract, Source: src}

	oracleMock := mocks.NewMockOracle(ctrl)
	identityCanonicalizer(oracleMock)

	bases := fakeBases{
		src.String():         basisOf(src, square),
		op.Target().String(): basisOf(op.Target(), triangle),
	}

	b := operator.NewBuilder(oracleMock, mocks.NewMockArtifactStore(ctrl), bases)
	m, err := b.Build(t.Context(), op)
	require.NoError(t, err)

	assert.Equal(t, 1, m.Rows)
	assert.Equal(t, 1, m.Cols)
	assert.True(t, m.IsZero())
}

// Under odd edges the same four contractions reinforce instead: the square
// maps to -2 times the triangle.
func TestBuilder_Build_ContractOddEdgesSquare(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	square := domain.MustGraph(4, []domain.Edge{
		{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 0, V: 3},
	})
	triangle := domain.MustGraph(3, []domain.Edge{{U: 0, V: 1}, {U: 0, V: 2}, {U: 1, V: 2}})

	src := ordinaryKey(4, 1, domain.ParityOdd)
	op := domain.OperatorKey{Kind: domain.KindContract, Source: src}

	oracleMock := mocks.NewMockOracle(ctrl)
	identityCanonicalizer(oracleMock)

	bases := fakeBases{
		src.String():         basisOf(src, square),
		op.Target().String(): basisOf(op.Target(), triangle),
	}

	b := operator.NewBuilder(oracleMock, mocks.NewMockArtifactStore(ctrl), bases)
	m, err := b.Build(t.Context(), op)
	require.NoError(t, err)

	require.Len(t, m.Entries, 1)
	assert.Equal(t, domain.MatrixEntry{Row: 0, Col: 0, Val: -2}, m.Entries[0])
}

// Every contraction of the complete graph creates a parallel edge, so its
// differential is zero into the (empty) target.
func TestBuilder_Build_ContractDegenerate(t *testing.T) {
	t.Parallel()

	src := ordinaryKey(4, 3, domain.ParityOdd)
	op := domain.OperatorKey{Kind: domain.KindContract, Source: src}

	real := oracle.NewBruteForce()
	bases := buildingBases{b: basis.NewBuilder(real, nil)}

	b := operator.NewBuilder(real, nil, bases)
	m, err := b.Build(t.Context(), op)
	require.NoError(t, err)

	assert.Equal(t, 0, m.Rows)
	assert.Equal(t, 1, m.Cols)
	assert.True(t, m.IsZero())
}

// Deleting any edge of the complete graph drops a vertex below degree three,
// so every term leaves the complex.
func TestBuilder_Build_DeleteLeavesComplex(t *testing.T) {
	t.Parallel()

	src := ordinaryKey(4, 3, domain.ParityOdd)
	op := domain.OperatorKey{Kind: domain.KindDelete, Source: src}

	real := oracle.NewBruteForce()
	bases := buildingBases{b: basis.NewBuilder(real, nil)}

	b := operator.NewBuilder(real, nil, bases)
	m, err := b.Build(t.Context(), op)
	require.NoError(t, err)

	assert.Equal(t, 0, m.Rows)
	assert.Equal(t, 1, m.Cols)
	assert.True(t, m.IsZero())
}

// K5 stays above minimum degree under any single deletion, so all ten terms
// survive with the alternating deletion sign.
func TestBuilder_Build_DeleteAlternatesSigns(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	var edges []domain.Edge
	for u := 0; u < 5; u++ {
		for v := u + 1; v < 5; v++ {
			edges = append(edges, domain.Edge{U: u, V: v})
		}
	}
	k5 := domain.MustGraph(5, edges)

	src := ordinaryKey(5, 6, domain.ParityEven)
	op := domain.OperatorKey{Kind: domain.KindDelete, Source: src}

	images := make([]domain.Graph, k5.Size())
	for i := range k5.Size() {
		images[i] = k5.DeleteEdge(i)
	}

	oracleMock := mocks.NewMockOracle(ctrl)
	identityCanonicalizer(oracleMock)

	bases := fakeBases{
		src.String():         basisOf(src, k5),
		op.Target().String(): basisOf(op.Target(), images...),
	}

	b := operator.NewBuilder(oracleMock, mocks.NewMockArtifactStore(ctrl), bases)
	m, err := b.Build(t.Context(), op)
	require.NoError(t, err)

	require.Equal(t, 10, m.Rows)
	require.Len(t, m.Entries, 10)
	tgt := bases[op.Target().String()]
	for i, img := range images {
		row, ok := tgt.Index(img.Graph6())
		require.True(t, ok)
		want := int64(domain.DeletionSign(i))
		idx := slices.IndexFunc(m.Entries, func(e domain.MatrixEntry) bool { return e.Row == row })
		require.GreaterOrEqual(t, idx, 0)
		assert.Equal(t, want, m.Entries[idx].Val, "image of deleting slot %d", i)
	}
}

// Hair edges are never contracted: only the two internal edges of this hairy
// generator produce terms.
func TestBuilder_Build_ContractSkipsHairEdges(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := domain.GradingKey{
		Family:     domain.FamilyHairy,
		Vertices:   3,
		Loops:      0,
		Hairs:      3,
		EdgeParity: domain.ParityOdd,
		HairParity: domain.ParityEven,
	}
	// Internal path 0-1-2 with one hair on each internal vertex.
	gen := domain.MustGraph(6, []domain.Edge{
		{U: 0, V: 1}, {U: 1, V: 2},
		{U: 0, V: 3}, {U: 1, V: 4}, {U: 2, V: 5},
	})
	op := domain.OperatorKey{Kind: domain.KindContract, Source: src}

	oracleMock := mocks.NewMockOracle(ctrl)
	canonCalls := 0
	oracleMock.EXPECT().
		Canonicalize(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, g domain.Graph, _ [][]int) (domain.Graph, []int, error) {
			canonCalls++
			return g, domain.IdentityPermutation(g.Order()), nil
		}).
		Times(2)

	tgtImages := []domain.Graph{
		domain.MustGraph(5, []domain.Edge{{U: 0, V: 1}, {U: 0, V: 2}, {U: 0, V: 3}, {U: 1, V: 4}}),
		domain.MustGraph(5, []domain.Edge{{U: 0, V: 1}, {U: 0, V: 3}, {U: 0, V: 4}, {U: 1, V: 2}}),
	}
	bases := fakeBases{
		src.String():         basisOf(src, gen),
		op.Target().String(): basisOf(op.Target(), tgtImages...),
	}

	b := operator.NewBuilder(oracleMock, mocks.NewMockArtifactStore(ctrl), bases)
	m, err := b.Build(t.Context(), op)
	require.NoError(t, err)

	assert.Equal(t, 2, canonCalls)
	assert.Len(t, m.Entries, 2)
}

// An image class missing from the target basis is fine when it was
// annihilated there, and an inconsistency otherwise.
func TestBuilder_Build_MissingImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		autos       [][]int
		wantErr     error
		wantEntries int
	}{
		{
			name: "annihilated class contributes zero",
			// Swapping the triangle's vertices 0 and 1 transposes two edge
			// slots, an odd action.
			autos: [][]int{domain.IdentityPermutation(3), {1, 0, 2}},
		},
		{
			name:    "missing class is an inconsistency",
			autos:   [][]int{domain.IdentityPermutation(3)},
			wantErr: domain.ErrGeneratorNotInBasis,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			square := domain.MustGraph(4, []domain.Edge{
				{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 0, V: 3},
			})
			src := ordinaryKey(4, 1, domain.ParityOdd)
			op := domain.OperatorKey{Kind: domain.KindContract, Source: src}

			oracleMock := mocks.NewMockOracle(ctrl)
			identityCanonicalizer(oracleMock)
			oracleMock.EXPECT().
				Automorphisms(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(tt.autos, nil).
				AnyTimes()

			bases := fakeBases{
				src.String():         basisOf(src, square),
				op.Target().String(): basisOf(op.Target()),
			}

			b := operator.NewBuilder(oracleMock, mocks.NewMockArtifactStore(ctrl), bases)
			m, err := b.Build(t.Context(), op)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, m.IsZero())
		})
	}
}

func TestBuilder_Ensure_StoreHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	op := domain.OperatorKey{Kind: domain.KindContract, Source: ordinaryKey(4, 3, domain.ParityOdd)}
	stored, err := domain.NewSparseMatrix(2, 3, []domain.MatrixEntry{{Row: 1, Col: 2, Val: -1}})
	require.NoError(t, err)

	storeMock := mocks.NewMockArtifactStore(ctrl)
	storeMock.EXPECT().GetMatrix(op).Return(stored, nil)

	b := operator.NewBuilder(mocks.NewMockOracle(ctrl), storeMock, fakeBases{})
	got, err := b.Ensure(t.Context(), op)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestBuilder_Ensure_MissBuildsAndPersists(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := ordinaryKey(4, 0, domain.ParityOdd)
	op := domain.OperatorKey{Kind: domain.KindContract, Source: src}

	oracleMock := mocks.NewMockOracle(ctrl)
	identityCanonicalizer(oracleMock)

	storeMock := mocks.NewMockArtifactStore(ctrl)
	storeMock.EXPECT().GetMatrix(op).Return(domain.SparseMatrix{}, domain.ErrCacheMiss)
	var persisted domain.SparseMatrix
	storeMock.EXPECT().PutMatrix(op, gomock.Any()).DoAndReturn(func(_ domain.OperatorKey, m domain.SparseMatrix) error {
		persisted = m
		return nil
	})

	bases := fakeBases{
		src.String():         basisOf(src, star()),
		op.Target().String(): basisOf(op.Target(), path()),
	}

	b := operator.NewBuilder(oracleMock, storeMock, bases)
	got, err := b.Ensure(t.Context(), op)
	require.NoError(t, err)
	assert.Equal(t, got, persisted)
	require.Len(t, got.Entries, 1)
}
