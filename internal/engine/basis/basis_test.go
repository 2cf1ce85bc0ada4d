package basis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skeinlabs/gcx/internal/adapters/oracle"
	"github.com/skeinlabs/gcx/internal/adapters/store"
	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports/mocks"
	"github.com/skeinlabs/gcx/internal/engine/basis"
)

// The v5_l4 grading has 8 internal edges, so these fixtures are 5-vertex
// 8-edge graphs the basis consistency checks accept.
func asymmetricGraph() domain.Graph {
	return domain.MustGraph(5, []domain.Edge{
		{U: 0, V: 1}, {U: 0, V: 2}, {U: 0, V: 3}, {U: 0, V: 4},
		{U: 1, V: 2}, {U: 1, V: 3}, {U: 1, V: 4}, {U: 2, V: 3},
	})
}

// symmetricGraph is invariant under swapping vertices 3 and 4, which are not
// adjacent. Under even edges that swap acts with sign -1.
func symmetricGraph() domain.Graph {
	return domain.MustGraph(5, []domain.Edge{
		{U: 0, V: 1}, {U: 0, V: 2}, {U: 0, V: 3}, {U: 0, V: 4},
		{U: 1, V: 3}, {U: 1, V: 4}, {U: 2, V: 3}, {U: 2, V: 4},
	})
}

func identity(n int) [][]int {
	return [][]int{domain.IdentityPermutation(n)}
}

func TestBuilder_Build_DropsOddAutomorphismGenerators(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	key := domain.GradingKey{
		Family:     domain.FamilyOrdinary,
		Vertices:   5,
		Loops:      4,
		EdgeParity: domain.ParityEven,
	}
	kept, dropped := asymmetricGraph(), symmetricGraph()

	oracleMock := mocks.NewMockOracle(ctrl)
	oracleMock.EXPECT().
		Enumerate(gomock.Any(), key).
		Return([]domain.Graph{kept, dropped}, nil)
	oracleMock.EXPECT().
		Automorphisms(gomock.Any(), kept, key.Partition()).
		Return(identity(5), nil)
	oracleMock.EXPECT().
		Automorphisms(gomock.Any(), dropped, key.Partition()).
		Return([][]int{domain.IdentityPermutation(5), {0, 1, 2, 4, 3}}, nil)

	b := basis.NewBuilder(oracleMock, mocks.NewMockArtifactStore(ctrl))
	got, err := b.Build(t.Context(), key)
	require.NoError(t, err)
	require.Equal(t, 1, got.Dimension())
	assert.Equal(t, kept.Graph6(), got.Generators[0].G6)
}

func TestBuilder_Build_InvalidKeyIsEmpty(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	// Three vertices of degree three need at least five edges; this grading
	// has two, so the space is empty and the oracle is never consulted.
	key := domain.GradingKey{
		Family:     domain.FamilyOrdinary,
		Vertices:   3,
		Loops:      0,
		EdgeParity: domain.ParityOdd,
	}

	b := basis.NewBuilder(mocks.NewMockOracle(ctrl), mocks.NewMockArtifactStore(ctrl))
	got, err := b.Build(t.Context(), key)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Dimension())
	assert.Equal(t, key, got.Key)
}

func TestBuilder_Build_RejectsMalformedKey(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	key := domain.GradingKey{Family: "möbius", Vertices: 4, Loops: 3, EdgeParity: domain.ParityOdd}

	b := basis.NewBuilder(mocks.NewMockOracle(ctrl), mocks.NewMockArtifactStore(ctrl))
	_, err := b.Build(t.Context(), key)
	assert.ErrorIs(t, err, domain.ErrUnknownFamily)
}

func TestBuilder_Ensure_StoreHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	key := domain.GradingKey{
		Family:     domain.FamilyOrdinary,
		Vertices:   5,
		Loops:      4,
		EdgeParity: domain.ParityEven,
	}
	stored, err := domain.NewBasis(key, []domain.Generator{
		{Canonical: asymmetricGraph(), G6: asymmetricGraph().Graph6()},
	})
	require.NoError(t, err)

	storeMock := mocks.NewMockArtifactStore(ctrl)
	storeMock.EXPECT().GetBasis(key).Return(stored, nil)

	b := basis.NewBuilder(mocks.NewMockOracle(ctrl), storeMock)
	got, err := b.Ensure(t.Context(), key)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestBuilder_Ensure_MissBuildsAndPersists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		storeErr error
	}{
		{name: "cache miss", storeErr: domain.ErrCacheMiss},
		{name: "corrupt artifact", storeErr: domain.ErrStoreCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			key := domain.GradingKey{
				Family:     domain.FamilyOrdinary,
				Vertices:   5,
				Loops:      4,
				EdgeParity: domain.ParityEven,
			}
			g := asymmetricGraph()

			oracleMock := mocks.NewMockOracle(ctrl)
			oracleMock.EXPECT().Enumerate(gomock.Any(), key).Return([]domain.Graph{g}, nil)
			oracleMock.EXPECT().Automorphisms(gomock.Any(), g, key.Partition()).Return(identity(5), nil)

			storeMock := mocks.NewMockArtifactStore(ctrl)
			storeMock.EXPECT().GetBasis(key).Return(domain.Basis{}, tt.storeErr)
			var persisted domain.Basis
			storeMock.EXPECT().PutBasis(gomock.Any()).DoAndReturn(func(b domain.Basis) error {
				persisted = b
				return nil
			})

			b := basis.NewBuilder(oracleMock, storeMock)
			got, err := b.Ensure(t.Context(), key)
			require.NoError(t, err)
			assert.Equal(t, got, persisted)
			assert.Equal(t, 1, got.Dimension())
		})
	}
}

func TestBuilder_Ensure_ReadFailurePropagates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	key := domain.GradingKey{
		Family:     domain.FamilyOrdinary,
		Vertices:   5,
		Loops:      4,
		EdgeParity: domain.ParityEven,
	}

	storeMock := mocks.NewMockArtifactStore(ctrl)
	storeMock.EXPECT().GetBasis(key).Return(domain.Basis{}, domain.ErrStoreReadFailed)

	b := basis.NewBuilder(mocks.NewMockOracle(ctrl), storeMock)
	_, err := b.Ensure(t.Context(), key)
	assert.ErrorIs(t, err, domain.ErrStoreReadFailed)
}

// A fresh on-disk store misses on every artifact; the miss must route into
// enumeration rather than surface as an error, and the second Ensure must be
// served from the persisted file.
func TestBuilder_Ensure_FreshStoreBuildsThrough(t *testing.T) {
	t.Parallel()

	s, err := store.NewStore(t.TempDir())
	require.NoError(t, err)
	key := domain.GradingKey{
		Family:     domain.FamilyOrdinary,
		Vertices:   4,
		Loops:      3,
		EdgeParity: domain.ParityEven,
	}

	b := basis.NewBuilder(oracle.NewBruteForce(), s)
	built, err := b.Ensure(t.Context(), key)
	require.NoError(t, err)
	assert.Equal(t, 1, built.Dimension())

	stored, err := s.GetBasis(key)
	require.NoError(t, err)
	assert.Equal(t, built, stored)
}

// The complete graph on four vertices is the smallest ordinary generator:
// every automorphism acts with sign +1 under either edge parity.
func TestBuilder_Build_CompleteGraphSurvives(t *testing.T) {
	t.Parallel()

	for _, parity := range []domain.Parity{domain.ParityEven, domain.ParityOdd} {
		t.Run(string(parity), func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			key := domain.GradingKey{
				Family:     domain.FamilyOrdinary,
				Vertices:   4,
				Loops:      3,
				EdgeParity: parity,
			}

			b := basis.NewBuilder(oracle.NewBruteForce(), mocks.NewMockArtifactStore(ctrl))
			got, err := b.Build(t.Context(), key)
			require.NoError(t, err)
			require.Equal(t, 1, got.Dimension())

			k4 := domain.MustGraph(4, []domain.Edge{
				{U: 0, V: 1}, {U: 0, V: 2}, {U: 0, V: 3},
				{U: 1, V: 2}, {U: 1, V: 3}, {U: 2, V: 3},
			})
			assert.Equal(t, k4.Graph6(), got.Generators[0].G6)
		})
	}
}
