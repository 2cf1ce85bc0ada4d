package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skeinlabs/gcx/internal/core/domain"
)

func gen(t *testing.T, g domain.Graph) domain.Generator {
	t.Helper()
	return domain.Generator{Canonical: g, G6: g.Graph6()}
}

func TestNewBasis(t *testing.T) {
	t.Parallel()

	// Ordinary grading v3 l1 has two edges on three vertices.
	key := ordinaryKey(3, 0)
	path := domain.MustGraph(3, []domain.Edge{{U: 0, V: 1}, {U: 1, V: 2}})
	fork := domain.MustGraph(3, []domain.Edge{{U: 0, V: 1}, {U: 0, V: 2}})

	b, err := domain.NewBasis(key, []domain.Generator{gen(t, path), gen(t, fork)})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Dimension())

	// Generators come out ordered by graph6 string.
	g6 := b.G6Strings()
	assert.Less(t, g6[0], g6[1])

	i, ok := b.Index(g6[1])
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = b.Index("C~")
	assert.False(t, ok)
}

func TestNewBasis_Inconsistent(t *testing.T) {
	t.Parallel()

	key := ordinaryKey(3, 0)

	// Wrong vertex count for the grading.
	k4 := domain.MustGraph(4, []domain.Edge{{U: 0, V: 1}, {U: 0, V: 2}})
	_, err := domain.NewBasis(key, []domain.Generator{gen(t, k4)})
	assert.ErrorIs(t, err, domain.ErrBasisInconsistency)

	// Wrong edge count for the grading.
	triangle := domain.MustGraph(3, []domain.Edge{{U: 0, V: 1}, {U: 0, V: 2}, {U: 1, V: 2}})
	_, err = domain.NewBasis(key, []domain.Generator{gen(t, triangle)})
	assert.ErrorIs(t, err, domain.ErrBasisInconsistency)

	// Duplicate generators.
	path := domain.MustGraph(3, []domain.Edge{{U: 0, V: 1}, {U: 1, V: 2}})
	_, err = domain.NewBasis(key, []domain.Generator{gen(t, path), gen(t, path)})
	assert.ErrorIs(t, err, domain.ErrBasisInconsistency)
}

func TestBasis_Empty(t *testing.T) {
	t.Parallel()

	b, err := domain.NewBasis(ordinaryKey(4, 3), nil)
	require.NoError(t, err)
	assert.Zero(t, b.Dimension())
	assert.Empty(t, b.G6Strings())
}
