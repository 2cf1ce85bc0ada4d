package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports/mocks"
	"github.com/skeinlabs/gcx/internal/engine/validate"
)

func key(v, l int) domain.GradingKey {
	return domain.GradingKey{
		Family:     domain.FamilyOrdinary,
		Vertices:   v,
		Loops:      l,
		EdgeParity: domain.ParityOdd,
	}
}

func matrix(t *testing.T, rows, cols int, entries ...domain.MatrixEntry) domain.SparseMatrix {
	t.Helper()
	m, err := domain.NewSparseMatrix(rows, cols, entries)
	require.NoError(t, err)
	return m
}

func TestValidator_SquareZero_Clean(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := key(6, 4)
	first := domain.OperatorKey{Kind: domain.KindDelete, Source: src}
	second := domain.OperatorKey{Kind: domain.KindDelete, Source: first.Target()}

	// d1 maps into the kernel of d2, so the composite vanishes.
	store := mocks.NewMockArtifactStore(ctrl)
	store.EXPECT().GetMatrix(first).Return(matrix(t, 2, 1,
		domain.MatrixEntry{Row: 0, Col: 0, Val: 1},
		domain.MatrixEntry{Row: 1, Col: 0, Val: 1},
	), nil)
	store.EXPECT().GetMatrix(second).Return(matrix(t, 1, 2,
		domain.MatrixEntry{Row: 0, Col: 0, Val: 1},
		domain.MatrixEntry{Row: 0, Col: 1, Val: -1},
	), nil)

	v := validate.NewValidator(store)
	findings, err := v.Check(t.Context(), src, domain.KindDelete)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestValidator_SquareZero_Violated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := key(6, 4)
	first := domain.OperatorKey{Kind: domain.KindDelete, Source: src}
	second := domain.OperatorKey{Kind: domain.KindDelete, Source: first.Target()}

	store := mocks.NewMockArtifactStore(ctrl)
	store.EXPECT().GetMatrix(first).Return(matrix(t, 1, 1,
		domain.MatrixEntry{Row: 0, Col: 0, Val: 1},
	), nil)
	store.EXPECT().GetMatrix(second).Return(matrix(t, 1, 1,
		domain.MatrixEntry{Row: 0, Col: 0, Val: 2},
	), nil)

	v := validate.NewValidator(store)
	findings, err := v.Check(t.Context(), src, domain.KindDelete)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "square-zero", findings[0].Check)
	assert.Equal(t, first, findings[0].Left)
	assert.Equal(t, second, findings[0].Right)
	assert.Equal(t, 1, findings[0].NonzeroEntries)
}

func TestValidator_SquareZero_MissingMatrixSkips(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := key(6, 4)
	first := domain.OperatorKey{Kind: domain.KindDelete, Source: src}

	store := mocks.NewMockArtifactStore(ctrl)
	store.EXPECT().GetMatrix(first).Return(domain.SparseMatrix{}, domain.ErrCacheMiss)

	v := validate.NewValidator(store)
	findings, err := v.Check(t.Context(), src, domain.KindDelete)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestValidator_AntiCommute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		// The composites are 1x1, built from scalar matrices.
		c1, d2, d1, c2 int64
		wantFinding    bool
	}{
		{name: "clean", c1: 2, d2: 3, d1: 3, c2: -2, wantFinding: false},
		{name: "violated", c1: 2, d2: 3, d1: 3, c2: 2, wantFinding: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			src := key(6, 4)
			contractFirst := domain.OperatorKey{Kind: domain.KindContract, Source: src}
			deleteSecond := domain.OperatorKey{Kind: domain.KindDelete, Source: contractFirst.Target()}
			deleteFirst := domain.OperatorKey{Kind: domain.KindDelete, Source: src}
			contractSecond := domain.OperatorKey{Kind: domain.KindContract, Source: deleteFirst.Target()}

			scalar := func(v int64) domain.SparseMatrix {
				return matrix(t, 1, 1, domain.MatrixEntry{Row: 0, Col: 0, Val: v})
			}

			store := mocks.NewMockArtifactStore(ctrl)
			// The contract square-zero check runs first and is skipped.
			store.EXPECT().GetMatrix(contractFirst).Return(scalar(tt.c1), nil).Times(2)
			store.EXPECT().
				GetMatrix(domain.OperatorKey{Kind: domain.KindContract, Source: contractFirst.Target()}).
				Return(domain.SparseMatrix{}, domain.ErrCacheMiss)
			store.EXPECT().GetMatrix(deleteSecond).Return(scalar(tt.d2), nil)
			store.EXPECT().GetMatrix(deleteFirst).Return(scalar(tt.d1), nil)
			store.EXPECT().GetMatrix(contractSecond).Return(scalar(tt.c2), nil)

			v := validate.NewValidator(store)
			findings, err := v.Check(t.Context(), src, domain.KindContract)
			require.NoError(t, err)

			if !tt.wantFinding {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, "anti-commute", findings[0].Check)
			assert.Equal(t, contractFirst, findings[0].Left)
			assert.Equal(t, deleteFirst, findings[0].Right)
		})
	}
}

func TestValidator_ShapeMismatchIsError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := key(6, 4)
	first := domain.OperatorKey{Kind: domain.KindDelete, Source: src}
	second := domain.OperatorKey{Kind: domain.KindDelete, Source: first.Target()}

	store := mocks.NewMockArtifactStore(ctrl)
	store.EXPECT().GetMatrix(first).Return(matrix(t, 3, 1,
		domain.MatrixEntry{Row: 0, Col: 0, Val: 1},
	), nil)
	store.EXPECT().GetMatrix(second).Return(matrix(t, 1, 2,
		domain.MatrixEntry{Row: 0, Col: 0, Val: 1},
	), nil)

	v := validate.NewValidator(store)
	_, err := v.Check(t.Context(), src, domain.KindDelete)
	assert.ErrorIs(t, err, domain.ErrShapeMismatch)
}

func TestValidator_ReadFailurePropagates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := key(6, 4)
	first := domain.OperatorKey{Kind: domain.KindDelete, Source: src}

	store := mocks.NewMockArtifactStore(ctrl)
	store.EXPECT().GetMatrix(first).Return(domain.SparseMatrix{}, domain.ErrStoreReadFailed)

	v := validate.NewValidator(store)
	_, err := v.Check(t.Context(), src, domain.KindDelete)
	assert.ErrorIs(t, err, domain.ErrStoreReadFailed)
}
