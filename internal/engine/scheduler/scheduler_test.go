package scheduler_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
	"github.com/skeinlabs/gcx/internal/core/ports/mocks"
	"github.com/skeinlabs/gcx/internal/engine/scheduler"
)

// Stage engines are stubbed per test; the scheduler only cares about call
// order and error propagation, not what the engines compute.

type stubBasis struct {
	mu    sync.Mutex
	fail  map[string]error
	calls []string
}

func (s *stubBasis) Ensure(_ context.Context, key domain.GradingKey) (domain.Basis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, key.String())
	if err, ok := s.fail[key.String()]; ok {
		return domain.Basis{}, err
	}
	return domain.Basis{Key: key}, nil
}

type stubOperator struct {
	mu    sync.Mutex
	calls []string
}

func (s *stubOperator) Ensure(_ context.Context, op domain.OperatorKey) (domain.SparseMatrix, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, op.String())
	return domain.SparseMatrix{Rows: 1, Cols: 1}, nil
}

type stubRank struct {
	mu    sync.Mutex
	dom   domain.CoefficientDomain
	calls []string
}

func (s *stubRank) Primary() domain.CoefficientDomain { return domain.Rational }

func (s *stubRank) Compute(_ context.Context, op domain.OperatorKey, _ domain.SparseMatrix) (domain.Rank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, op.String())
	return domain.Rank{Domain: s.dom}, nil
}

type stubValidator struct {
	mu       sync.Mutex
	findings []domain.ValidationFinding
	calls    int
}

func (s *stubValidator) Check(_ context.Context, _ domain.GradingKey, _ domain.OperatorKind) ([]domain.ValidationFinding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.findings, nil
}

type stubAssembler struct {
	mu         sync.Mutex
	incomplete bool
	cells      int
	persisted  [][]domain.CohomologyEntry
}

func (s *stubAssembler) Cell(_ context.Context, key domain.GradingKey, kind domain.OperatorKind) (domain.CohomologyEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells++
	if s.incomplete {
		return domain.CohomologyEntry{}, false, nil
	}
	return domain.CohomologyEntry{Key: key, Kind: kind, Dimension: 1, Domain: domain.Rational}, true, nil
}

func (s *stubAssembler) Persist(entries []domain.CohomologyEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persisted = append(s.persisted, entries)
	return nil
}

type fixture struct {
	store     *mocks.MockArtifactStore
	renderer  *mocks.MockRenderer
	basis     *stubBasis
	operator  *stubOperator
	rank      *stubRank
	validator *stubValidator
	assembler *stubAssembler
	sched     *scheduler.Scheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()

	f := &fixture{
		store:     mocks.NewMockArtifactStore(ctrl),
		renderer:  mocks.NewMockRenderer(ctrl),
		basis:     &stubBasis{fail: map[string]error{}},
		operator:  &stubOperator{},
		rank:      &stubRank{},
		validator: &stubValidator{},
		assembler: &stubAssembler{},
	}
	f.sched = scheduler.NewScheduler(f.store, scheduler.Engines{
		Basis:     f.basis,
		Operator:  f.operator,
		Rank:      f.rank,
		Validator: f.validator,
		Assembler: f.assembler,
	}, tracer, f.renderer)
	return f
}

// nothingStored makes every store lookup miss so all cells compute.
func (f *fixture) nothingStored() {
	f.store.EXPECT().GetBasis(gomock.Any()).Return(domain.Basis{}, domain.ErrCacheMiss).AnyTimes()
	f.store.EXPECT().GetMatrix(gomock.Any()).Return(domain.SparseMatrix{}, domain.ErrCacheMiss).AnyTimes()
	f.store.EXPECT().GetRank(gomock.Any(), gomock.Any()).Return(domain.Rank{}, domain.ErrCacheMiss).AnyTimes()
}

func k4Plan(stages ...domain.Stage) domain.RunPlan {
	return domain.RunPlan{
		Jobs: 1,
		Complexes: []domain.ComplexPlan{{
			Family:     domain.FamilyOrdinary,
			EdgeParity: domain.ParityEven,
			Range:      domain.GradingRange{VerticesMin: 4, VerticesMax: 4, LoopsMin: 3, LoopsMax: 3},
			Operators:  []domain.OperatorKind{domain.KindContract},
		}},
		Stages: stages,
	}
}

func stagesOf(cells []domain.CellID) []domain.Stage {
	out := make([]domain.Stage, len(cells))
	for i, c := range cells {
		out[i] = c.Stage
	}
	return out
}

func TestScheduler_Run_FullPipeline(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.nothingStored()
	f.validator.findings = []domain.ValidationFinding{{Check: "square-zero"}}

	var emitted []domain.CellID
	f.renderer.EXPECT().OnPlanEmit(gomock.Any()).Do(func(cells []domain.CellID) {
		emitted = cells
	})

	plan := k4Plan(domain.AllStages...)
	report, err := f.sched.Run(t.Context(), plan)
	require.NoError(t, err)

	// One grading, one operator kind: its basis, the contraction target's
	// basis, and one cell per remaining stage.
	require.Len(t, report.Cells, 6)
	assert.Equal(t, 6, report.Count(domain.StatusCompleted))
	assert.False(t, report.Failed())

	// Emit order respects dependencies: bases, then the operator, then rank,
	// then the checks that read them.
	assert.Equal(t, []domain.Stage{
		domain.StageBasis, domain.StageBasis,
		domain.StageOperator, domain.StageRank,
		domain.StageValidate, domain.StageCohomology,
	}, stagesOf(emitted))

	// The rank cell re-reads its matrix through the operator engine.
	assert.Len(t, f.basis.calls, 2)
	assert.Len(t, f.operator.calls, 2)
	assert.Len(t, f.rank.calls, 1)
	assert.Equal(t, 1, f.validator.calls)

	assert.Equal(t, f.validator.findings, report.Findings)
	require.Len(t, report.Cohomology, 1)
	assert.Equal(t, 1, report.Cohomology[0].Dimension)
	require.Len(t, f.assembler.persisted, 1)
}

func TestScheduler_Run_StoredArtifactsShortCircuit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.EXPECT().GetBasis(gomock.Any()).Return(domain.Basis{}, nil)
	f.renderer.EXPECT().OnPlanEmit(gomock.Any())
	f.renderer.EXPECT().OnCellComplete(gomock.Any()).Do(func(res domain.CellResult) {
		assert.Equal(t, domain.StatusCached, res.Status)
	})

	report, err := f.sched.Run(t.Context(), k4Plan(domain.StageBasis))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count(domain.StatusCached))
	assert.Empty(t, f.basis.calls)
}

func TestScheduler_Run_FailureSkipsDependents(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.nothingStored()
	key := domain.GradingKey{Family: domain.FamilyOrdinary, Vertices: 4, Loops: 3, EdgeParity: domain.ParityEven}
	f.basis.fail[key.String()] = zerr.New("enumeration blew up")

	f.renderer.EXPECT().OnPlanEmit(gomock.Any())
	f.renderer.EXPECT().OnCellComplete(gomock.Any()).Do(func(res domain.CellResult) {
		assert.Equal(t, domain.StatusSkipped, res.Status)
		assert.ErrorIs(t, res.Err, domain.ErrDependencySkipped)
	}).Times(4)

	report, err := f.sched.Run(t.Context(), k4Plan(domain.AllStages...))
	require.NoError(t, err)

	assert.True(t, report.Failed())
	assert.Equal(t, 1, report.Count(domain.StatusFailed))
	assert.Equal(t, 1, report.Count(domain.StatusCompleted)) // the target basis
	assert.Equal(t, 4, report.Count(domain.StatusSkipped))

	// Nothing downstream of the failed basis ran.
	assert.Empty(t, f.operator.calls)
	assert.Empty(t, f.rank.calls)
	assert.Zero(t, f.validator.calls)
	assert.Empty(t, f.assembler.persisted)

	for _, res := range report.Cells {
		if res.Status == domain.StatusFailed {
			assert.ErrorIs(t, res.Err, domain.ErrCellFailed)
		}
	}
}

func TestScheduler_Run_IncompleteCohomologyCellIsNotPersisted(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.assembler.incomplete = true
	f.renderer.EXPECT().OnPlanEmit(gomock.Any())

	report, err := f.sched.Run(t.Context(), k4Plan(domain.StageCohomology))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count(domain.StatusCompleted))
	assert.Empty(t, report.Cohomology)
	assert.Empty(t, f.assembler.persisted)
}

func TestScheduler_Run_ValidateWaitsForBothDifferentials(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.nothingStored()

	var emitted []domain.CellID
	f.renderer.EXPECT().OnPlanEmit(gomock.Any()).Do(func(cells []domain.CellID) {
		emitted = cells
	})

	plan := domain.RunPlan{
		Jobs: 2,
		Complexes: []domain.ComplexPlan{{
			Family:     domain.FamilyOrdinary,
			EdgeParity: domain.ParityEven,
			Range:      domain.GradingRange{VerticesMin: 5, VerticesMax: 5, LoopsMin: 4, LoopsMax: 4},
		}},
		Stages: []domain.Stage{domain.StageOperator, domain.StageValidate},
	}
	report, err := f.sched.Run(t.Context(), plan)
	require.NoError(t, err)

	// Without an explicit operator list the family default applies: contract
	// and delete, each with an operator and a validate cell.
	require.Len(t, report.Cells, 4)
	assert.Equal(t, 4, report.Count(domain.StatusCompleted))
	assert.Equal(t, []domain.Stage{
		domain.StageOperator, domain.StageOperator,
		domain.StageValidate, domain.StageValidate,
	}, stagesOf(emitted))
	assert.Equal(t, 2, f.validator.calls)
}

func TestScheduler_Run_ReportsRankDomainDivergence(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.nothingStored()
	// A fallback backend computed the rank modulo a prime instead of over
	// the primary rational domain.
	f.rank.dom = domain.CoefficientDomain{Modulus: 32003}
	f.renderer.EXPECT().OnPlanEmit(gomock.Any())

	report, err := f.sched.Run(t.Context(), k4Plan(domain.StageRank))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count(domain.StatusCompleted))
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "rank-domain", report.Findings[0].Check)
	assert.Contains(t, report.Findings[0].String(), "mod32003")
	assert.Contains(t, report.Findings[0].String(), "rational")
}

func TestScheduler_Run_CanceledContext(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.renderer.EXPECT().OnPlanEmit(gomock.Any())

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := f.sched.Run(ctx, k4Plan(domain.AllStages...))
	assert.ErrorIs(t, err, context.Canceled)
}
