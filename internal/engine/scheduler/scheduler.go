// Package scheduler runs the pipeline: every (grading, stage) pair is a
// cell, cells are ordered by their dependencies and executed by a bounded
// worker pool, with stored artifacts short-circuiting recomputation.
package scheduler

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

// BasisBuilder is the basis stage capability.
type BasisBuilder interface {
	Ensure(ctx context.Context, key domain.GradingKey) (domain.Basis, error)
}

// OperatorBuilder is the operator stage capability.
type OperatorBuilder interface {
	Ensure(ctx context.Context, op domain.OperatorKey) (domain.SparseMatrix, error)
}

// RankEngine is the rank stage capability.
type RankEngine interface {
	Primary() domain.CoefficientDomain
	Compute(ctx context.Context, op domain.OperatorKey, m domain.SparseMatrix) (domain.Rank, error)
}

// Validator is the validate stage capability.
type Validator interface {
	Check(ctx context.Context, key domain.GradingKey, kind domain.OperatorKind) ([]domain.ValidationFinding, error)
}

// Assembler is the cohomology stage capability.
type Assembler interface {
	Cell(ctx context.Context, key domain.GradingKey, kind domain.OperatorKind) (domain.CohomologyEntry, bool, error)
	Persist(entries []domain.CohomologyEntry) error
}

// Engines bundles the per-stage capabilities the scheduler drives.
type Engines struct {
	Basis     BasisBuilder
	Operator  OperatorBuilder
	Rank      RankEngine
	Validator Validator
	Assembler Assembler
}

// Scheduler executes run plans.
type Scheduler struct {
	store    ports.ArtifactStore
	engines  Engines
	tracer   ports.Tracer
	renderer ports.Renderer
}

// NewScheduler creates a scheduler. Computed cells report through spans on
// the tracer; cached and skipped cells report directly to the renderer.
func NewScheduler(store ports.ArtifactStore, engines Engines, tracer ports.Tracer, renderer ports.Renderer) *Scheduler {
	return &Scheduler{store: store, engines: engines, tracer: tracer, renderer: renderer}
}

// Run executes every cell of the plan. Per-cell failures skip their
// dependents and are collected into the report; unrelated cells proceed.
// The returned error covers scheduling itself, not individual cells.
func (s *Scheduler) Run(ctx context.Context, plan domain.RunPlan) (domain.RunReport, error) {
	started := time.Now()

	graph := buildGraph(plan)
	s.renderer.OnPlanEmit(graph.topoOrder())

	state := s.newRunState(ctx, plan, graph)
	err := state.runExecutionLoop()

	report := domain.RunReport{
		Plan:     plan,
		Cells:    state.results,
		Findings: state.findings,
		Elapsed:  time.Since(started),
	}
	if err != nil {
		return report, err
	}

	if plan.HasStage(domain.StageCohomology) && len(state.entries) > 0 {
		if err := s.engines.Assembler.Persist(state.entries); err != nil {
			return report, err
		}
		report.Cohomology = state.entries
	}
	return report, nil
}

type result struct {
	cell     domain.CellID
	status   domain.CellStatus
	err      error
	duration time.Duration
	findings []domain.ValidationFinding
	entry    *domain.CohomologyEntry
}

type runState struct {
	ctx         context.Context
	s           *Scheduler
	graph       *cellGraph
	inDegree    map[domain.CellID]int
	ready       []domain.CellID
	active      int
	parallelism int
	resultsCh   chan result

	results  []domain.CellResult
	findings []domain.ValidationFinding
	entries  []domain.CohomologyEntry
}

func (s *Scheduler) newRunState(ctx context.Context, plan domain.RunPlan, graph *cellGraph) *runState {
	inDegree := make(map[domain.CellID]int, len(graph.nodes))
	var ready []domain.CellID
	for id, n := range graph.nodes {
		inDegree[id] = len(n.deps)
		if len(n.deps) == 0 {
			ready = append(ready, id)
		}
	}
	parallelism := plan.Jobs
	if parallelism < 1 {
		parallelism = 1
	}
	return &runState{
		ctx:         ctx,
		s:           s,
		graph:       graph,
		inDegree:    inDegree,
		ready:       ready,
		parallelism: parallelism,
		resultsCh:   make(chan result, parallelism),
	}
}

func (state *runState) runExecutionLoop() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil {
			// Canceled: drain in-flight cells, then bail.
			if state.active == 0 {
				return state.ctx.Err()
			}
			state.handleResult(<-state.resultsCh)
			continue
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}
	return state.ctx.Err()
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

// schedule launches ready cells, most expensive first, up to the
// parallelism limit.
func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		next := state.popHeaviest()
		state.active++
		go func() {
			state.resultsCh <- state.s.executeCell(state.ctx, next)
		}()
	}
}

func (state *runState) popHeaviest() domain.CellID {
	best := 0
	for i := 1; i < len(state.ready); i++ {
		if cellEstimate(state.ready[i]) > cellEstimate(state.ready[best]) {
			best = i
		}
	}
	next := state.ready[best]
	state.ready = append(state.ready[:best], state.ready[best+1:]...)
	return next
}

func (state *runState) handleResult(res result) {
	state.active--
	state.record(res)

	if res.status == domain.StatusFailed {
		state.skipDependents(res.cell)
		return
	}
	for _, dep := range state.graph.nodes[res.cell].dependents {
		if _, ok := state.inDegree[dep]; !ok {
			continue
		}
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}

func (state *runState) record(res result) {
	state.results = append(state.results, domain.CellResult{
		Cell:     res.cell,
		Status:   res.status,
		Err:      res.err,
		Duration: res.duration,
	})
	state.findings = append(state.findings, res.findings...)
	if res.entry != nil {
		state.entries = append(state.entries, *res.entry)
	}
	if res.status == domain.StatusCached || res.status == domain.StatusSkipped {
		state.s.renderer.OnCellComplete(domain.CellResult{
			Cell:   res.cell,
			Status: res.status,
			Err:    res.err,
		})
	}
}

// skipDependents transitively marks every dependent of a failed cell as
// skipped and removes it from the run.
func (state *runState) skipDependents(failed domain.CellID) {
	queue := []domain.CellID{failed}
	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		for _, dep := range state.graph.nodes[cell].dependents {
			if _, pending := state.inDegree[dep]; !pending {
				continue
			}
			delete(state.inDegree, dep)
			state.ready = slices.DeleteFunc(state.ready, func(c domain.CellID) bool { return c == dep })
			state.record(result{
				cell:   dep,
				status: domain.StatusSkipped,
				err: zerr.With(
					zerr.Wrap(domain.ErrDependencySkipped, "upstream cell failed"),
					"failed_dependency", cell.String()),
			})
			queue = append(queue, dep)
		}
	}
}

// executeCell runs one cell: the store short-circuits it, or it computes
// inside a span named after the cell so the telemetry bridge can follow it.
func (s *Scheduler) executeCell(ctx context.Context, cell domain.CellID) result {
	if s.cached(cell) {
		return result{cell: cell, status: domain.StatusCached}
	}

	started := time.Now()
	res := func() result {
		ctx, span := s.tracer.Start(ctx, cell.String(),
			ports.WithAttribute("stage", string(cell.Stage)))
		defer span.End()

		res, err := s.compute(ctx, cell)
		if err != nil {
			span.RecordError(err)
			return result{
				cell:   cell,
				status: domain.StatusFailed,
				err:    zerr.With(zerr.Wrap(err, domain.ErrCellFailed.Error()), "cell", cell.String()),
			}
		}
		res.cell = cell
		res.status = domain.StatusCompleted
		return res
	}()
	res.duration = time.Since(started)
	return res
}

func (s *Scheduler) compute(ctx context.Context, cell domain.CellID) (result, error) {
	switch cell.Stage {
	case domain.StageBasis:
		_, err := s.engines.Basis.Ensure(ctx, cell.Key)
		return result{}, err

	case domain.StageOperator:
		_, err := s.engines.Operator.Ensure(ctx, domain.OperatorKey{Kind: cell.Kind, Source: cell.Key})
		return result{}, err

	case domain.StageRank:
		op := domain.OperatorKey{Kind: cell.Kind, Source: cell.Key}
		m, err := s.engines.Operator.Ensure(ctx, op)
		if err != nil {
			return result{}, err
		}
		rank, err := s.engines.Rank.Compute(ctx, op, m)
		if err != nil {
			return result{}, err
		}
		// A fallback backend may compute over different coefficients than
		// the run's primary domain. The cohomology stage will not see such
		// a rank, so surface the divergence instead of staying silent.
		if primary := s.engines.Rank.Primary(); rank.Domain != primary {
			return result{findings: []domain.ValidationFinding{{
				Check: "rank-domain",
				Left:  op,
				Detail: fmt.Sprintf("rank computed over %s, run expects %s",
					rank.Domain.String(), primary.String()),
			}}}, nil
		}
		return result{}, nil

	case domain.StageValidate:
		findings, err := s.engines.Validator.Check(ctx, cell.Key, cell.Kind)
		return result{findings: findings}, err

	case domain.StageCohomology:
		entry, ok, err := s.engines.Assembler.Cell(ctx, cell.Key, cell.Kind)
		if err != nil || !ok {
			return result{}, err
		}
		return result{entry: &entry}, nil

	default:
		return result{}, zerr.With(zerr.Wrap(domain.ErrInvalidPlan, "unknown stage"), "stage", string(cell.Stage))
	}
}

// cached reports whether the store already holds the cell's artifact.
// Validate and cohomology cells are cheap and always recomputed.
func (s *Scheduler) cached(cell domain.CellID) bool {
	op := domain.OperatorKey{Kind: cell.Kind, Source: cell.Key}
	switch cell.Stage {
	case domain.StageBasis:
		_, err := s.store.GetBasis(cell.Key)
		return err == nil
	case domain.StageOperator:
		_, err := s.store.GetMatrix(op)
		return err == nil
	case domain.StageRank:
		_, err := s.store.GetRank(op, s.engines.Rank.Primary())
		return err == nil
	default:
		return false
	}
}

// stageOrder fixes the emit order of stages.
var stageOrder = map[domain.Stage]int{
	domain.StageBasis:      0,
	domain.StageOperator:   1,
	domain.StageRank:       2,
	domain.StageValidate:   3,
	domain.StageCohomology: 4,
}

func cellEstimate(cell domain.CellID) float64 {
	return cell.Key.WorkEstimate()
}

type cellNode struct {
	deps       []domain.CellID
	dependents []domain.CellID
}

type cellGraph struct {
	nodes map[domain.CellID]*cellNode
}

// topoOrder returns the cells in dependency order, deterministic across
// runs: stage first, then the heavy gradings, then lexicographic.
func (g *cellGraph) topoOrder() []domain.CellID {
	inDegree := make(map[domain.CellID]int, len(g.nodes))
	var ready []domain.CellID
	for id, n := range g.nodes {
		inDegree[id] = len(n.deps)
		if len(n.deps) == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]domain.CellID, 0, len(g.nodes))
	for len(ready) > 0 {
		slices.SortFunc(ready, compareCells)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)
		for _, dep := range g.nodes[next].dependents {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}
	return order
}

func compareCells(a, b domain.CellID) int {
	if c := stageOrder[a.Stage] - stageOrder[b.Stage]; c != 0 {
		return c
	}
	if ea, eb := cellEstimate(a), cellEstimate(b); ea != eb {
		if ea > eb {
			return -1
		}
		return 1
	}
	return strings.Compare(a.String(), b.String())
}

// buildGraph expands the plan into cells and dependency edges. Stages the
// plan excludes contribute no cells; dependencies on absent cells are
// dropped, their artifacts are expected from earlier runs.
func buildGraph(plan domain.RunPlan) *cellGraph {
	g := &cellGraph{nodes: make(map[domain.CellID]*cellNode)}
	wantDeps := make(map[domain.CellID][]domain.CellID)

	add := func(id domain.CellID, deps ...domain.CellID) {
		if _, ok := g.nodes[id]; !ok {
			g.nodes[id] = &cellNode{}
		}
		wantDeps[id] = append(wantDeps[id], deps...)
	}

	for _, cpx := range plan.Complexes {
		kinds := cpx.Operators
		if len(kinds) == 0 {
			kinds = domain.SupportedOperators(cpx.Family)
		}

		for _, key := range cpx.Keys() {
			basisCell := domain.CellID{Key: key, Stage: domain.StageBasis}
			if plan.HasStage(domain.StageBasis) {
				add(basisCell)
			}

			for _, kind := range kinds {
				op := domain.OperatorKey{Kind: kind, Source: key}
				tgt := op.Target()
				tgtBasis := domain.CellID{Key: tgt, Stage: domain.StageBasis}
				opCell := domain.CellID{Key: key, Stage: domain.StageOperator, Kind: kind}
				rankCell := domain.CellID{Key: key, Stage: domain.StageRank, Kind: kind}

				if plan.HasStage(domain.StageOperator) {
					if plan.HasStage(domain.StageBasis) {
						add(tgtBasis)
					}
					add(opCell, basisCell, tgtBasis)
				}
				if plan.HasStage(domain.StageRank) {
					add(rankCell, opCell)
				}
				if plan.HasStage(domain.StageValidate) {
					deps := []domain.CellID{
						opCell,
						{Key: tgt, Stage: domain.StageOperator, Kind: kind},
					}
					if kind == domain.KindContract && slices.Contains(kinds, domain.KindDelete) {
						deleteOp := domain.OperatorKey{Kind: domain.KindDelete, Source: key}
						deps = append(deps,
							domain.CellID{Key: key, Stage: domain.StageOperator, Kind: domain.KindDelete},
							domain.CellID{Key: tgt, Stage: domain.StageOperator, Kind: domain.KindDelete},
							domain.CellID{Key: deleteOp.Target(), Stage: domain.StageOperator, Kind: domain.KindContract},
						)
					}
					add(domain.CellID{Key: key, Stage: domain.StageValidate, Kind: kind}, deps...)
				}
				if plan.HasStage(domain.StageCohomology) {
					incoming := incomingSource(key, kind)
					add(domain.CellID{Key: key, Stage: domain.StageCohomology, Kind: kind},
						rankCell,
						domain.CellID{Key: incoming, Stage: domain.StageRank, Kind: kind},
					)
				}
			}
		}
	}

	for id, deps := range wantDeps {
		node := g.nodes[id]
		for _, dep := range deps {
			if _, ok := g.nodes[dep]; !ok || dep == id {
				continue
			}
			if slices.Contains(node.deps, dep) {
				continue
			}
			node.deps = append(node.deps, dep)
			g.nodes[dep].dependents = append(g.nodes[dep].dependents, id)
		}
	}
	return g
}

// incomingSource is the grading whose differential lands in key.
func incomingSource(key domain.GradingKey, kind domain.OperatorKind) domain.GradingKey {
	src := key
	switch kind {
	case domain.KindContract:
		src.Vertices++
	case domain.KindDelete:
		src.Loops++
	}
	return src
}
