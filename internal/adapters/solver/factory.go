package solver

import (
	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

// FromSpec builds a rank backend from its plan spec.
func FromSpec(spec domain.SolverBackendSpec) (ports.RankSolver, error) {
	if spec.InProcess() {
		return NewInProcess(spec.Domain()), nil
	}
	return NewExternal(spec)
}

// FromPlan builds every backend a plan names, in plan order.
func FromPlan(plan domain.RunPlan) ([]ports.RankSolver, error) {
	solvers := make([]ports.RankSolver, 0, len(plan.Solvers))
	for _, spec := range plan.Solvers {
		s, err := FromSpec(spec)
		if err != nil {
			return nil, err
		}
		solvers = append(solvers, s)
	}
	return solvers, nil
}
