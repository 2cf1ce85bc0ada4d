package domain

import (
	"fmt"
	"runtime"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Stage is one phase of the per-grading pipeline.
type Stage string

const (
	// StageBasis enumerates and persists generator bases.
	StageBasis Stage = "basis"

	// StageOperator builds and persists differential matrices.
	StageOperator Stage = "operator"

	// StageRank computes and persists matrix ranks.
	StageRank Stage = "rank"

	// StageValidate checks square-zero and anti-commutation.
	StageValidate Stage = "validate"

	// StageCohomology assembles the dimension table.
	StageCohomology Stage = "cohomology"
)

// AllStages lists the stages in pipeline order.
var AllStages = []Stage{StageBasis, StageOperator, StageRank, StageValidate, StageCohomology}

// ParseStage parses a stage name.
func ParseStage(s string) (Stage, error) {
	for _, st := range AllStages {
		if Stage(s) == st {
			return st, nil
		}
	}
	return "", zerr.With(zerr.Wrap(ErrInvalidPlan, "unknown stage"), "stage", s)
}

// GradingRange is an inclusive box of gradings.
type GradingRange struct {
	VerticesMin, VerticesMax int
	LoopsMin, LoopsMax       int
	HairsMin, HairsMax       int
}

// ComplexPlan selects one complex: a family with fixed conventions and a
// grading range.
type ComplexPlan struct {
	Family     Family
	EdgeParity Parity
	HairParity Parity
	Range      GradingRange
	Operators  []OperatorKind
}

// Keys expands the grading range into concrete keys, hairs innermost.
func (c ComplexPlan) Keys() []GradingKey {
	hmin, hmax := c.Range.HairsMin, c.Range.HairsMax
	if c.Family != FamilyHairy {
		hmin, hmax = 0, 0
	}
	var keys []GradingKey
	for v := c.Range.VerticesMin; v <= c.Range.VerticesMax; v++ {
		for l := c.Range.LoopsMin; l <= c.Range.LoopsMax; l++ {
			for h := hmin; h <= hmax; h++ {
				keys = append(keys, GradingKey{
					Family:     c.Family,
					Vertices:   v,
					Loops:      l,
					Hairs:      h,
					EdgeParity: c.EdgeParity,
					HairParity: c.HairParity,
				})
			}
		}
	}
	return keys
}

// SolverBackendSpec describes one rank backend. An empty command means the
// in-process solver; otherwise the command reads an SMS file path as its
// last argument and prints the rank on stdout.
type SolverBackendSpec struct {
	Name    string
	Command []string
	Modulus uint64
}

// Domain returns the coefficient domain the backend computes over.
func (s SolverBackendSpec) Domain() CoefficientDomain {
	return CoefficientDomain{Modulus: s.Modulus}
}

// InProcess reports whether the backend runs inside the engine.
func (s SolverBackendSpec) InProcess() bool { return len(s.Command) == 0 }

// RunPlan is a fully validated description of one run.
type RunPlan struct {
	StorePath      string
	Jobs           int
	Complexes      []ComplexPlan
	Stages         []Stage
	Solvers        []SolverBackendSpec
	InProcessLimit int
	SolverTimeout  time.Duration
}

const (
	// DefaultInProcessLimit is the dimension bound below which ranks are
	// computed in-process.
	DefaultInProcessLimit = 512

	// DefaultSolverTimeout bounds one external solver invocation.
	DefaultSolverTimeout = 10 * time.Minute
)

// Normalize fills zero-valued knobs with defaults.
func (p RunPlan) Normalize() RunPlan {
	if p.StorePath == "" {
		p.StorePath = DefaultStorePath()
	}
	if p.Jobs <= 0 {
		p.Jobs = runtime.NumCPU()
	}
	if len(p.Stages) == 0 {
		p.Stages = AllStages
	}
	if len(p.Solvers) == 0 {
		p.Solvers = []SolverBackendSpec{{Name: "inprocess"}}
	}
	if p.InProcessLimit <= 0 {
		p.InProcessLimit = DefaultInProcessLimit
	}
	if p.SolverTimeout <= 0 {
		p.SolverTimeout = DefaultSolverTimeout
	}
	return p
}

// Check validates the plan.
func (p RunPlan) Check() error {
	if len(p.Complexes) == 0 {
		return zerr.Wrap(ErrInvalidPlan, "no complexes selected")
	}
	for _, c := range p.Complexes {
		if _, err := ParseFamily(string(c.Family)); err != nil {
			return err
		}
		if _, err := ParseParity(string(c.EdgeParity)); err != nil {
			return err
		}
		if c.Family == FamilyHairy {
			if _, err := ParseParity(string(c.HairParity)); err != nil {
				return err
			}
		}
		r := c.Range
		if r.VerticesMin > r.VerticesMax || r.LoopsMin > r.LoopsMax || r.HairsMin > r.HairsMax {
			return zerr.With(zerr.Wrap(ErrInvalidPlan, "empty grading range"), "family", string(c.Family))
		}
		if r.VerticesMin < 0 || r.LoopsMin < 0 || r.HairsMin < 0 {
			return zerr.With(zerr.Wrap(ErrInvalidPlan, "negative grading bound"), "family", string(c.Family))
		}
		for _, op := range c.Operators {
			if _, err := ParseOperatorKind(string(op)); err != nil {
				return err
			}
			supported := false
			for _, s := range SupportedOperators(c.Family) {
				if s == op {
					supported = true
				}
			}
			if !supported {
				return zerr.With(zerr.With(
					zerr.Wrap(ErrInvalidPlan, "operator not defined on family"),
					"operator", string(op)), "family", string(c.Family))
			}
		}
	}
	for _, s := range p.Solvers {
		if s.Name == "" {
			return zerr.Wrap(ErrInvalidPlan, "solver backend without a name")
		}
	}
	return nil
}

// Keys expands all complexes into grading keys.
func (p RunPlan) Keys() []GradingKey {
	var keys []GradingKey
	for _, c := range p.Complexes {
		keys = append(keys, c.Keys()...)
	}
	return keys
}

// HasStage reports whether the plan includes a stage.
func (p RunPlan) HasStage(s Stage) bool {
	for _, st := range p.Stages {
		if st == s {
			return true
		}
	}
	return false
}

// Fingerprint is a stable hash of the plan's computational content, recorded
// in traces and the run report.
func (p RunPlan) Fingerprint() uint64 {
	h := xxhash.New()
	for _, c := range p.Complexes {
		fmt.Fprintf(h, "%s|%s|%s|%+v|%v\n", c.Family, c.EdgeParity, c.HairParity, c.Range, c.Operators)
	}
	for _, s := range p.Stages {
		fmt.Fprintf(h, "stage:%s\n", s)
	}
	for _, s := range p.Solvers {
		fmt.Fprintf(h, "solver:%s|%d\n", s.Name, s.Modulus)
	}
	return h.Sum64()
}
