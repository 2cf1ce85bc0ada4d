// Package config provides the configuration loader for gcx.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads gcx.yaml starting from cwd and returns a validated run plan.
func (l *Loader) Load(cwd string) (domain.RunPlan, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return domain.RunPlan{}, err
	}
	path := filepath.Join(root, domain.ConfigFileName)

	//nolint:gosec // Path comes from walking up the user's working directory.
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RunPlan{}, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.RunPlan{}, zerr.With(zerr.With(
			zerr.Wrap(domain.ErrConfigParseFailed, "bad yaml"),
			"path", path), "cause", err.Error())
	}

	plan, err := toPlan(file)
	if err != nil {
		return domain.RunPlan{}, zerr.With(err, "path", path)
	}

	plan = plan.Normalize()
	if err := plan.Check(); err != nil {
		return domain.RunPlan{}, zerr.With(err, "path", path)
	}
	return plan, nil
}

// DiscoverRoot walks up from cwd to the directory containing gcx.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigNotFound.Error())
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, domain.ConfigFileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "walked to the filesystem root"), "cwd", cwd)
		}
		dir = parent
	}
}

func toPlan(file File) (domain.RunPlan, error) {
	plan := domain.RunPlan{
		StorePath:      file.Store,
		Jobs:           file.Jobs,
		InProcessLimit: file.Rank.InProcessLimit,
	}

	for _, s := range file.Stages {
		stage, err := domain.ParseStage(s)
		if err != nil {
			return domain.RunPlan{}, err
		}
		plan.Stages = append(plan.Stages, stage)
	}

	for i, dto := range file.Complexes {
		complexPlan, err := toComplexPlan(dto)
		if err != nil {
			return domain.RunPlan{}, zerr.With(err, "complex", i)
		}
		plan.Complexes = append(plan.Complexes, complexPlan)
	}

	if file.Rank.SolverTimeout != "" {
		timeout, err := time.ParseDuration(file.Rank.SolverTimeout)
		if err != nil {
			return domain.RunPlan{}, zerr.With(
				zerr.Wrap(domain.ErrConfigParseFailed, "bad solver timeout"),
				"timeout", file.Rank.SolverTimeout)
		}
		plan.SolverTimeout = timeout
	}

	for _, s := range file.Rank.Solvers {
		plan.Solvers = append(plan.Solvers, domain.SolverBackendSpec{
			Name:    s.Name,
			Command: s.Command,
			Modulus: s.Modulus,
		})
	}

	return plan, nil
}

func toComplexPlan(dto ComplexDTO) (domain.ComplexPlan, error) {
	family, err := domain.ParseFamily(dto.Family)
	if err != nil {
		return domain.ComplexPlan{}, err
	}
	edgeParity, err := domain.ParseParity(dto.EdgeParity)
	if err != nil {
		return domain.ComplexPlan{}, zerr.With(err, "field", "edgeParity")
	}

	var hairParity domain.Parity
	if family == domain.FamilyHairy {
		hairParity, err = domain.ParseParity(dto.HairParity)
		if err != nil {
			return domain.ComplexPlan{}, zerr.With(err, "field", "hairParity")
		}
	}

	operators := domain.SupportedOperators(family)
	if len(dto.Operators) > 0 {
		operators = operators[:0]
		for _, o := range dto.Operators {
			kind, err := domain.ParseOperatorKind(o)
			if err != nil {
				return domain.ComplexPlan{}, err
			}
			operators = append(operators, kind)
		}
	}

	return domain.ComplexPlan{
		Family:     family,
		EdgeParity: edgeParity,
		HairParity: hairParity,
		Range: domain.GradingRange{
			VerticesMin: dto.Vertices.Min, VerticesMax: dto.Vertices.Max,
			LoopsMin: dto.Loops.Min, LoopsMax: dto.Loops.Max,
			HairsMin: dto.Hairs.Min, HairsMax: dto.Hairs.Max,
		},
		Operators: operators,
	}, nil
}

// Example renders a minimal configuration, shown when none is found.
func Example() string {
	return fmt.Sprintf(`version: "1"
complexes:
  - family: ordinary
    edgeParity: odd
    vertices: {min: 3, max: 6}
    loops: {min: 3, max: 4}
    operators: [contract, delete]

# artifacts land under %s
`, domain.DefaultStorePath())
}
