package solver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

var _ ports.RankSolver = (*External)(nil)

// stderrLimit caps how much solver stderr is attached to errors.
const stderrLimit = 2048

// External invokes a rank solver process. The solver receives the SMS file
// path as its last argument and must print exactly one integer on stdout.
type External struct {
	name    string
	command []string
	dom     domain.CoefficientDomain

	// Diagnostics is an optional extra sink for the solver's stderr,
	// typically the cell's span.
	Diagnostics io.Writer
}

// NewExternal creates an external backend from its plan spec.
func NewExternal(spec domain.SolverBackendSpec) (*External, error) {
	if len(spec.Command) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrRankSolver, "empty command"), "solver", spec.Name)
	}
	return &External{
		name:    spec.Name,
		command: spec.Command,
		dom:     spec.Domain(),
	}, nil
}

// Name identifies the backend in logs and the run report.
func (s *External) Name() string { return s.name }

// Domain returns the coefficient domain the backend computes over.
func (s *External) Domain() domain.CoefficientDomain { return s.dom }

// Rank runs the solver process and parses its output. The caller bounds the
// invocation through ctx; on cancellation the process is killed.
func (s *External) Rank(ctx context.Context, req ports.RankRequest) (domain.Rank, error) {
	args := append(slices.Clone(s.command[1:]), req.MatrixPath)
	cmd := exec.CommandContext(ctx, s.command[0], args...) //nolint:gosec // command comes from the user's config

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if s.Diagnostics != nil {
		cmd.Stderr = io.MultiWriter(&stderr, s.Diagnostics)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Rank{}, zerr.With(
				zerr.Wrap(domain.ErrRankSolver, ctxErr.Error()),
				"solver", s.name)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return domain.Rank{}, zerr.With(zerr.With(zerr.With(
				zerr.Wrap(domain.ErrRankSolver, "solver exited nonzero"),
				"solver", s.name),
				"exit_code", exitErr.ExitCode()),
				"stderr", truncate(stderr.String()))
		}
		return domain.Rank{}, zerr.With(zerr.With(
			zerr.Wrap(domain.ErrRankSolver, "solver failed to start"),
			"solver", s.name),
			"cause", err.Error())
	}

	value, err := parseRankOutput(stdout.String())
	if err != nil {
		return domain.Rank{}, zerr.With(err, "solver", s.name)
	}

	// A rank above the trivial bound means the solver read the wrong
	// matrix or the wrong format. Refuse it rather than persist it.
	if req.Matrix.Rows > 0 && value > req.Matrix.MaxRank() {
		return domain.Rank{}, zerr.With(zerr.With(zerr.With(
			zerr.Wrap(domain.ErrRankSolver, "rank above the trivial bound"),
			"solver", s.name),
			"rank", value),
			"max_rank", req.Matrix.MaxRank())
	}

	return domain.Rank{Value: value, Domain: s.dom}, nil
}

func parseRankOutput(out string) (int, error) {
	fields := strings.Fields(out)
	if len(fields) != 1 {
		return 0, zerr.With(
			zerr.Wrap(domain.ErrRankSolver, "expected exactly one integer on stdout"),
			"stdout", truncate(out))
	}
	value, err := strconv.Atoi(fields[0])
	if err != nil || value < 0 {
		return 0, zerr.With(
			zerr.Wrap(domain.ErrRankSolver, "unparseable rank"),
			"stdout", truncate(out))
	}
	return value, nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrLimit {
		return s[:stderrLimit] + "..."
	}
	return s
}
