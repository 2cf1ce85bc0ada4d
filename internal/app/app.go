// Package app implements the application layer for gcx.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/skeinlabs/gcx/internal/adapters/render"
	"github.com/skeinlabs/gcx/internal/adapters/solver"
	"github.com/skeinlabs/gcx/internal/adapters/telemetry"
	"github.com/skeinlabs/gcx/internal/adapters/watcher"
	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
	"github.com/skeinlabs/gcx/internal/engine/basis"
	"github.com/skeinlabs/gcx/internal/engine/cohomology"
	"github.com/skeinlabs/gcx/internal/engine/operator"
	"github.com/skeinlabs/gcx/internal/engine/rank"
	"github.com/skeinlabs/gcx/internal/engine/scheduler"
	"github.com/skeinlabs/gcx/internal/engine/validate"
)

// App represents the main application logic.
type App struct {
	loader  ports.ConfigLoader
	oracle  ports.Oracle
	store   ports.ArtifactStore
	watcher ports.Watcher
	logger  ports.Logger
	stdout  io.Writer
	stderr  io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	oracle ports.Oracle,
	store ports.ArtifactStore,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		loader:  loader,
		oracle:  oracle,
		store:   store,
		watcher: w,
		logger:  log,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// WithStreams redirects the renderer's output streams.
// This is primarily used for testing.
func (a *App) WithStreams(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Jobs       int
	Stages     []string
	OutputMode string
}

// Run executes the configured plan: it schedules every cell, renders the
// report, and fails when any cell failed.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	plan, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	plan, err = applyOverrides(plan, opts)
	if err != nil {
		return err
	}

	solvers, err := solver.FromPlan(plan)
	if err != nil {
		return err
	}

	mode := render.ResolveMode(render.DetectMode(), opts.OutputMode)
	renderer := render.NewRenderer(a.stdout, a.stderr, mode)

	// Cell spans flow back to the renderer through the bridge, so progress
	// lines and traces come from the same events.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)),
	)
	otel.SetTracerProvider(tp)
	defer func() {
		_ = tp.Shutdown(ctx)
	}()
	tracer := telemetry.NewOTelTracer("gcx")

	ctx, span := tracer.Start(ctx, "run",
		ports.WithAttribute("plan_fingerprint", fmt.Sprintf("%016x", plan.Fingerprint())))
	defer span.End()

	bases := basis.NewBuilder(a.oracle, a.store)
	ranks := rank.NewEngine(a.store, solvers, plan.InProcessLimit, plan.SolverTimeout)
	sched := scheduler.NewScheduler(a.store, scheduler.Engines{
		Basis:     bases,
		Operator:  operator.NewBuilder(a.oracle, a.store, bases),
		Rank:      ranks,
		Validator: validate.NewValidator(a.store),
		Assembler: cohomology.NewAssembler(a.store, ranks.Primary()),
	}, tracer, renderer)

	report, err := sched.Run(ctx, plan)
	if err != nil {
		return err
	}
	if err := renderer.RenderReport(report); err != nil {
		return err
	}

	if report.Failed() {
		return zerr.With(
			zerr.Wrap(domain.ErrCellFailed, "run finished with failures"),
			"failed", report.Count(domain.StatusFailed))
	}
	return nil
}

// applyOverrides folds command line flags into the loaded plan.
func applyOverrides(plan domain.RunPlan, opts RunOptions) (domain.RunPlan, error) {
	if opts.Jobs > 0 {
		plan.Jobs = opts.Jobs
	}
	if len(opts.Stages) > 0 {
		plan.Stages = plan.Stages[:0]
		for _, s := range opts.Stages {
			stage, err := domain.ParseStage(s)
			if err != nil {
				return domain.RunPlan{}, err
			}
			plan.Stages = append(plan.Stages, stage)
		}
	}
	return plan, nil
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	OutputMode string
	Debounce   time.Duration
}

// Watch re-renders the cohomology table whenever artifacts land in the
// store, until the context is canceled. A second gcx process, or several,
// can fill the store concurrently.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	mode := render.ResolveMode(render.DetectMode(), opts.OutputMode)
	renderer := render.NewRenderer(a.stdout, a.stderr, mode)

	window := opts.Debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}

	// Bursts of artifact writes collapse into one refresh signal.
	refresh := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(window, func(_ []string) {
		select {
		case refresh <- struct{}{}:
		default:
		}
	})

	root := a.store.Root()
	if err := a.watcher.Start(ctx, root); err != nil {
		return zerr.Wrap(err, "failed to start watching the artifact store")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	a.logger.Info(fmt.Sprintf("watching %s", root))
	if err := a.renderCohomology(renderer); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-refresh:
				if err := a.renderCohomology(renderer); err != nil {
					return err
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// renderCohomology renders the stored table; an absent table is not an
// error, the producing run simply has not reached the cohomology stage yet.
func (a *App) renderCohomology(renderer *render.Renderer) error {
	entries, err := a.store.GetCohomology()
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) || errors.Is(err, domain.ErrStoreCorrupt) {
			return nil
		}
		return err
	}
	return renderer.RenderCohomology(entries)
}

// Clean removes every stored artifact.
func (a *App) Clean(_ context.Context) error {
	a.logger.Info(fmt.Sprintf("removing artifacts under %s", a.store.Root()))
	if err := a.store.Clean(); err != nil {
		return zerr.Wrap(err, "failed to clean the artifact store")
	}
	a.logger.Info("artifact store cleaned")
	return nil
}
