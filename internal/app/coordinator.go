package app

import (
	"context"
	"fmt"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/hotload/internal/engine/buildstate"
	"go.trai.ch/hotload/internal/engine/changes"
	"go.trai.ch/hotload/internal/engine/dispatcher"
)

var _ buildstate.Handler = (*Coordinator)(nil)

// Coordinator runs the authoring-side pipeline: compile, detect changes, resolve the closure
// and dispatch. It is driven from a single goroutine.
type Coordinator struct {
	compiler   ports.Compiler
	machine    *buildstate.Machine
	detector   *changes.Detector
	dispatcher *dispatcher.Dispatcher
	tracer     ports.Tracer
	logger     ports.Logger
	request    ports.BuildRequest
	reload     domain.ReloadConfig

	primed bool
}

// NewCoordinator wires a Coordinator and subscribes it to a fresh build state machine.
func NewCoordinator(
	compiler ports.Compiler,
	detector *changes.Detector,
	disp *dispatcher.Dispatcher,
	tracer ports.Tracer,
	logger ports.Logger,
	cfg *domain.Config,
) *Coordinator {
	c := &Coordinator{
		compiler:   compiler,
		machine:    buildstate.NewMachine(compiler),
		detector:   detector,
		dispatcher: disp,
		tracer:     tracer,
		logger:     logger,
		request:    ports.BuildRequest{Targets: cfg.Build.Targets},
		reload:     cfg.Reload,
	}
	buildstate.Watch(c.machine, c)
	return c
}

// Start runs the initial cycle. Without stored watermarks the initial cycle only seeds them,
// so a fresh client is not sent every unit it has just loaded. Seeding happens whatever the
// outcome, so an edit that fixes a broken start is reloaded by the next clean cycle.
func (c *Coordinator) Start(ctx context.Context) error {
	c.primed = c.detector.Seeded()
	err := c.Cycle(ctx)
	if !c.primed {
		c.prime(ctx)
	}
	return err
}

// Cycle runs one compile and routes its outcome.
func (c *Coordinator) Cycle(ctx context.Context) (err error) {
	ctx, span := c.tracer.Start(ctx, "cycle", ports.WithRoot())
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	meta, err := c.machine.Build(ctx, c.request)
	span.SetAttribute("hotload.outcome", meta.Outcome().String())
	span.SetAttribute("hotload.warnings", len(meta.Warnings))
	return err
}

// State exposes the build state machine for inspection.
func (c *Coordinator) State() buildstate.State {
	return c.machine.State()
}

// OnClean reloads whatever the cycle changed.
func (c *Coordinator) OnClean(ctx context.Context, _ domain.CycleMetadata) error {
	return c.reloadChanged(ctx)
}

// OnWarnings shows the warnings and reloads only when warned code may be loaded.
func (c *Coordinator) OnWarnings(ctx context.Context, meta domain.CycleMetadata) error {
	c.logger.Warn(fmt.Sprintf("compiled with %d warning(s)", len(meta.Warnings)))
	if err := c.dispatcher.DispatchWarnings(ctx, meta.Warnings); err != nil {
		return err
	}
	if !c.reload.LoadWarningedCode {
		c.logger.Debug("reload skipped: cycle has warnings")
		return nil
	}
	return c.reloadChanged(ctx)
}

// OnException sends the failure to the client overlay. Nothing is reloaded.
func (c *Coordinator) OnException(ctx context.Context, meta domain.CycleMetadata) error {
	c.logger.Error(&domain.CompileError{Exception: *meta.Exception})
	return c.dispatcher.DispatchException(ctx, *meta.Exception)
}

func (c *Coordinator) reloadChanged(ctx context.Context) error {
	units, err := c.compiler.Units(ctx)
	if err != nil {
		c.logger.Error(err)
		return err
	}

	if !c.primed {
		c.primeUnits(units)
		return nil
	}

	graph, err := domain.NewGraph(units)
	if err != nil {
		c.logger.Error(err)
		return err
	}

	changed := c.detector.Detect(units)
	if len(changed) == 0 {
		c.logger.Debug("no changed units")
		return nil
	}

	plan := domain.NewReloadPlan(graph, graph.Closure(changed))
	return c.dispatcher.Dispatch(ctx, graph, plan)
}

// prime seeds the watermark from the current manifest. Without a manifest the first
// reloadable cycle seeds it instead.
func (c *Coordinator) prime(ctx context.Context) {
	units, err := c.compiler.Units(ctx)
	if err != nil {
		c.logger.Debug("watermark not seeded: " + err.Error())
		return
	}
	c.primeUnits(units)
}

func (c *Coordinator) primeUnits(units []domain.SourceUnit) {
	c.detector.Prime(units)
	c.primed = true
	c.logger.Info(fmt.Sprintf("watching %d unit(s)", len(units)))
}
