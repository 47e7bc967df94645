// Package app implements the application layer for hotload.
package app

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/hotload/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/compiler"  //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/evaluator" //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/loader"    //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/client"
	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/hotload/internal/engine/buildstate"
	"go.trai.ch/hotload/internal/engine/changes"
	"go.trai.ch/hotload/internal/engine/dispatcher"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// EvalServer is the coordinator end of the evaluation channel.
type EvalServer interface {
	ports.Evaluator
	Serve(ctx context.Context, addr string) error
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	tracer       ports.Tracer
	mtimes       ports.ModTimeSource
	server       EvalServer
	display      ports.Display
	compilers    compiler.Factory
	watchers     watcher.Factory
	disableOTel  bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	tracer ports.Tracer,
	mtimes ports.ModTimeSource,
	server EvalServer,
	display ports.Display,
	compilers compiler.Factory,
	watchers watcher.Factory,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		tracer:       tracer,
		mtimes:       mtimes,
		server:       server,
		display:      display,
		compilers:    compilers,
		watchers:     watchers,
	}
}

// WithDisableOTel keeps the global OpenTelemetry provider untouched.
// This is primarily used for testing.
func (a *App) WithDisableOTel() *App {
	a.disableOTel = true
	return a
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	ConfigPath string
	Addr       string
}

// Watch serves the evaluation channel and recompiles on every batch of file changes
// until ctx is done.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	addr := cmp.Or(opts.Addr, cfg.Server.Addr, domain.DefaultAddr)

	if !a.disableOTel {
		setupOTel(telemetry.NewBridge(a.logger))
	}

	w, err := a.watchers(cfg)
	if err != nil {
		return err
	}
	coord := a.coordinator(cfg)

	g, ctx := errgroup.WithContext(ctx)

	// Evaluation channel
	g.Go(func() error {
		return a.server.Serve(ctx, addr)
	})

	// Coordinator loop
	g.Go(func() error {
		if err := w.Start(ctx, cfg.Watch.Paths...); err != nil {
			return err
		}
		defer func() {
			_ = w.Stop()
		}()
		a.logger.Info(fmt.Sprintf("watching %s, clients connect to ws://%s%s",
			strings.Join(cfg.Watch.Paths, ", "), addr, domain.EvalPath))

		a.runCycle(coord.Start(ctx))
		for event := range w.Events() {
			a.logger.Debug(fmt.Sprintf("%d file(s) changed", len(event.Paths)))
			a.runCycle(coord.Cycle(ctx))
		}
		if ctx.Err() == nil {
			return zerr.New("file watcher stopped unexpectedly")
		}
		return nil
	})

	return g.Wait()
}

// runCycle keeps the loop alive across failed cycles; the pipeline has already logged them.
func (a *App) runCycle(err error) {
	if err != nil {
		a.logger.Debug("cycle ended with error: " + err.Error())
	}
}

func (a *App) coordinator(cfg *domain.Config) *Coordinator {
	detector := changes.NewDetector(a.mtimes, cas.NewStoreAt(cfg.Root), a.logger)
	disp := dispatcher.New(a.server, a.tracer, a.logger, fs.NewExcerpter(cfg.Reload.ExcerptLines))
	return NewCoordinator(a.compilers(cfg), detector, disp, a.tracer, a.logger, cfg)
}

// PlanOptions configuration for the Plan method.
type PlanOptions struct {
	ConfigPath string
	// Changed lists the module ids to resolve the closure for.
	Changed []string
	// DOT appends the dependency graph in Graphviz format.
	DOT bool
	// SkipBuild reads the manifest of the previous build instead of compiling.
	SkipBuild bool
}

// Plan compiles once and writes the reload plan a change to opts.Changed would produce.
func (a *App) Plan(ctx context.Context, opts PlanOptions, out io.Writer) error {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	comp := a.compilers(cfg)

	if !opts.SkipBuild {
		meta, buildErr := buildstate.NewMachine(comp).Build(ctx, ports.BuildRequest{Targets: cfg.Build.Targets})
		if buildErr != nil {
			return buildErr
		}
		if meta.Exception != nil {
			return &domain.CompileError{Exception: *meta.Exception}
		}
		for _, w := range meta.Warnings {
			a.logger.Warn(fmt.Sprintf("%s:%d:%d: %s", w.Location.File, w.Location.Line, w.Location.Column, w.Text))
		}
	}

	units, err := comp.Units(ctx)
	if err != nil {
		return err
	}
	graph, err := domain.NewGraph(units)
	if err != nil {
		return err
	}

	changed := domain.ModuleIDs(opts.Changed...)
	for _, id := range changed {
		if _, ok := graph.Unit(id); !ok {
			return zerr.With(domain.ErrUnknownModule, "module", id.String())
		}
	}

	plan := domain.NewReloadPlan(graph, graph.Closure(changed))
	for _, id := range plan.Modules {
		line := id.String()
		if flags := eligibilityFlags(plan.Eligibility[id]); flags != "" {
			line += " (" + flags + ")"
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return zerr.Wrap(err, "failed to write plan")
		}
	}
	if opts.DOT {
		if _, err := io.WriteString(out, graph.DOT()); err != nil {
			return zerr.Wrap(err, "failed to write graph")
		}
	}
	return nil
}

func eligibilityFlags(e domain.Eligibility) string {
	var flags []string
	if e.AlwaysReload {
		flags = append(flags, "always-reload")
	}
	if e.NeverReload {
		flags = append(flags, "never-reload")
	}
	return strings.Join(flags, ", ")
}

// ClientOptions configuration for the Client method.
type ClientOptions struct {
	ConfigPath string
	Addr       string
	// Preload lists the module ids to require before the first reload arrives.
	Preload []string
}

// Client runs a headless client runtime connected to the coordinator until the connection
// closes or ctx is done.
func (a *App) Client(ctx context.Context, opts ClientOptions) error {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	addr := cmp.Or(opts.Addr, cfg.Server.Addr, domain.DefaultAddr)

	modules := loader.New(cfg.Client.OutputDir, a.logger)
	session := client.NewSession(modules, a.display, a.logger, client.Config{
		Engine: client.EngineConfig{
			Immutable:        cfg.Client.Immutable,
			AfterReloadDelay: cfg.Client.AfterReloadDelay,
		},
	})
	agent := evaluator.NewAgent(addr, a.logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// Session loop
	g.Go(func() error {
		return session.Run(ctx)
	})

	// Connection
	g.Go(func() error {
		defer cancel()
		if len(opts.Preload) > 0 {
			if err := session.Preload(ctx, opts.Preload); err != nil {
				return err
			}
		}
		a.logger.Debug("dialing " + agent.URL())
		return agent.Run(ctx, session)
	})

	return g.Wait()
}

func (a *App) loadConfig(path string) (*domain.Config, error) {
	if path != "" {
		return a.configLoader.LoadFile(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}
	return a.configLoader.Load(cwd)
}

// setupOTel configures the OpenTelemetry SDK with the logging bridge.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
