package client

import (
	"context"
	"encoding/json"
	"time"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
)

var _ ports.Evaluator = (*Session)(nil)

// Config configures a Session.
type Config struct {
	Engine EngineConfig
}

// Session owns all client state: the loop, the listener registry, the reload state cell,
// the reload engine, the overlay and the payload interpreter.
type Session struct {
	loop        *Loop
	registry    *Registry
	state       *StateCell
	engine      *Engine
	overlay     *Overlay
	interpreter *Interpreter
	loader      ports.ModuleLoader
	logger      ports.Logger
	now         func() time.Time
}

// NewSession wires a Session around loader and display.
func NewSession(loader ports.ModuleLoader, display ports.Display, logger ports.Logger, cfg Config) *Session {
	return newSession(NewLoop(logger), loader, display, logger, cfg)
}

func newSession(
	loop *Loop,
	loader ports.ModuleLoader,
	display ports.Display,
	logger ports.Logger,
	cfg Config,
) *Session {
	s := &Session{
		loop:        loop,
		registry:    NewRegistry(logger),
		state:       NewStateCell(),
		interpreter: NewInterpreter(),
		loader:      loader,
		logger:      logger,
		now:         cfg.Engine.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.engine = NewEngine(loader, s.registry, s.state, loop, logger, cfg.Engine)
	s.overlay = NewOverlay(display, s.state, loop)

	s.interpreter.Register(domain.EntryReload, s.reloadEntry)
	s.interpreter.Register(domain.EntryWarnings, s.warningsEntry)
	s.interpreter.Register(domain.EntryException, s.exceptionEntry)
	s.interpreter.Register(domain.EntryAddDependency, s.addDependencyEntry)
	return s
}

// Run drives the session loop until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	return s.loop.Run(ctx)
}

// Evaluate runs a coordinator payload on the loop and waits for it to finish. A panicking
// entry point is reported as an error so the coordinator always gets an answer.
func (s *Session) Evaluate(ctx context.Context, code string) (string, error) {
	type result struct {
		err error
	}
	done := make(chan result, 1)
	s.loop.Post(func() {
		done <- result{err: guard(func() error { return s.interpreter.Eval(code) })}
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		return "nil", nil
	}
}

// Preload requires modules before the first reload so the engine knows they are loaded.
func (s *Session) Preload(ctx context.Context, ids []string) error {
	done := make(chan error, 1)
	s.loop.Post(func() {
		done <- guard(func() error {
			for _, id := range ids {
				if err := s.engine.Require(domain.Mangle(id)); err != nil {
					return err
				}
			}
			return nil
		})
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// Listen registers h for event under key on the loop.
func (s *Session) Listen(key string, event domain.EventName, h Handler) {
	s.loop.Post(func() { s.registry.Listen(key, event, h) })
}

// Unlisten removes the handler registered for event under key.
func (s *Session) Unlisten(key string, event domain.EventName) {
	s.loop.Post(func() { s.registry.Unlisten(key, event) })
}

func (s *Session) reloadEntry(args []json.RawMessage) error {
	var ids []string
	var meta map[string]domain.Eligibility
	if err := decodeArgs(args, &ids, &meta); err != nil {
		return err
	}
	return s.engine.Reload(ids, meta)
}

func (s *Session) warningsEntry(args []json.RawMessage) error {
	var records []domain.WarningRecord
	if err := decodeArgs(args, &records); err != nil {
		return err
	}
	warnings := make([]domain.Warning, len(records))
	for i, r := range records {
		warnings[i] = r.Warning()
	}

	s.registry.Emit(Event{Name: domain.EventCompileWarnings, Warnings: warnings})
	s.state.Set(ReloadState{ReloadStarted: s.now(), Warnings: warnings})
	return nil
}

func (s *Session) exceptionEntry(args []json.RawMessage) error {
	var record domain.ExceptionRecord
	if err := decodeArgs(args, &record); err != nil {
		return err
	}
	exc := record.Exception()

	s.registry.Emit(Event{Name: domain.EventCompileException, Exception: &exc})
	s.state.Set(ReloadState{ReloadStarted: s.now(), Exception: &exc})
	return nil
}

func (s *Session) addDependencyEntry(args []json.RawMessage) error {
	var origin string
	var provides, requires []string
	if err := decodeArgs(args, &origin, &provides, &requires); err != nil {
		return err
	}
	return s.loader.AddDependency(origin, provides, requires)
}
