// Package buildstate instruments compiles and gates the reload pipeline on their outcome.
package buildstate

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
)

// State is the position of the machine in the compile lifecycle.
type State uint8

const (
	// StateIdle means no cycle is recorded.
	StateIdle State = iota
	// StateStarted means a compile is running.
	StateStarted
	// StateFinishedClean means the last compile finished without diagnostics.
	StateFinishedClean
	// StateFinishedWarnings means the last compile finished with warnings.
	StateFinishedWarnings
	// StateFinishedException means the last compile failed.
	StateFinishedException
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStarted:
		return "started"
	case StateFinishedClean:
		return "finished-clean"
	case StateFinishedWarnings:
		return "finished-with-warnings"
	case StateFinishedException:
		return "finished-with-exception"
	default:
		return "idle"
	}
}

// Observer is notified when the published cycle metadata changes.
// It runs on the goroutine that caused the change and may call Clear.
type Observer func(ctx context.Context, prev, next domain.CycleMetadata) error

// Machine wraps compiler builds and records one CycleMetadata per compile.
// Only terminal metadata and the cleared state are published to observers.
type Machine struct {
	compiler ports.Compiler
	now      func() time.Time

	mu        sync.Mutex
	state     State
	published domain.CycleMetadata
	observers map[int]Observer
	nextID    int
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// NewMachine creates a Machine in the idle state.
func NewMachine(compiler ports.Compiler, opts ...Option) *Machine {
	m := &Machine{
		compiler:  compiler,
		now:       time.Now,
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers an observer and returns a function that removes it.
func (m *Machine) Subscribe(obs Observer) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.observers[id] = obs
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Metadata returns the currently published metadata.
func (m *Machine) Metadata() domain.CycleMetadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.published
}

// Build runs one compile cycle. Compile failures do not make Build fail: they are recorded
// as the cycle exception and the machine still reaches a terminal state. The returned error
// joins whatever the observers returned for the terminal transition.
func (m *Machine) Build(ctx context.Context, req ports.BuildRequest) (domain.CycleMetadata, error) {
	m.mu.Lock()
	if m.state == StateStarted {
		m.mu.Unlock()
		return domain.CycleMetadata{}, domain.ErrBuildInProgress
	}
	m.state = StateStarted
	m.mu.Unlock()

	meta := domain.CycleMetadata{Started: m.now()}
	var fatal []domain.Exception
	report := func(d domain.CompilerDiagnostic) {
		switch d.Kind {
		case domain.KindError:
			fatal = append(fatal, domain.Exception{
				Location: d.Location,
				Text:     d.Detail,
				Type:     domain.ExceptionTypeCompile,
				Tag:      domain.ExceptionTag,
			})
		default:
			meta.Warnings = append(meta.Warnings, domain.Warning{Location: d.Location, Text: d.Detail})
		}
	}

	err := m.compiler.Build(ctx, req, report)
	meta.Finished = m.now()
	switch {
	case err != nil && len(fatal) > 0 && !isCompileError(err):
		meta.Exception = &fatal[0]
	case err != nil:
		exc := domain.ExceptionFromError(err)
		meta.Exception = &exc
	case len(fatal) > 0:
		meta.Exception = &fatal[0]
	}

	return meta, m.publish(ctx, meta)
}

// Clear returns the machine to idle and publishes the empty metadata.
func (m *Machine) Clear(ctx context.Context) error {
	return m.publish(ctx, domain.CycleMetadata{})
}

func (m *Machine) publish(ctx context.Context, next domain.CycleMetadata) error {
	m.mu.Lock()
	prev := m.published
	m.published = next
	m.state = stateOf(next)
	ids := make([]int, 0, len(m.observers))
	for id := range m.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	observers := make([]Observer, len(ids))
	for i, id := range ids {
		observers[i] = m.observers[id]
	}
	m.mu.Unlock()

	if prev.Equal(next) {
		return nil
	}
	var errs []error
	for _, obs := range observers {
		if err := obs(ctx, prev, next); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func stateOf(meta domain.CycleMetadata) State {
	switch meta.Outcome() {
	case domain.OutcomeRunning:
		return StateStarted
	case domain.OutcomeClean:
		return StateFinishedClean
	case domain.OutcomeWarnings:
		return StateFinishedWarnings
	case domain.OutcomeException:
		return StateFinishedException
	default:
		return StateIdle
	}
}

func isCompileError(err error) bool {
	var ce *domain.CompileError
	return errors.As(err, &ce)
}
