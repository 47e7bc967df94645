package client

import (
	"slices"
	"strings"
	"time"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine re-requires modules named by a reload command.
type Engine struct {
	loader   ports.ModuleLoader
	hook     ports.ReloadHook
	registry *Registry
	state    *StateCell
	sched    Scheduler
	logger   ports.Logger

	immutable []string
	delay     time.Duration
	now       func() time.Time

	loaded map[string]struct{}
}

// EngineConfig holds the engine's policy knobs.
type EngineConfig struct {
	// Immutable lists module id prefixes that are never reloaded.
	Immutable []string
	// AfterReloadDelay is how long to wait before after-reload when the runtime has no hook.
	AfterReloadDelay time.Duration
	// Now overrides the clock used for episode timestamps.
	Now func() time.Time
}

// NewEngine creates an Engine. If loader also implements ports.ReloadHook, after-reload
// waits for it instead of the fixed delay.
func NewEngine(
	loader ports.ModuleLoader,
	registry *Registry,
	state *StateCell,
	sched Scheduler,
	logger ports.Logger,
	cfg EngineConfig,
) *Engine {
	e := &Engine{
		loader:    loader,
		registry:  registry,
		state:     state,
		sched:     sched,
		logger:    logger,
		immutable: cfg.Immutable,
		delay:     cfg.AfterReloadDelay,
		now:       cfg.Now,
		loaded:    make(map[string]struct{}),
	}
	if hook, ok := loader.(ports.ReloadHook); ok {
		e.hook = hook
	}
	if e.immutable == nil {
		e.immutable = domain.DefaultImmutablePrefixes
	}
	if e.delay <= 0 {
		e.delay = domain.DefaultAfterReloadDelay
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Require loads a module for the first time and records it as loaded.
func (e *Engine) Require(id string) error {
	if err := e.loader.Require(domain.NewModuleID(id)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReloadFailed.Error()), "module", id)
	}
	e.loaded[id] = struct{}{}
	return nil
}

// IsLoaded reports whether id has been required successfully.
func (e *Engine) IsLoaded(id string) bool {
	_, ok := e.loaded[id]
	return ok
}

// Loaded returns the loaded module ids, sorted.
func (e *Engine) Loaded() []string {
	out := make([]string, 0, len(e.loaded))
	for id := range e.loaded {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Eligible reports whether id may be reloaded.
func (e *Engine) Eligible(id string, meta domain.Eligibility) bool {
	if e.isImmutable(id) || meta.NeverReload {
		return false
	}
	return meta.AlwaysReload || e.IsLoaded(id)
}

// Filter returns the eligible subset of ids, in order.
func (e *Engine) Filter(ids []string, meta map[string]domain.Eligibility) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if e.Eligible(id, meta[id]) {
			out = append(out, id)
		}
	}
	return out
}

// Reload applies a reload command. before-reload carries the full list, every eligible module
// is re-required in order and the first failure is returned at once. On success a new episode
// begins and after-reload follows once the runtime hook fires or the fallback delay passes.
// The reload state is cleared on every path, a panicking loader included.
func (e *Engine) Reload(ids []string, meta map[string]domain.Eligibility) error {
	began := false
	defer func() {
		if !began {
			e.state.Clear()
		}
	}()

	e.registry.Emit(Event{Name: domain.EventBeforeReload, Namespaces: slices.Clone(ids)})

	eligible := e.Filter(ids, meta)
	for _, id := range eligible {
		if err := e.Require(id); err != nil {
			e.logger.Error(err)
			return err
		}
	}

	started := e.now()
	e.state.Set(ReloadState{ReloadStarted: started})

	finish := func() {
		defer e.state.ClearIf(started)
		e.registry.Emit(Event{Name: domain.EventAfterReload, ReloadedNamespaces: eligible})
	}
	if e.hook != nil {
		e.hook.AfterReloads(func() { e.sched.Post(finish) })
	} else {
		e.sched.AfterFunc(e.delay, finish)
	}
	began = true
	return nil
}

func (e *Engine) isImmutable(id string) bool {
	for _, p := range e.immutable {
		if id == p || strings.HasPrefix(id, p+".") {
			return true
		}
	}
	return false
}
