package client

import (
	"fmt"
	"slices"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/zerr"
)

// Event is a lifecycle notification. Only the fields matching Name are set.
type Event struct {
	Name domain.EventName
	// Namespaces is the full requested module list of a before-reload.
	Namespaces []string
	// ReloadedNamespaces is the subset an after-reload actually re-required.
	ReloadedNamespaces []string
	// Warnings accompany compile-warnings.
	Warnings []domain.Warning
	// Exception accompanies compile-exception.
	Exception *domain.Exception
}

// Handler receives lifecycle events.
type Handler func(Event)

type listenerKey struct {
	key   string
	event domain.EventName
}

// Registry maps (key, event) to at most one handler.
type Registry struct {
	logger   ports.Logger
	handlers map[listenerKey]Handler
	order    map[domain.EventName][]string
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger ports.Logger) *Registry {
	return &Registry{
		logger:   logger,
		handlers: make(map[listenerKey]Handler),
		order:    make(map[domain.EventName][]string),
	}
}

// Listen registers h for event under key, replacing any handler already registered there.
func (r *Registry) Listen(key string, event domain.EventName, h Handler) {
	r.Unlisten(key, event)
	r.handlers[listenerKey{key, event}] = h
	r.order[event] = append(r.order[event], key)
}

// Unlisten removes the handler registered for event under key.
func (r *Registry) Unlisten(key string, event domain.EventName) {
	lk := listenerKey{key, event}
	if _, ok := r.handlers[lk]; !ok {
		return
	}
	delete(r.handlers, lk)
	r.order[event] = slices.DeleteFunc(r.order[event], func(k string) bool { return k == key })
}

// Len returns the number of handlers registered for event.
func (r *Registry) Len(event domain.EventName) int {
	return len(r.order[event])
}

// Emit delivers ev to every handler registered for its name, in registration order.
// A panicking handler is logged and does not stop delivery.
func (r *Registry) Emit(ev Event) {
	for _, key := range slices.Clone(r.order[ev.Name]) {
		h, ok := r.handlers[listenerKey{key, ev.Name}]
		if !ok {
			continue
		}
		r.deliver(key, h, ev)
	}
}

func (r *Registry) deliver(key string, h Handler, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			err := zerr.With(zerr.New("listener panicked"), "listener", key)
			r.logger.Error(zerr.With(zerr.With(err, "event", string(ev.Name)), "panic", fmt.Sprint(rec)))
		}
	}()
	h(ev)
}
