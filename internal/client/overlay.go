package client

import (
	"time"

	"go.trai.ch/hotload/internal/core/ports"
)

// Overlay renders reload episodes through a serial display queue.
// Each display task runs only after the previous one signalled completion.
type Overlay struct {
	display ports.Display
	state   *StateCell
	sched   Scheduler

	lastRendered time.Time
	queue        []func(done func())
	busy         bool
}

// NewOverlay subscribes an Overlay to state.
func NewOverlay(display ports.Display, state *StateCell, sched Scheduler) *Overlay {
	o := &Overlay{
		display: display,
		state:   state,
		sched:   sched,
	}
	state.Subscribe(o.observe)
	return o
}

// Pending returns the number of queued display tasks, including the running one.
func (o *Overlay) Pending() int {
	n := len(o.queue)
	if o.busy {
		n++
	}
	return n
}

func (o *Overlay) observe(_, next ReloadState) {
	started := next.ReloadStarted
	if started.IsZero() || !started.After(o.lastRendered) {
		return
	}
	o.lastRendered = started

	switch {
	case len(next.Warnings) > 0:
		first, rest := next.Warnings[0], next.Warnings[1:]
		o.enqueue(func(done func()) { o.display.ShowWarning(first, done) })
		if len(rest) > 0 {
			o.enqueue(func(done func()) { o.display.AppendWarnings(rest, done) })
		}
	case next.Exception != nil:
		exc := *next.Exception
		o.enqueue(func(done func()) { o.display.ShowException(exc, done) })
	default:
		o.enqueue(o.display.ShowSuccess)
	}

	o.sched.Post(func() { o.state.ClearIf(started) })
}

func (o *Overlay) enqueue(task func(done func())) {
	o.queue = append(o.queue, task)
	o.sched.Post(o.drain)
}

func (o *Overlay) drain() {
	if o.busy || len(o.queue) == 0 {
		return
	}
	task := o.queue[0]
	o.queue = o.queue[1:]
	o.busy = true

	signalled := false
	defer func() {
		if r := recover(); r != nil {
			signalled = true
			o.busy = false
			o.sched.Post(o.drain)
			panic(r)
		}
	}()
	task(func() {
		o.sched.Post(func() {
			if signalled {
				return
			}
			signalled = true
			o.busy = false
			o.drain()
		})
	})
}
