// Package client implements the runtime side of hot reload: a single-threaded event loop
// that applies reload commands, tracks the reload state of the current episode and
// renders diagnostics through a serial overlay queue.
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scheduler runs tasks on the client's single logical thread.
type Scheduler interface {
	// Post queues task to run after everything already queued.
	Post(task func())
	// AfterFunc queues task once d has elapsed. stop cancels it if it has not been queued yet.
	AfterFunc(d time.Duration, task func()) (stop func() bool)
}

var _ Scheduler = (*Loop)(nil)

// Loop is a cooperative event loop. All client state is touched only from its tasks.
type Loop struct {
	logger ports.Logger

	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
}

// NewLoop creates a Loop. Tasks may be posted before Run starts.
func NewLoop(logger ports.Logger) *Loop {
	return &Loop{
		logger: logger,
		wake:   make(chan struct{}, 1),
	}
}

// Post queues task. Posting to a stopped loop is a no-op.
func (l *Loop) Post(task func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// AfterFunc posts task to the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, task func()) func() bool {
	t := time.AfterFunc(d, func() { l.Post(task) })
	return t.Stop
}

// Run executes queued tasks until ctx is done. A panicking task is logged and skipped.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
	}()

	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, task := range batch {
			if ctx.Err() != nil {
				return nil
			}
			l.run(task)
		}

		if len(batch) > 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
		}
	}
}

func (l *Loop) run(task func()) {
	if err := guard(func() error { task(); return nil }); err != nil {
		l.logger.Error(err)
	}
}

// guard runs fn and reports a panic as an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.New("client task panicked"), "panic", fmt.Sprint(r))
		}
	}()
	return fn()
}
