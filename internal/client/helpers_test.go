package client_test

import (
	"strings"
	"time"

	"go.trai.ch/hotload/internal/core/domain"
)

// manualScheduler runs posted tasks and timers only when the test asks it to.
type manualScheduler struct {
	queue  []func()
	timers []*manualTimer
	now    time.Duration
}

type manualTimer struct {
	at      time.Duration
	task    func()
	stopped bool
	fired   bool
}

func (s *manualScheduler) Post(task func()) {
	s.queue = append(s.queue, task)
}

func (s *manualScheduler) AfterFunc(d time.Duration, task func()) func() bool {
	t := &manualTimer{at: s.now + d, task: task}
	s.timers = append(s.timers, t)
	return func() bool {
		active := !t.stopped && !t.fired
		t.stopped = true
		return active
	}
}

// Drain runs queued tasks, including ones posted while draining.
func (s *manualScheduler) Drain() {
	for len(s.queue) > 0 {
		task := s.queue[0]
		s.queue = s.queue[1:]
		task()
	}
}

// Advance moves the clock forward, queues due timers and drains.
func (s *manualScheduler) Advance(d time.Duration) {
	s.now += d
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			s.Post(t.task)
		}
	}
	s.Drain()
}

// fakeLoader records required modules.
type fakeLoader struct {
	required     []string
	fail         map[string]error
	panics       map[string]string
	dependencies []string
}

func (l *fakeLoader) Require(id domain.ModuleID) error {
	if msg := l.panics[id.String()]; msg != "" {
		panic(msg)
	}
	if err := l.fail[id.String()]; err != nil {
		return err
	}
	l.required = append(l.required, id.String())
	return nil
}

func (l *fakeLoader) AddDependency(origin string, provides, requires []string) error {
	l.dependencies = append(l.dependencies, origin+"|"+strings.Join(provides, ",")+"|"+strings.Join(requires, ","))
	return nil
}

// hookLoader is a loader whose runtime signals when loads settle.
type hookLoader struct {
	fakeLoader
	callbacks []func()
}

func (l *hookLoader) AfterReloads(callback func()) {
	l.callbacks = append(l.callbacks, callback)
}

// fakeDisplay records display calls and holds their completion callbacks.
type fakeDisplay struct {
	calls   []string
	pending []func()
}

func (d *fakeDisplay) ShowWarning(w domain.Warning, done func()) {
	d.calls = append(d.calls, "warning:"+w.Text)
	d.pending = append(d.pending, done)
}

func (d *fakeDisplay) AppendWarnings(ws []domain.Warning, done func()) {
	texts := make([]string, len(ws))
	for i, w := range ws {
		texts[i] = w.Text
	}
	d.calls = append(d.calls, "append:"+strings.Join(texts, ","))
	d.pending = append(d.pending, done)
}

func (d *fakeDisplay) ShowException(e domain.Exception, done func()) {
	d.calls = append(d.calls, "exception:"+e.Text)
	d.pending = append(d.pending, done)
}

func (d *fakeDisplay) ShowSuccess(done func()) {
	d.calls = append(d.calls, "success")
	d.pending = append(d.pending, done)
}

// finish completes the oldest in-flight display operation.
func (d *fakeDisplay) finish() {
	done := d.pending[0]
	d.pending = d.pending[1:]
	done()
}

func at(sec int64) time.Time {
	return time.Unix(1_700_000_000+sec, 0)
}
