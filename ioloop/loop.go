package ioloop

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/eapache/queue"
)

// A Poller is checked once per [Loop.Tick]. Poll runs on the loop and must
// not block; it typically checks whether a device has data and, if so,
// completes a pending token.
type Poller interface {
	Poll()
}

// A Loop is the single execution context that drives rangeio pipelines.
//
// Completions produced by goroutines, timers or file descriptors are posted
// to the loop, which runs them one at a time, in FIFO order, on whichever
// goroutine calls [Loop.Run]. Every token of a pipeline driven by a Loop is
// therefore invoked from the loop and never concurrently.
//
// Manually calling Run is optional. [Loop.Autorun] sets up a function that
// is called whenever a callback is posted to an idle loop, and
// [Loop.RunUntil] drives the loop from the calling goroutine until a
// condition holds.
type Loop struct {
	cfg config

	mu       sync.Mutex
	q        *queue.Queue
	running  bool
	draining bool
	autorun  func()
	pollers  []Poller
	panics   []*PanicError

	wake chan struct{}
	wg   sync.WaitGroup
}

// New returns an idle Loop.
func New(opts ...Option) *Loop {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loop{
		cfg:  cfg,
		q:    queue.New(),
		wake: make(chan struct{}, 1),
	}
}

// Autorun sets up f to be called whenever a callback is posted to a loop
// that is not running. f must arrange for [Loop.Run] to be called, e.g. by
// calling it directly or by signalling the goroutine that owns the loop.
//
// The loop never calls f twice at the same time. If f blocks, Post blocks
// too.
func (l *Loop) Autorun(f func()) {
	l.mu.Lock()
	l.autorun = f
	l.mu.Unlock()
}

// Post queues f to run on the loop.
//
// Post is safe for concurrent use; it is how goroutines hand completions
// back to the loop.
func (l *Loop) Post(f func()) {
	if f == nil {
		panic("ioloop: Post requires a non-nil function")
	}

	var autorun func()

	l.mu.Lock()
	if !l.running && l.autorun != nil {
		l.running = true
		autorun = l.autorun
	}
	l.q.Add(f)
	l.mu.Unlock()

	l.wakeup()

	if autorun != nil {
		autorun()
	}
}

// Run pops and runs every queued callback until the queue is empty,
// including callbacks posted while it runs.
//
// A panicking callback does not stop the loop. The first panic is re-raised
// as a [*PanicError] once the queue is empty.
//
// Calling Run while the loop is already draining, e.g. from inside a
// callback, returns immediately: the active Run picks up the new work.
func (l *Loop) Run() {
	l.mu.Lock()
	if l.draining {
		l.mu.Unlock()
		return
	}
	l.running, l.draining = true, true

	for l.q.Length() != 0 {
		f := l.q.Remove().(func())
		l.mu.Unlock()
		l.try(f)
		l.mu.Lock()
	}

	l.running, l.draining = false, false
	panics := l.panics
	l.panics = nil
	l.mu.Unlock()

	if len(panics) != 0 {
		panic(panics[0])
	}
}

// Tick polls every registered [Poller] once and then runs the queue.
func (l *Loop) Tick() {
	l.mu.Lock()
	for _, p := range l.pollers {
		l.q.Add(p.Poll)
	}
	l.mu.Unlock()

	l.Run()
}

// AddPoller registers p to be polled on every [Loop.Tick].
// Adding a Poller that is already registered has no effect.
func (l *Loop) AddPoller(p Poller) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !slices.Contains(l.pollers, p) {
		l.pollers = append(l.pollers, p)
	}
}

// RemovePoller unregisters p. A Poll of p that was already scheduled by the
// current tick still runs.
func (l *Loop) RemovePoller(p Poller) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pollers = slices.DeleteFunc(l.pollers, func(q Poller) bool { return q == p })
}

// Go runs fn in a new goroutine tracked by the loop. A panic in fn is
// recovered and posted back to the loop, where [Loop.Run] re-raises it.
//
// fn must not touch ranges or tokens directly; it hands its results to the
// loop with [Loop.Post].
func (l *Loop) Go(name string, fn func()) {
	if fn == nil {
		panic("ioloop: Go requires a non-nil function")
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer func() {
			if v := recover(); v != nil {
				pe := newPanicError(v)
				if lg := l.cfg.logger; lg != nil {
					lg.Error("goroutine panicked",
						slog.String("goroutine", name),
						slog.Any("panic", pe.Value),
					)
				}
				l.Post(func() { panic(pe) })
			}
		}()
		fn()
	}()
}

// Wait blocks until every goroutine started with [Loop.Go] has returned.
// Completions they posted may still be queued; call Run to deliver them.
func (l *Loop) Wait() {
	l.wg.Wait()
}

// RunUntil drives the loop from the calling goroutine: it ticks, runs the
// queue, and returns nil as soon as done reports true. Between ticks it
// sleeps until something is posted or the poll interval elapses.
//
// RunUntil returns ctx.Err() if ctx is done first. done is evaluated on the
// loop, after each tick.
func (l *Loop) RunUntil(ctx context.Context, done func() bool) error {
	if done == nil {
		panic("ioloop: RunUntil requires a non-nil condition")
	}

	ticker := time.NewTicker(l.cfg.pollInterval)
	defer ticker.Stop()

	for {
		l.Tick()
		if done() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		case <-ticker.C:
		}
	}
}

// wakeup interrupts the wait between two ticks of RunUntil.
func (l *Loop) wakeup() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) try(f func()) {
	defer func() {
		if v := recover(); v != nil {
			pe := newPanicError(v)
			if lg := l.cfg.logger; lg != nil {
				lg.Error("callback panicked", slog.Any("panic", pe.Value))
			}
			l.mu.Lock()
			l.panics = append(l.panics, pe)
			l.mu.Unlock()
		}
	}()
	f()
}
