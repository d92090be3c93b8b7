package ioloop

import (
	"sync"

	"github.com/baxromumarov/rangeio"
	"github.com/eapache/queue"
)

// Emitter is a tick-driven source: it behaves like a device that raises at
// most one interrupt per tick. Items pushed from any goroutine are buffered,
// and each [Loop.Tick] delivers at most one of them to the pending request.
// A request is never completed from inside Request itself.
//
// Emitter implements [rangeio.Source] and [rangeio.Canceler].
type Emitter[T any] struct {
	loop *Loop

	mu       sync.Mutex
	items    *queue.Queue
	finished bool
	err      error
	tok      rangeio.Token[T]
	requests int
	closed   bool
}

// NewEmitter returns an Emitter polled by loop.
func NewEmitter[T any](loop *Loop) *Emitter[T] {
	if loop == nil {
		panic("ioloop: NewEmitter requires a non-nil loop")
	}
	e := &Emitter[T]{
		loop:  loop,
		items: queue.New(),
	}
	loop.AddPoller(e)
	return e
}

// Range wraps e in a [rangeio.Range].
func (e *Emitter[T]) Range(opts ...rangeio.Option) *rangeio.Range[T] {
	return rangeio.New[T](e, opts...)
}

// Push buffers vs for delivery, in order. It is safe for concurrent use.
// Panics if called after Finish or Fail.
func (e *Emitter[T]) Push(vs ...T) {
	e.mu.Lock()
	if e.finished {
		e.mu.Unlock()
		panic("ioloop: Push called after Finish")
	}
	for _, v := range vs {
		e.items.Add(v)
	}
	e.mu.Unlock()
	e.loop.wakeup()
}

// Finish ends the sequence once the buffered items have been delivered.
func (e *Emitter[T]) Finish() {
	e.mu.Lock()
	e.finished = true
	e.mu.Unlock()
	e.loop.wakeup()
}

// Fail ends the sequence with err once the buffered items have been
// delivered.
func (e *Emitter[T]) Fail(err error) {
	if err == nil {
		panic("ioloop: Fail requires a non-nil error")
	}
	e.mu.Lock()
	e.finished = true
	e.err = err
	e.mu.Unlock()
	e.loop.wakeup()
}

// Requests returns how many requests e has received.
func (e *Emitter[T]) Requests() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.requests
}

// Request implements [rangeio.Source]. The token is completed on a later
// tick.
func (e *Emitter[T]) Request(tok rangeio.Token[T]) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		tok.Invoke(rangeio.Fail[T](rangeio.ErrCancelled))
		return
	}
	e.requests++
	e.tok = tok
	e.mu.Unlock()
}

// Poll implements [Poller]. It delivers at most one buffered item, or the
// end of the sequence once the buffer is drained.
func (e *Emitter[T]) Poll() {
	e.mu.Lock()
	tok := e.tok
	if !tok.Pending() {
		e.mu.Unlock()
		return
	}

	var res rangeio.Result[T]
	switch {
	case e.items.Length() != 0:
		res = rangeio.Value(e.items.Remove().(T))
	case e.finished && e.err != nil:
		res = rangeio.Fail[T](e.err)
	case e.finished:
		res = rangeio.End[T]()
	default:
		e.mu.Unlock()
		return
	}
	e.tok = rangeio.Token[T]{}
	e.mu.Unlock()

	tok.Invoke(res)
}

// Cancel implements [rangeio.Canceler]. It stops polling and completes a
// pending request with [rangeio.ErrCancelled].
func (e *Emitter[T]) Cancel() {
	e.loop.RemovePoller(e)

	e.mu.Lock()
	e.closed = true
	tok := e.tok
	e.tok = rangeio.Token[T]{}
	e.mu.Unlock()

	if tok.Pending() {
		tok.Invoke(rangeio.Fail[T](rangeio.ErrCancelled))
	}
}
