package ioloop

import "github.com/baxromumarov/rangeio"

// FromChan returns a range over the values received from ch. The range ends
// when ch is closed.
//
// Each request receives one value in a goroutine tracked by loop. Closing
// the range stops that goroutine; a value it had already received is
// dropped.
//
// Panics if loop or ch is nil.
func FromChan[T any](loop *Loop, ch <-chan T, opts ...rangeio.Option) *rangeio.Range[T] {
	if loop == nil || ch == nil {
		panic("ioloop: FromChan requires a non-nil loop and channel")
	}
	return rangeio.New[T](&chanSource[T]{
		loop: loop,
		ch:   ch,
		done: make(chan struct{}),
	}, opts...)
}

type chanSource[T any] struct {
	loop   *Loop
	ch     <-chan T
	done   chan struct{}
	tok    rangeio.Token[T]
	closed bool
}

func (s *chanSource[T]) Request(tok rangeio.Token[T]) {
	if s.closed {
		tok.Invoke(rangeio.Fail[T](rangeio.ErrCancelled))
		return
	}
	s.tok = tok
	s.loop.Go("recv", func() {
		select {
		case v, ok := <-s.ch:
			s.loop.Post(func() { s.complete(v, ok) })
		case <-s.done:
		}
	})
}

func (s *chanSource[T]) complete(v T, ok bool) {
	tok := s.tok
	if s.closed || !tok.Pending() {
		return
	}
	s.tok = rangeio.Token[T]{}
	if !ok {
		tok.Invoke(rangeio.End[T]())
		return
	}
	tok.Invoke(rangeio.Value(v))
}

func (s *chanSource[T]) Cancel() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	if tok := s.tok; tok.Pending() {
		s.tok = rangeio.Token[T]{}
		tok.Invoke(rangeio.Fail[T](rangeio.ErrCancelled))
	}
}
