package rangeio

import (
	"errors"
	"io"
	"iter"
)

// FromSlice returns a range over items. Every request completes
// synchronously.
func FromSlice[T any](items []T, opts ...Option) *Range[T] {
	var idx int
	return New(SourceFunc[T](func(tok Token[T]) {
		if idx >= len(items) {
			tok.Invoke(End[T]())
			return
		}
		v := items[idx]
		idx++
		tok.Invoke(Value(v))
	}), opts...)
}

// FromFunc returns a range whose elements are produced by calling fn once
// per request. fn returning io.EOF ends the range; any other error fails it.
// Panics if fn is nil.
func FromFunc[T any](fn func() (T, error), opts ...Option) *Range[T] {
	if fn == nil {
		panic("rangeio: FromFunc requires a non-nil function")
	}
	return New(SourceFunc[T](func(tok Token[T]) {
		v, err := fn()
		switch {
		case errors.Is(err, io.EOF):
			tok.Invoke(End[T]())
		case err != nil:
			tok.Invoke(Fail[T](err))
		default:
			tok.Invoke(Value(v))
		}
	}), opts...)
}

// FromSeq returns a range over the values of seq. The iterator is pulled one
// value per request; closing the range stops it.
// Panics if seq is nil.
func FromSeq[T any](seq iter.Seq[T], opts ...Option) *Range[T] {
	if seq == nil {
		panic("rangeio: FromSeq requires a non-nil sequence")
	}
	next, stop := iter.Pull(seq)
	return New(&seqSource[T]{next: next, stop: stop}, opts...)
}

type seqSource[T any] struct {
	next func() (T, bool)
	stop func()
}

func (s *seqSource[T]) Request(tok Token[T]) {
	v, ok := s.next()
	if !ok {
		s.stop()
		tok.Invoke(End[T]())
		return
	}
	tok.Invoke(Value(v))
}

func (s *seqSource[T]) Cancel() {
	s.stop()
}

// Empty returns a range that is exhausted on the first request.
func Empty[T any](opts ...Option) *Range[T] {
	return New(SourceFunc[T](func(tok Token[T]) {
		tok.Invoke(End[T]())
	}), opts...)
}

// FromError returns a range that fails with err on the first request.
// Panics if err is nil.
func FromError[T any](err error, opts ...Option) *Range[T] {
	if err == nil {
		panic("rangeio: FromError requires a non-nil error")
	}
	return New(SourceFunc[T](func(tok Token[T]) {
		tok.Invoke(Fail[T](err))
	}), opts...)
}
