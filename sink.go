package rangeio

// Sink is the write-side counterpart of [Source]. Write must invoke tok
// exactly once: with a value when v has been written, or with an error.
// The caller never issues a second Write while one is outstanding.
type Sink[T any] interface {
	Write(v T, tok Token[struct{}])
}

// SinkFunc adapts an ordinary function to the [Sink] interface.
type SinkFunc[T any] func(v T, tok Token[struct{}])

// Write calls f(v, tok).
func (f SinkFunc[T]) Write(v T, tok Token[struct{}]) {
	f(v, tok)
}

// Written is the Result a [Sink] delivers for a successful write.
func Written() Result[struct{}] {
	return Value(struct{}{})
}

// Demux returns a Sink that writes every value to a, then to b. The write
// completes once b has completed; an error from a skips b.
// Panics if a or b is nil.
func Demux[T any](a, b Sink[T]) Sink[T] {
	if a == nil || b == nil {
		panic("rangeio: Demux requires non-nil sinks")
	}
	return SinkFunc[T](func(v T, tok Token[struct{}]) {
		a.Write(v, NewToken(func(res Result[struct{}]) {
			if !res.IsValue() {
				tok.Invoke(res)
				return
			}
			b.Write(v, tok)
		}))
	})
}

// SinkTransform returns a Sink that writes f(v) to s.
// Panics if s or f is nil.
func SinkTransform[T, U any](s Sink[U], f func(T) U) Sink[T] {
	if s == nil || f == nil {
		panic("rangeio: SinkTransform requires a non-nil sink and function")
	}
	return SinkFunc[T](func(v T, tok Token[struct{}]) {
		s.Write(f(v), tok)
	})
}

// SinkFilter returns a Sink that writes to s only the values for which p
// returns true. Rejected values complete immediately as written.
// Panics if s or p is nil.
func SinkFilter[T any](s Sink[T], p func(T) bool) Sink[T] {
	if s == nil || p == nil {
		panic("rangeio: SinkFilter requires a non-nil sink and predicate")
	}
	return SinkFunc[T](func(v T, tok Token[struct{}]) {
		if !p(v) {
			tok.Invoke(Written())
			return
		}
		s.Write(v, tok)
	})
}

// SinkTakeWhile returns a Sink that writes to s while p holds. The first
// value for which p returns false, and every value after it, completes with
// End without reaching s.
// Panics if s or p is nil.
func SinkTakeWhile[T any](s Sink[T], p func(T) bool) Sink[T] {
	if s == nil || p == nil {
		panic("rangeio: SinkTakeWhile requires a non-nil sink and predicate")
	}
	taking := true
	return SinkFunc[T](func(v T, tok Token[struct{}]) {
		if taking && !p(v) {
			taking = false
		}
		if !taking {
			tok.Invoke(End[struct{}]())
			return
		}
		s.Write(v, tok)
	})
}

// Before returns a Sink that calls fn before every write to s, e.g. to
// assert a chip-select line or emit a framing byte.
// Panics if s or fn is nil.
func Before[T any](s Sink[T], fn func()) Sink[T] {
	if s == nil || fn == nil {
		panic("rangeio: Before requires a non-nil sink and function")
	}
	return SinkFunc[T](func(v T, tok Token[struct{}]) {
		fn()
		s.Write(v, tok)
	})
}

// Copy writes every element of r to s, one write at a time, and then calls
// done with the number of elements written. done receives the first error
// from r or s; a sink completing a write with End stops the copy with a
// nil error.
//
// Panics if r, s or done is nil.
func Copy[T any](r *Range[T], s Sink[T], done func(n int, err error)) {
	if r == nil || s == nil || done == nil {
		panic("rangeio: Copy requires a non-nil range, sink and callback")
	}

	var n int
	l := &loop{}
	l.step = func() {
		r.RequestNext(NewToken(func(res Result[T]) {
			v, ok := res.Get()
			if !ok {
				done(n, res.err)
				return
			}
			s.Write(v, NewToken(func(w Result[struct{}]) {
				if !w.IsValue() {
					done(n, w.err)
					return
				}
				n++
				l.again()
			}))
		}))
	}
	l.run()
}
