package rangeio

// Filter returns a range delivering only the elements of r for which p
// returns true, in their original order.
//
// A rejected element is never reported to the caller: Filter requests the
// next upstream element instead, until p holds, r ends, or r fails. Runs of
// synchronously rejected elements are consumed in a loop, not by recursion.
//
// Panics if p is nil.
func (r *Range[T]) Filter(p func(T) bool) *Range[T] {
	if p == nil {
		panic("rangeio: Filter requires a non-nil predicate")
	}

	var out Token[T]
	l := &loop{}
	l.step = func() {
		r.RequestNext(NewToken(func(res Result[T]) {
			if v, ok := res.Get(); ok && !p(v) {
				l.again()
				return
			}
			out.Invoke(res)
		}))
	}

	return derive(r, "filter", func(tok Token[T]) {
		out = tok
		l.run()
	})
}

// Take limits r to its first n elements.
//
// Take never requests more than n elements from r: once n values have been
// delivered, further requests complete with End without touching r.
//
// Panics if n is negative.
func (r *Range[T]) Take(n int) *Range[T] {
	if n < 0 {
		panic("rangeio: Take requires n >= 0")
	}

	remaining := n
	return derive(r, "take", func(tok Token[T]) {
		if remaining == 0 {
			tok.Invoke(End[T]())
			return
		}
		r.RequestNext(NewToken(func(res Result[T]) {
			if res.IsValue() {
				remaining--
			}
			tok.Invoke(res)
		}))
	})
}

// TakeWhile delivers elements of r while p holds. The first element for
// which p returns false is dropped and ends the range for good.
//
// Panics if p is nil.
func (r *Range[T]) TakeWhile(p func(T) bool) *Range[T] {
	if p == nil {
		panic("rangeio: TakeWhile requires a non-nil predicate")
	}

	taking := true
	return derive(r, "take-while", func(tok Token[T]) {
		if !taking {
			tok.Invoke(End[T]())
			return
		}
		r.RequestNext(NewToken(func(res Result[T]) {
			if v, ok := res.Get(); ok && !p(v) {
				taking = false
				tok.Invoke(End[T]())
				return
			}
			tok.Invoke(res)
		}))
	})
}

// TakeUntil delivers elements of r up to and including the first one for
// which p returns true, then ends.
//
// Panics if p is nil.
func (r *Range[T]) TakeUntil(p func(T) bool) *Range[T] {
	if p == nil {
		panic("rangeio: TakeUntil requires a non-nil predicate")
	}

	done := false
	return derive(r, "take-until", func(tok Token[T]) {
		if done {
			tok.Invoke(End[T]())
			return
		}
		r.RequestNext(NewToken(func(res Result[T]) {
			if v, ok := res.Get(); ok && p(v) {
				done = true
			}
			tok.Invoke(res)
		}))
	})
}

// Skip drops the first n elements of r.
//
// Panics if n is negative.
func (r *Range[T]) Skip(n int) *Range[T] {
	if n < 0 {
		panic("rangeio: Skip requires n >= 0")
	}

	var (
		out     Token[T]
		skipped int
	)
	l := &loop{}
	l.step = func() {
		r.RequestNext(NewToken(func(res Result[T]) {
			if res.IsValue() && skipped < n {
				skipped++
				l.again()
				return
			}
			out.Invoke(res)
		}))
	}

	return derive(r, "skip", func(tok Token[T]) {
		out = tok
		l.run()
	})
}

// Peek calls fn with every element of r just before delivering it.
//
// Panics if fn is nil.
func (r *Range[T]) Peek(fn func(T)) *Range[T] {
	if fn == nil {
		panic("rangeio: Peek requires a non-nil function")
	}

	return derive(r, "peek", func(tok Token[T]) {
		r.RequestNext(NewToken(func(res Result[T]) {
			if v, ok := res.Get(); ok {
				fn(v)
			}
			tok.Invoke(res)
		}))
	})
}
