package rangeio

// Transform returns a range delivering f(v) for every element v of r.
// End and errors pass through unchanged.
//
// f should be a pure function of its argument; composing Transform(f) and
// Transform(g) is then equivalent to a single Transform of g∘f.
//
// Note: This is a function and not a method because Go does not support
// generic methods on generic types.
//
// Panics if r or f is nil.
func Transform[T, U any](r *Range[T], f func(T) U) *Range[U] {
	if r == nil {
		panic("rangeio: Transform requires a non-nil range")
	}
	if f == nil {
		panic("rangeio: Transform requires a non-nil function")
	}

	return derive(r, "transform", func(tok Token[U]) {
		r.RequestNext(NewToken(func(res Result[T]) {
			tok.Invoke(mapResult(res, f))
		}))
	})
}

// TryTransform is like [Transform] but f may fail. An error returned by f
// fails the resulting range with that error.
//
// Panics if r or f is nil.
func TryTransform[T, U any](r *Range[T], f func(T) (U, error)) *Range[U] {
	if r == nil {
		panic("rangeio: TryTransform requires a non-nil range")
	}
	if f == nil {
		panic("rangeio: TryTransform requires a non-nil function")
	}

	return derive(r, "try-transform", func(tok Token[U]) {
		r.RequestNext(NewToken(func(res Result[T]) {
			v, ok := res.Get()
			if !ok {
				tok.Invoke(retype[U](res))
				return
			}
			u, err := f(v)
			if err != nil {
				tok.Invoke(Fail[U](err))
				return
			}
			tok.Invoke(Value(u))
		}))
	})
}

// Scan returns a range that applies fn cumulatively to each element,
// delivering each intermediate accumulation. The first delivered value is
// fn(initial, first).
//
// Panics if r or fn is nil.
func Scan[T, R any](r *Range[T], initial R, fn func(R, T) R) *Range[R] {
	if r == nil {
		panic("rangeio: Scan requires a non-nil range")
	}
	if fn == nil {
		panic("rangeio: Scan requires a non-nil accumulator")
	}

	acc := initial
	return derive(r, "scan", func(tok Token[R]) {
		r.RequestNext(NewToken(func(res Result[T]) {
			v, ok := res.Get()
			if !ok {
				tok.Invoke(retype[R](res))
				return
			}
			acc = fn(acc, v)
			tok.Invoke(Value(acc))
		}))
	})
}
