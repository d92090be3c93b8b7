package rangeio

// Join flattens a range of ranges. Each inner range is drained completely,
// up to its End, before the next element of rr is requested. An error from
// rr or from an inner range fails the joined range. Exhausted inner ranges
// are closed to release them; a nil inner range counts as empty.
//
// Panics if rr is nil.
func Join[T any](rr *Range[*Range[T]]) *Range[T] {
	if rr == nil {
		panic("rangeio: Join requires a non-nil range")
	}

	var (
		out   Token[T]
		inner *Range[T]
	)
	l := &loop{}
	l.step = func() {
		if inner == nil {
			rr.RequestNext(NewToken(func(res Result[*Range[T]]) {
				in, ok := res.Get()
				if !ok {
					out.Invoke(retype[T](res))
					return
				}
				inner = in
				l.again()
			}))
			return
		}

		cur := inner
		cur.RequestNext(NewToken(func(res Result[T]) {
			if res.IsEnd() {
				inner = nil
				cur.Close()
				l.again()
				return
			}
			out.Invoke(res)
		}))
	}

	r := derive(rr, "join", func(tok Token[T]) {
		out = tok
		l.run()
	})
	r.stop = func() {
		if inner != nil {
			inner.Close()
			inner = nil
		}
		rr.Close()
	}
	return r
}

// FlatMap maps every element of r to a range with f and joins the results.
// It is equivalent to Join(Transform(r, f)).
//
// Panics if r or f is nil.
func FlatMap[T, U any](r *Range[T], f func(T) *Range[U]) *Range[U] {
	return Join(Transform(r, f))
}
