package rangeio

import "path"

// Pair holds two values paired from two ranges.
// It is used by [Zip].
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip pairs elements of a and b positionally.
//
// Every request is forwarded to both sides, so both may be awaiting their
// upstream at the same time; the pair is delivered once both have completed,
// whichever completes first. a is asked first, and b is not asked at all if
// a ends or fails synchronously.
//
// The first End or error from either side is delivered, and the other side
// is closed, cancelling its in-flight request if it has one.
//
// Panics if a or b is nil.
func Zip[A, B any](a *Range[A], b *Range[B]) *Range[Pair[A, B]] {
	if a == nil {
		panic("rangeio: Zip requires non-nil first range")
	}
	if b == nil {
		panic("rangeio: Zip requires non-nil second range")
	}

	stop := func() {
		a.Close()
		b.Close()
	}

	return newRange(a.cfg, path.Join(a.info.Name, "zip"), func(tok Token[Pair[A, B]]) {
		var (
			pair Pair[A, B]
			got  int
			done bool
		)

		a.RequestNext(NewToken(func(res Result[A]) {
			if done {
				return
			}
			v, ok := res.Get()
			if !ok {
				done = true
				b.Close()
				tok.Invoke(retype[Pair[A, B]](res))
				return
			}
			pair.First = v
			if got++; got == 2 {
				done = true
				tok.Invoke(Value(pair))
			}
		}))

		if done {
			return
		}

		b.RequestNext(NewToken(func(res Result[B]) {
			if done {
				return
			}
			v, ok := res.Get()
			if !ok {
				done = true
				a.Close()
				tok.Invoke(retype[Pair[A, B]](res))
				return
			}
			pair.Second = v
			if got++; got == 2 {
				done = true
				tok.Invoke(Value(pair))
			}
		}))
	}, stop)
}
