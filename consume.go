package rangeio

// Drain pulls r until it ends, fails, or onValue returns false.
//
// onValue is called with each element in order. onDone is called exactly
// once: with nil when r ends or onValue stops the drain, or with the error
// that failed r. Synchronous completions are consumed in a loop, so draining
// a long synchronous range does not grow the stack.
//
// Drain returns as soon as the first request is outstanding; the rest of
// the work happens in the completions.
//
// Panics if r, onValue or onDone is nil.
func Drain[T any](r *Range[T], onValue func(T) bool, onDone func(error)) {
	if r == nil {
		panic("rangeio: Drain requires a non-nil range")
	}
	if onValue == nil || onDone == nil {
		panic("rangeio: Drain requires non-nil callbacks")
	}

	l := &loop{}
	l.step = func() {
		r.RequestNext(NewToken(func(res Result[T]) {
			switch res.Kind() {
			case KindValue:
				if onValue(res.val) {
					l.again()
					return
				}
				onDone(nil)
			case KindEnd:
				onDone(nil)
			default:
				onDone(res.err)
			}
		}))
	}
	l.run()
}

// ForEach calls fn with every element of r, then onDone with nil or the
// error that failed r.
func (r *Range[T]) ForEach(fn func(T), onDone func(error)) {
	if fn == nil {
		panic("rangeio: ForEach requires a non-nil function")
	}
	Drain(r, func(v T) bool {
		fn(v)
		return true
	}, onDone)
}

// Collect gathers every element of r into a slice and passes it to done.
// If r fails, done receives the elements delivered before the failure
// together with the error.
func Collect[T any](r *Range[T], done func([]T, error)) {
	if done == nil {
		panic("rangeio: Collect requires a non-nil callback")
	}
	var items []T
	Drain(r, func(v T) bool {
		items = append(items, v)
		return true
	}, func(err error) {
		done(items, err)
	})
}
