package rangeio

// Stage is a reusable same-type adaptor. Stages compose with [Pipe] before
// they are applied to a range:
//
//	evens := rangeio.Pipe(
//	    rangeio.Filter(func(v int) bool { return v%2 == 0 }),
//	    rangeio.Take[int](2),
//	)
//	r := rangeio.FromSlice(items).Pipe(evens)
type Stage[T any] func(*Range[T]) *Range[T]

// Pipe composes stages left to right into a single Stage.
// Panics if any stage is nil.
func Pipe[T any](stages ...Stage[T]) Stage[T] {
	for _, s := range stages {
		if s == nil {
			panic("rangeio: Pipe requires non-nil stages")
		}
	}
	return func(r *Range[T]) *Range[T] {
		for _, s := range stages {
			r = s(r)
		}
		return r
	}
}

// Pipe applies stages to r in order and returns the outermost range.
func (r *Range[T]) Pipe(stages ...Stage[T]) *Range[T] {
	return Pipe(stages...)(r)
}

// Filter returns a Stage applying [Range.Filter].
func Filter[T any](p func(T) bool) Stage[T] {
	return func(r *Range[T]) *Range[T] { return r.Filter(p) }
}

// Take returns a Stage applying [Range.Take].
func Take[T any](n int) Stage[T] {
	return func(r *Range[T]) *Range[T] { return r.Take(n) }
}

// TakeWhile returns a Stage applying [Range.TakeWhile].
func TakeWhile[T any](p func(T) bool) Stage[T] {
	return func(r *Range[T]) *Range[T] { return r.TakeWhile(p) }
}

// TakeUntil returns a Stage applying [Range.TakeUntil].
func TakeUntil[T any](p func(T) bool) Stage[T] {
	return func(r *Range[T]) *Range[T] { return r.TakeUntil(p) }
}

// Skip returns a Stage applying [Range.Skip].
func Skip[T any](n int) Stage[T] {
	return func(r *Range[T]) *Range[T] { return r.Skip(n) }
}

// Peek returns a Stage applying [Range.Peek].
func Peek[T any](fn func(T)) Stage[T] {
	return func(r *Range[T]) *Range[T] { return r.Peek(fn) }
}

// Map returns a Stage applying a same-type [Transform].
func Map[T any](f func(T) T) Stage[T] {
	return func(r *Range[T]) *Range[T] { return Transform(r, f) }
}
