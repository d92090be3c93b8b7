package ioloop

import "github.com/baxromumarov/rangeio"

// recorder collects every result delivered to the tokens it hands out.
type recorder[T any] struct {
	results []rangeio.Result[T]
}

func (rec *recorder[T]) token() rangeio.Token[T] {
	return rangeio.NewToken(func(r rangeio.Result[T]) {
		rec.results = append(rec.results, r)
	})
}

func (rec *recorder[T]) values() []T {
	var out []T
	for _, r := range rec.results {
		if v, ok := r.Get(); ok {
			out = append(out, v)
		}
	}
	return out
}

func (rec *recorder[T]) ended() bool {
	n := len(rec.results)
	return n != 0 && !rec.results[n-1].IsValue()
}

// recoverPanic runs f and returns the value it panicked with, or nil.
func recoverPanic(f func()) (v any) {
	defer func() { v = recover() }()
	f()
	return nil
}
