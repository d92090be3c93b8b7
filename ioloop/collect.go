package ioloop

import (
	"context"

	"github.com/baxromumarov/rangeio"
)

// Collect drives loop from the calling goroutine until r completes, and
// returns its elements. On failure it returns the elements delivered before
// the error together with the error.
//
// If ctx is done first, r is closed and ctx.Err() is returned. The caller
// must not be running loop already.
func Collect[T any](ctx context.Context, loop *Loop, r *rangeio.Range[T]) ([]T, error) {
	var (
		items []T
		err   error
		done  bool
	)
	loop.Post(func() {
		rangeio.Collect(r, func(vs []T, e error) {
			items, err, done = vs, e, true
		})
	})

	if cerr := loop.RunUntil(ctx, func() bool { return done }); cerr != nil {
		loop.Post(r.Close)
		loop.Run()
		return items, cerr
	}
	return items, err
}
