// Package ioloop provides an execution driver for rangeio pipelines and
// sources backed by goroutines and poll ticks.
//
// A [Loop] is a FIFO of callbacks run on a single goroutine. Blocking I/O
// runs in goroutines started with [Loop.Go]; they hand their outcome back
// with [Loop.Post], so every token is invoked on the loop. Device-style
// sources register a [Poller] instead and are checked on every
// [Loop.Tick].
//
//	loop := ioloop.New()
//	lines := ioloop.Reader(loop, conn, 512)
//	chunks, err := ioloop.Collect(ctx, loop, lines.Take(8))
//
// [Emitter] models an interrupt-driven device: it delivers at most one item
// per tick. [Reader], [FromChan] and [Writer] adapt io.Reader, channels and
// io.Writer.
package ioloop
