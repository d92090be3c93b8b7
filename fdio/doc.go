// Package fdio adapts non-blocking unix file descriptors (pipes, ttys,
// sockets, character devices) to rangeio sources and sinks.
//
// Reads and writes are attempted immediately. When the descriptor is not
// ready, the source or sink registers itself as an [ioloop.Poller] and checks
// readiness with a zero-timeout poll(2) on every [ioloop.Loop.Tick], so the
// loop never blocks on a descriptor.
//
// The caller keeps ownership of the descriptor: closing a range or sink
// built here does not close it.
package fdio
