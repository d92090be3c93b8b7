// Package rangeio combines lazy ranges and asynchronous I/O.
//
// A [Range] is a sequence that produces its next element only when asked,
// and answers asynchronously: [Range.RequestNext] takes a single-shot
// [Token] that is invoked with the element once the underlying I/O has
// delivered it. Ranges compose with the same vocabulary used for in-memory
// sequences, so a pipeline over a serial port reads like one over a slice:
//
//	r := rangeio.Transform(uart, decode).
//	    Filter(valid).
//	    Take(16)
//	rangeio.Collect(r, func(frames []Frame, err error) { ... })
//
// # Sources
//
// The core never touches sockets, files or timers itself. It consumes one
// narrow capability, [Source], whose Request method must invoke its token
// exactly once, either before returning or later from whatever event
// delivers the I/O completion. [New] wraps a Source in a Range. [FromSlice],
// [FromFunc], [FromSeq], [Empty] and [FromError] cover in-memory cases; the
// ioloop and fdio packages provide sources backed by goroutines, poll ticks
// and non-blocking file descriptors.
//
// # Results
//
// Every completion carries a [Result]: a value, End, or an error. End is not
// an error. Errors reported by a source are wrapped once in [*SourceError]
// for attribution and then travel through every adaptor unchanged. The first
// End or error reached anywhere in the chain terminates the range: later
// requests complete immediately with the same outcome.
//
// # Adaptors
//
//   - [Range.Filter], [Range.Take], [Range.TakeWhile], [Range.TakeUntil],
//     [Range.Skip], [Range.Peek]: same-type adaptors.
//   - [Transform], [TryTransform], [Scan]: type-changing adaptors.
//   - [Zip]: positional pairing of two ranges with both requests in flight.
//   - [Join], [FlatMap]: flattening of ranges of ranges.
//   - [Pipe] and [Stage]: reusable, composable adaptor chains.
//
// # Execution Model
//
// There is no scheduler, run loop or goroutine in this package. Adaptors
// nest tokens: the token an adaptor hands upstream runs the adaptor's logic
// and then invokes the token it was given. Whatever drives the innermost
// source (an interrupt handler, a poll tick, an ioloop.Loop) is the only
// execution driver, and the whole continuation chain unwinds on its stack.
//
// Each range admits one outstanding request at a time. Requesting again
// before the previous request completed is a programming error and panics,
// as does invoking a token twice. Build with -tags rangeio_debug to also
// crash on tokens that are dropped without being invoked.
//
// # Cancellation
//
// [Range.Close] cancels a pipeline from its outermost range. Closing
// propagates upstream to the sources; an outstanding request is completed
// exactly once with [ErrCancelled], and nothing is delivered afterwards.
//
// # Sinks
//
// [Sink] is the write-side counterpart of Source. [Copy] pumps a range into
// a sink. [Demux], [SinkTransform], [SinkFilter], [SinkTakeWhile] and
// [Before] adapt sinks.
package rangeio
