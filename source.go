package rangeio

// Source is the asynchronous capability a range consumes. Concrete sources
// are built outside the core: a UART driver, a socket adapter, a timer, or
// one of the helpers in this package and in ioloop and fdio.
//
// Request must invoke tok exactly once, either before returning (synchronous
// completion) or later, from whatever event delivers the underlying I/O
// completion. The caller never issues a second Request while one is
// outstanding.
type Source[T any] interface {
	Request(tok Token[T])
}

// Canceler is implemented by sources that can abandon an outstanding request.
// Cancel must synchronously invoke a pending token with [ErrCancelled] and
// release the source. Cancel without a pending request only releases it.
type Canceler interface {
	Cancel()
}

// SourceFunc adapts an ordinary function to the [Source] interface.
type SourceFunc[T any] func(tok Token[T])

// Request calls f(tok).
func (f SourceFunc[T]) Request(tok Token[T]) {
	f(tok)
}
