package ioloop

import (
	"io"

	"github.com/baxromumarov/rangeio"
)

// WriterSink is a [rangeio.Sink] writing byte slices to an io.Writer.
// Each write runs in a goroutine tracked by the loop and completes on the
// loop. A short write completes with io.ErrShortWrite.
type WriterSink struct {
	loop *Loop
	w    io.Writer

	tok    rangeio.Token[struct{}]
	gen    int
	closed bool
}

// Writer returns a sink writing to w.
// Panics if loop or w is nil.
func Writer(loop *Loop, w io.Writer) *WriterSink {
	if loop == nil || w == nil {
		panic("ioloop: Writer requires a non-nil loop and writer")
	}
	return &WriterSink{loop: loop, w: w}
}

// Write implements [rangeio.Sink].
func (s *WriterSink) Write(p []byte, tok rangeio.Token[struct{}]) {
	if s.closed {
		tok.Invoke(rangeio.Fail[struct{}](rangeio.ErrCancelled))
		return
	}
	if s.tok.Pending() {
		panic("ioloop: Write called while a write is outstanding")
	}

	s.tok = tok
	s.gen++
	gen := s.gen
	s.loop.Go("write", func() {
		n, err := s.w.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		s.loop.Post(func() { s.complete(gen, err) })
	})
}

func (s *WriterSink) complete(gen int, err error) {
	tok := s.tok
	if s.closed || gen != s.gen || !tok.Pending() {
		return
	}
	s.tok = rangeio.Token[struct{}]{}
	if err != nil {
		tok.Invoke(rangeio.Fail[struct{}](err))
		return
	}
	tok.Invoke(rangeio.Written())
}

// Cancel implements [rangeio.Canceler]. A pending write completes with
// [rangeio.ErrCancelled]; later writes fail the same way.
func (s *WriterSink) Cancel() {
	s.closed = true
	if tok := s.tok; tok.Pending() {
		s.tok = rangeio.Token[struct{}]{}
		tok.Invoke(rangeio.Fail[struct{}](rangeio.ErrCancelled))
	}
}
