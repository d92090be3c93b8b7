package ioloop

import (
	"errors"
	"io"

	"github.com/baxromumarov/rangeio"
)

// Reader returns a range of chunks read from r, each at most size bytes.
//
// Every request performs one blocking Read in a goroutine tracked by loop
// and posts the outcome back. Data returned together with an error is
// delivered first; io.EOF ends the range and any other error fails it.
//
// Closing the range completes a pending request with
// [rangeio.ErrCancelled], but a Read that is already blocked keeps running
// until r returns; its result is discarded. Close r to unblock it.
//
// Panics if loop or r is nil or size is not positive.
func Reader(loop *Loop, r io.Reader, size int, opts ...rangeio.Option) *rangeio.Range[[]byte] {
	if loop == nil || r == nil {
		panic("ioloop: Reader requires a non-nil loop and reader")
	}
	if size <= 0 {
		panic("ioloop: Reader requires a positive chunk size")
	}
	return rangeio.New[[]byte](&readerSource{loop: loop, r: r, size: size}, opts...)
}

// readerSource is only touched on the loop.
type readerSource struct {
	loop *Loop
	r    io.Reader
	size int

	tok    rangeio.Token[[]byte]
	gen    int
	err    error
	closed bool
}

func (s *readerSource) Request(tok rangeio.Token[[]byte]) {
	if s.closed {
		tok.Invoke(rangeio.Fail[[]byte](rangeio.ErrCancelled))
		return
	}
	if s.err != nil {
		s.finish(tok, s.err)
		return
	}
	s.tok = tok
	s.read()
}

func (s *readerSource) read() {
	s.gen++
	gen := s.gen
	s.loop.Go("read", func() {
		buf := make([]byte, s.size)
		n, err := s.r.Read(buf)
		s.loop.Post(func() { s.complete(gen, buf[:n], err) })
	})
}

func (s *readerSource) complete(gen int, buf []byte, err error) {
	if s.closed || gen != s.gen || !s.tok.Pending() {
		return
	}

	tok := s.tok
	switch {
	case len(buf) > 0:
		s.err = err
		s.tok = rangeio.Token[[]byte]{}
		tok.Invoke(rangeio.Value(buf))
	case err != nil:
		s.err = err
		s.tok = rangeio.Token[[]byte]{}
		s.finish(tok, err)
	default:
		// Nothing read and no error: io.Reader permits it, try again.
		s.read()
	}
}

func (s *readerSource) finish(tok rangeio.Token[[]byte], err error) {
	if errors.Is(err, io.EOF) {
		tok.Invoke(rangeio.End[[]byte]())
		return
	}
	tok.Invoke(rangeio.Fail[[]byte](err))
}

func (s *readerSource) Cancel() {
	s.closed = true
	if tok := s.tok; tok.Pending() {
		s.tok = rangeio.Token[[]byte]{}
		tok.Invoke(rangeio.Fail[[]byte](rangeio.ErrCancelled))
	}
}
