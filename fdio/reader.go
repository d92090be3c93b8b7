//go:build unix

package fdio

import (
	"errors"
	"fmt"
	"os"

	"github.com/baxromumarov/rangeio"
	"github.com/baxromumarov/rangeio/ioloop"
	"golang.org/x/sys/unix"
)

// NewReader returns a range of chunks read from fd, each at most size
// bytes. fd is switched to non-blocking mode. A read of zero bytes (end of
// file, or a hung-up pipe) ends the range.
//
// Panics if loop is nil or size is not positive.
func NewReader(loop *ioloop.Loop, fd int, size int, opts ...rangeio.Option) (*rangeio.Range[[]byte], error) {
	if loop == nil {
		panic("fdio: NewReader requires a non-nil loop")
	}
	if size <= 0 {
		panic("fdio: NewReader requires a positive chunk size")
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, fmt.Errorf("fdio: set non-blocking on fd %d: %w", fd, err)
	}
	return rangeio.New[[]byte](&reader{loop: loop, fd: fd, size: size}, opts...), nil
}

type reader struct {
	loop *ioloop.Loop
	fd   int
	size int

	tok     rangeio.Token[[]byte]
	polling bool
	closed  bool
}

func (s *reader) Request(tok rangeio.Token[[]byte]) {
	if s.closed {
		tok.Invoke(rangeio.Fail[[]byte](rangeio.ErrCancelled))
		return
	}
	s.tok = tok
	s.read()
}

// Poll implements ioloop.Poller.
func (s *reader) Poll() {
	if !s.tok.Pending() {
		return
	}
	ok, err := ready(s.fd, unix.POLLIN)
	if err != nil {
		s.complete(rangeio.Fail[[]byte](err))
		return
	}
	if ok {
		s.read()
	}
}

func (s *reader) read() {
	buf := make([]byte, s.size)
	for {
		n, err := unix.Read(s.fd, buf)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case wouldBlock(err):
			if !s.polling {
				s.polling = true
				s.loop.AddPoller(s)
			}
			return
		case err != nil:
			s.complete(rangeio.Fail[[]byte](os.NewSyscallError("read", err)))
		case n == 0:
			s.complete(rangeio.End[[]byte]())
		default:
			s.complete(rangeio.Value(buf[:n]))
		}
		return
	}
}

func (s *reader) complete(res rangeio.Result[[]byte]) {
	s.stopPolling()
	tok := s.tok
	s.tok = rangeio.Token[[]byte]{}
	tok.Invoke(res)
}

func (s *reader) stopPolling() {
	if s.polling {
		s.polling = false
		s.loop.RemovePoller(s)
	}
}

func (s *reader) Cancel() {
	s.closed = true
	s.stopPolling()
	if tok := s.tok; tok.Pending() {
		s.tok = rangeio.Token[[]byte]{}
		tok.Invoke(rangeio.Fail[[]byte](rangeio.ErrCancelled))
	}
}
