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

// Writer is a [rangeio.Sink] writing byte slices to a non-blocking file
// descriptor. A write completes once every byte has been written; while the
// descriptor is full, the Writer waits for POLLOUT on each loop tick.
type Writer struct {
	loop *ioloop.Loop
	fd   int

	buf     []byte
	tok     rangeio.Token[struct{}]
	polling bool
	closed  bool
}

// NewWriter returns a sink writing to fd. fd is switched to non-blocking
// mode.
// Panics if loop is nil.
func NewWriter(loop *ioloop.Loop, fd int) (*Writer, error) {
	if loop == nil {
		panic("fdio: NewWriter requires a non-nil loop")
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, fmt.Errorf("fdio: set non-blocking on fd %d: %w", fd, err)
	}
	return &Writer{loop: loop, fd: fd}, nil
}

// Write implements [rangeio.Sink].
func (w *Writer) Write(p []byte, tok rangeio.Token[struct{}]) {
	if w.closed {
		tok.Invoke(rangeio.Fail[struct{}](rangeio.ErrCancelled))
		return
	}
	if w.tok.Pending() {
		panic("fdio: Write called while a write is outstanding")
	}
	w.buf = p
	w.tok = tok
	w.flush()
}

// Poll implements ioloop.Poller.
func (w *Writer) Poll() {
	if !w.tok.Pending() {
		return
	}
	ok, err := ready(w.fd, unix.POLLOUT)
	if err != nil {
		w.complete(err)
		return
	}
	if ok {
		w.flush()
	}
}

func (w *Writer) flush() {
	for len(w.buf) > 0 {
		n, err := unix.Write(w.fd, w.buf)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case wouldBlock(err):
			if !w.polling {
				w.polling = true
				w.loop.AddPoller(w)
			}
			return
		case err != nil:
			w.complete(os.NewSyscallError("write", err))
			return
		}
		w.buf = w.buf[n:]
	}
	w.complete(nil)
}

func (w *Writer) complete(err error) {
	if w.polling {
		w.polling = false
		w.loop.RemovePoller(w)
	}
	w.buf = nil
	tok := w.tok
	w.tok = rangeio.Token[struct{}]{}
	if err != nil {
		tok.Invoke(rangeio.Fail[struct{}](err))
		return
	}
	tok.Invoke(rangeio.Written())
}

// Cancel implements [rangeio.Canceler]. A pending write completes with
// [rangeio.ErrCancelled]; bytes already written stay written.
func (w *Writer) Cancel() {
	w.closed = true
	if w.polling {
		w.polling = false
		w.loop.RemovePoller(w)
	}
	w.buf = nil
	if tok := w.tok; tok.Pending() {
		w.tok = rangeio.Token[struct{}]{}
		tok.Invoke(rangeio.Fail[struct{}](rangeio.ErrCancelled))
	}
}
