//go:build unix

package fdio

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// wouldBlock reports whether err means the descriptor is not ready.
func wouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

// ready polls fd once without blocking and reports whether any of events,
// or an error condition, is signalled.
func ready(fd int, events int16) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: events}}
	n, err := unix.Poll(fds, 0)
	switch {
	case errors.Is(err, unix.EINTR):
		return false, nil
	case err != nil:
		return false, os.NewSyscallError("poll", err)
	}
	return n > 0, nil
}
