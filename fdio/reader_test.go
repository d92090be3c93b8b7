//go:build unix

package fdio

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/baxromumarov/rangeio"
	"github.com/baxromumarov/rangeio/ioloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type testPipe struct {
	r, w int
	once [2]sync.Once
}

// closeW closes the write end, at most once.
func (p *testPipe) closeW() {
	p.once[1].Do(func() { _ = unix.Close(p.w) })
}

// pipe returns a new pipe whose ends are closed at cleanup.
func pipe(t *testing.T) *testPipe {
	t.Helper()
	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))
	p := &testPipe{r: fds[0], w: fds[1]}
	t.Cleanup(func() {
		p.once[0].Do(func() { _ = unix.Close(p.r) })
		p.closeW()
	})
	return p
}

func TestReader(t *testing.T) {
	t.Run("ReadyDataIsSynchronous", func(t *testing.T) {
		l := ioloop.New()
		p := pipe(t)
		rfd, wfd := p.r, p.w
		_, err := unix.Write(wfd, []byte("ping"))
		require.NoError(t, err)

		r, err := NewReader(l, rfd, 16)
		require.NoError(t, err)

		var got []byte
		r.RequestNext(rangeio.NewToken(func(res rangeio.Result[[]byte]) {
			got, _ = res.Get()
		}))
		assert.Equal(t, []byte("ping"), got)
	})

	t.Run("WaitsForData", func(t *testing.T) {
		l := ioloop.New()
		p := pipe(t)
		rfd, wfd := p.r, p.w
		r, err := NewReader(l, rfd, 16)
		require.NoError(t, err)

		var results []rangeio.Result[[]byte]
		r.RequestNext(rangeio.NewToken(func(res rangeio.Result[[]byte]) {
			results = append(results, res)
		}))
		assert.Empty(t, results)

		l.Tick()
		assert.Empty(t, results, "nothing to read yet")

		_, err = unix.Write(wfd, []byte("late"))
		require.NoError(t, err)
		l.Tick()

		require.Len(t, results, 1)
		v, ok := results[0].Get()
		require.True(t, ok)
		assert.Equal(t, []byte("late"), v)
	})

	t.Run("EndOnHangup", func(t *testing.T) {
		l := ioloop.New()
		p := pipe(t)
		rfd, wfd := p.r, p.w
		r, err := NewReader(l, rfd, 3, rangeio.WithName("pipe"))
		require.NoError(t, err)

		payload := []byte("framed data")
		l.Go("writer", func() {
			_, _ = unix.Write(wfd, payload)
			p.closeW()
		})

		chunks, err := ioloop.Collect(context.Background(), l, r)
		require.NoError(t, err)
		assert.Equal(t, payload, bytes.Join(chunks, nil))
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 3)
		}
		l.Wait()
	})

	t.Run("Cancel", func(t *testing.T) {
		l := ioloop.New()
		p := pipe(t)
		rfd, wfd := p.r, p.w
		r, err := NewReader(l, rfd, 8)
		require.NoError(t, err)

		var results []rangeio.Result[[]byte]
		r.RequestNext(rangeio.NewToken(func(res rangeio.Result[[]byte]) {
			results = append(results, res)
		}))
		r.Close()

		require.Len(t, results, 1)
		assert.ErrorIs(t, results[0].Err(), rangeio.ErrCancelled)

		_, err = unix.Write(wfd, []byte("x"))
		require.NoError(t, err)
		l.Tick()
		assert.Len(t, results, 1, "a cancelled reader is no longer polled")
	})

	t.Run("BadDescriptor", func(t *testing.T) {
		_, err := NewReader(ioloop.New(), -1, 8)
		assert.ErrorIs(t, err, unix.EBADF)
	})
}
