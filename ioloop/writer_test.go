package ioloop

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/baxromumarov/rangeio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }

// copyOnLoop runs rangeio.Copy on l until it completes.
func copyOnLoop(t *testing.T, l *Loop, r *rangeio.Range[[]byte], s rangeio.Sink[[]byte]) (int, error) {
	t.Helper()
	var (
		n    int
		err  error
		done bool
	)
	l.Post(func() {
		rangeio.Copy(r, s, func(cn int, cerr error) {
			n, err, done = cn, cerr, true
		})
	})
	require.NoError(t, l.RunUntil(context.Background(), func() bool { return done }))
	l.Wait()
	return n, err
}

func TestWriter(t *testing.T) {
	t.Run("WritesInOrder", func(t *testing.T) {
		l := New()
		var buf bytes.Buffer
		chunks := [][]byte{[]byte("ab"), []byte("cd"), []byte("ef")}

		n, err := copyOnLoop(t, l, rangeio.FromSlice(chunks), Writer(l, &buf))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, "abcdef", buf.String())
	})

	t.Run("ShortWrite", func(t *testing.T) {
		l := New()
		_, err := copyOnLoop(t, l, rangeio.FromSlice([][]byte{[]byte("xyz")}), Writer(l, shortWriter{}))
		assert.ErrorIs(t, err, io.ErrShortWrite)
	})

	t.Run("Error", func(t *testing.T) {
		sentinel := errors.New("broken pipe")
		l := New()
		n, err := copyOnLoop(t, l, rangeio.FromSlice([][]byte{[]byte("a"), []byte("b")}), Writer(l, failWriter{sentinel}))
		assert.ErrorIs(t, err, sentinel)
		assert.Zero(t, n)
	})

	t.Run("ReaderToWriter", func(t *testing.T) {
		l := New()
		var buf bytes.Buffer
		src := Reader(l, bytes.NewReader(bytes.Repeat([]byte("0123456789"), 10)), 7)

		_, err := copyOnLoop(t, l, src, Writer(l, &buf))
		require.NoError(t, err)
		assert.Equal(t, 100, buf.Len())
	})

	t.Run("Cancel", func(t *testing.T) {
		l := New()
		pr, pw := io.Pipe()
		w := Writer(l, pw)
		rec := &recorder[struct{}]{}

		w.Write([]byte("blocked"), rec.token())
		w.Cancel()
		require.Len(t, rec.results, 1)
		assert.ErrorIs(t, rec.results[0].Err(), rangeio.ErrCancelled)

		w.Write([]byte("late"), rec.token())
		assert.ErrorIs(t, rec.results[1].Err(), rangeio.ErrCancelled)

		require.NoError(t, pr.Close())
		l.Wait()
		l.Run()
		assert.Len(t, rec.results, 2)
	})
}
