package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/baxromumarov/rangeio"
	"github.com/baxromumarov/rangeio/ioloop"
)

func main() {
	var (
		mode    = flag.String("mode", "demo", "demo: square/filter/take over a ticking emitter; stdin: upper-case stdin to stdout")
		take    = flag.Int("take", 2, "number of elements to take in demo mode")
		chunk   = flag.Int("chunk", 256, "read size in stdin mode")
		verbose = flag.Bool("v", false, "log range state transitions")
		timeout = flag.Duration("timeout", 10*time.Second, "give up after this long")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	var err error
	switch *mode {
	case "demo":
		err = demo(ctx, logger, *take)
	case "stdin":
		err = upper(ctx, logger, *chunk)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		logger.Error("failed", slog.Any("err", err))
		os.Exit(1)
	}
}

// demo squares 1..5, keeps the even squares and takes the first n of them,
// one emitter item per tick.
func demo(ctx context.Context, logger *slog.Logger, n int) error {
	loop := ioloop.New(ioloop.WithLogger(logger))
	em := ioloop.NewEmitter[int](loop)
	em.Push(1, 2, 3, 4, 5)
	em.Finish()

	src := em.Range(rangeio.WithName("emitter"), rangeio.WithLogger(logger))
	r := rangeio.Transform(src, func(v int) int { return v * v }).
		Filter(func(v int) bool { return v%2 == 0 }).
		Take(n)

	items, err := ioloop.Collect(ctx, loop, r)
	if err != nil {
		return err
	}
	fmt.Println("result:", items)
	logger.Info("done", slog.Int("upstream_requests", em.Requests()))
	return nil
}

// upper copies stdin to stdout in upper case.
func upper(ctx context.Context, logger *slog.Logger, size int) error {
	loop := ioloop.New(ioloop.WithLogger(logger))
	in := ioloop.Reader(loop, os.Stdin, size, rangeio.WithName("stdin"), rangeio.WithLogger(logger))
	out := rangeio.SinkTransform(rangeio.Sink[[]byte](ioloop.Writer(loop, os.Stdout)), func(p []byte) []byte {
		return []byte(strings.ToUpper(string(p)))
	})

	var (
		written int
		werr    error
		done    bool
	)
	loop.Post(func() {
		rangeio.Copy(in, out, func(n int, err error) {
			written, werr, done = n, err, true
		})
	})
	if err := loop.RunUntil(ctx, func() bool { return done }); err != nil {
		return err
	}
	logger.Debug("copied", slog.Int("chunks", written))
	return werr
}
