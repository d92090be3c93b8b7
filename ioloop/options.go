package ioloop

import (
	"log/slog"
	"time"
)

type config struct {
	logger       *slog.Logger
	pollInterval time.Duration
}

// Option configures a [Loop] created by [New].
type Option func(*config)

func defaultConfig() config {
	return config{
		pollInterval: time.Millisecond,
	}
}

// WithLogger sets the logger used to report recovered panics and failed
// background goroutines. A nil logger (the default) disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithPollInterval sets how often [Loop.RunUntil] ticks when nothing is
// posted. The default is one millisecond.
// Panics if d is not positive.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		if d <= 0 {
			panic("ioloop: WithPollInterval requires a positive duration")
		}
		c.pollInterval = d
	}
}
