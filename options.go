package rangeio

import (
	"log/slog"

	"github.com/google/uuid"
)

// Info identifies a range. It is passed to the hook registered via
// [WithOnState] and attached to every [*SourceError].
type Info struct {
	ID   uuid.UUID
	Name string
}

type config struct {
	name    string
	logger  *slog.Logger
	onState func(Info, State, State)
}

// Option configures a range built by [New] or one of the source
// constructors. Adaptors inherit the configuration of their upstream.
type Option func(*config)

func defaultConfig() config {
	return config{
		name: "range",
	}
}

// WithName sets the name of the range. Adaptor names are derived from it,
// e.g. "uart/filter/take".
func WithName(name string) Option {
	return func(c *config) {
		if name == "" {
			panic("rangeio: WithName requires a non-empty name")
		}
		c.name = name
	}
}

// WithLogger sets the logger used to report state transitions at debug level.
// A nil logger (the default) disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithOnState registers a hook invoked on every state transition of the
// range and of every adaptor built on top of it.
// The hook runs synchronously inside the continuation chain and must not
// call back into the range.
func WithOnState(fn func(r Info, from, to State)) Option {
	return func(c *config) {
		c.onState = fn
	}
}
