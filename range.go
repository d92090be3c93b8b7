package rangeio

import (
	"log/slog"
	"path"

	"github.com/google/uuid"
)

// State is the lifecycle state of a [Range].
type State uint8

const (
	// Idle means no request is outstanding.
	Idle State = iota

	// AwaitingUpstream means a request has been forwarded upstream and its
	// completion has not arrived yet.
	AwaitingUpstream

	// Delivering means a value is being handed to the caller's token.
	Delivering

	// Exhausted is terminal: every further request completes with End.
	Exhausted

	// Failed is terminal: every further request completes with the error
	// that failed the range. Closing a range fails it with [ErrCancelled].
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingUpstream:
		return "awaiting-upstream"
	case Delivering:
		return "delivering"
	case Exhausted:
		return "exhausted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Range is a lazy asynchronous sequence. It produces its next element only
// when asked through [Range.RequestNext], and delivers it through a [Token].
//
// A Range wraps either a [Source] (see [New]) or one upstream Range (every
// adaptor: Filter, Take, Transform, ...). The caller holding the outermost
// Range owns the whole chain; closing it closes everything upstream.
//
// At most one request may be outstanding per Range. Requesting again before
// the previous request completed panics.
//
// Note: a Range is not safe for concurrent use. Completions must be
// delivered by the single execution context that drives the pipeline,
// e.g. an ioloop.Loop.
type Range[T any] struct {
	info   Info
	cfg    config
	pull   func(Token[T])
	stop   func()
	source bool

	state   State
	err     error
	pending Token[T]
	upTok   Token[T]
	closed  bool
}

// New returns a Range that pulls its elements from src.
//
// Errors reported by src are wrapped in a [*SourceError] carrying the
// range's [Info]. If src implements [Canceler], closing the range cancels it.
//
// Panics if src is nil.
func New[T any](src Source[T], opts ...Option) *Range[T] {
	if src == nil {
		panic("rangeio: New requires a non-nil source")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := newRange(cfg, cfg.name, src.Request, nil)
	r.source = true
	if c, ok := src.(Canceler); ok {
		r.stop = c.Cancel
	}
	return r
}

func newRange[T any](cfg config, name string, pull func(Token[T]), stop func()) *Range[T] {
	return &Range[T]{
		info: Info{ID: uuid.New(), Name: name},
		cfg:  cfg,
		pull: pull,
		stop: stop,
	}
}

// derive builds an adaptor range on top of up. The adaptor inherits up's
// configuration and closing it closes up.
func derive[U, T any](up *Range[T], name string, pull func(Token[U])) *Range[U] {
	return newRange(up.cfg, path.Join(up.info.Name, name), pull, up.Close)
}

// RequestNext asks r for its next element. tok is invoked exactly once with
// the element, with End, or with an error; either before RequestNext returns
// or later, when the underlying I/O completes.
//
// Once r is exhausted or failed, tok is invoked immediately with End or with
// the same error. RequestNext may be called again from inside tok.
//
// Panics if a request is already outstanding or if tok is not a live Token.
func (r *Range[T]) RequestNext(tok Token[T]) {
	if !tok.Pending() {
		panic("rangeio: RequestNext requires a live Token")
	}

	switch r.state {
	case Exhausted:
		tok.Invoke(End[T]())
		return
	case Failed:
		tok.Invoke(Fail[T](r.err))
		return
	case AwaitingUpstream:
		panic("rangeio: RequestNext called while a request is outstanding")
	}

	r.pending = tok
	r.setState(AwaitingUpstream)

	var up Token[T]
	up = NewToken(func(res Result[T]) {
		r.complete(up, res)
	})
	r.upTok = up
	r.pull(up)
}

func (r *Range[T]) complete(up Token[T], res Result[T]) {
	if r.state != AwaitingUpstream || up != r.upTok {
		// Completion of a request abandoned by Close.
		return
	}

	out := r.pending
	r.pending = Token[T]{}
	r.upTok = Token[T]{}

	switch res.kind {
	case KindValue:
		r.setState(Delivering)
		out.Invoke(res)
		if r.state == Delivering {
			r.setState(Idle)
		}
	case KindEnd:
		r.setState(Exhausted)
		out.Invoke(res)
	default:
		err := res.err
		if r.source {
			err = wrapSourceError(r.info, err)
		}
		r.err = err
		r.setState(Failed)
		out.Invoke(Fail[T](err))
	}
}

// Close cancels r and everything upstream of it.
//
// If a request is outstanding, its token is invoked exactly once with
// [ErrCancelled] before Close returns, and any later completion from
// upstream is dropped. After Close, r is failed with ErrCancelled unless it
// was already exhausted or failed.
//
// Close is idempotent.
func (r *Range[T]) Close() {
	if r.closed {
		return
	}
	r.closed = true

	out := r.pending
	r.pending = Token[T]{}
	r.upTok.handOff()
	r.upTok = Token[T]{}

	if r.state != Exhausted && r.state != Failed {
		r.err = ErrCancelled
		r.setState(Failed)
	}

	if r.stop != nil {
		r.stop()
	}

	if out.Pending() {
		out.Invoke(Fail[T](ErrCancelled))
	}
}

// State returns the current state of r.
func (r *Range[T]) State() State {
	return r.state
}

// Err returns the error that failed r, or nil.
func (r *Range[T]) Err() error {
	return r.err
}

// Info returns the identity of r.
func (r *Range[T]) Info() Info {
	return r.info
}

func (r *Range[T]) setState(to State) {
	from := r.state
	r.state = to

	if h := r.cfg.onState; h != nil {
		h(r.info, from, to)
	}
	if l := r.cfg.logger; l != nil {
		l.Debug("range state",
			slog.String("range", r.info.Name),
			slog.String("id", r.info.ID.String()),
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	}
}
