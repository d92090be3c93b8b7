package rangeio

import "fmt"

// Kind identifies which variant a [Result] holds.
type Kind uint8

const (
	// KindValue marks a Result carrying a produced item.
	KindValue Kind = iota + 1

	// KindEnd marks the end of a sequence. It is not an error.
	KindEnd

	// KindError marks a Result carrying an error.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindEnd:
		return "end"
	case KindError:
		return "error"
	default:
		return "invalid"
	}
}

// Result is the outcome of one asynchronous request: a produced item, the end
// of the sequence, or an error. Create one with [Value], [End] or [Fail].
//
// The zero Result is invalid and must not be delivered through a [Token].
type Result[T any] struct {
	kind Kind
	val  T
	err  error
}

// Value returns a Result carrying v.
func Value[T any](v T) Result[T] {
	return Result[T]{kind: KindValue, val: v}
}

// End returns a Result marking the end of a sequence.
func End[T any]() Result[T] {
	return Result[T]{kind: KindEnd}
}

// Fail returns a Result carrying err.
// Panics if err is nil.
func Fail[T any](err error) Result[T] {
	if err == nil {
		panic("rangeio: Fail requires a non-nil error")
	}
	return Result[T]{kind: KindError, err: err}
}

// Kind returns the variant held by r.
func (r Result[T]) Kind() Kind { return r.kind }

// IsValue reports whether r carries a produced item.
func (r Result[T]) IsValue() bool { return r.kind == KindValue }

// IsEnd reports whether r marks the end of the sequence.
func (r Result[T]) IsEnd() bool { return r.kind == KindEnd }

// IsError reports whether r carries an error.
func (r Result[T]) IsError() bool { return r.kind == KindError }

// Get returns the carried item and true, or the zero value and false if r is
// not a value.
func (r Result[T]) Get() (T, bool) {
	if r.kind != KindValue {
		var zero T
		return zero, false
	}
	return r.val, true
}

// Err returns the carried error, or nil if r is not an error.
func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) String() string {
	switch r.kind {
	case KindValue:
		return fmt.Sprintf("Value(%v)", r.val)
	case KindEnd:
		return "End"
	case KindError:
		return fmt.Sprintf("Error(%v)", r.err)
	default:
		return "Invalid"
	}
}

// retype converts an End or Error result to another element type.
// It must not be called with a value.
func retype[U, T any](r Result[T]) Result[U] {
	if r.kind == KindValue {
		panic("rangeio: internal error: retype of a value")
	}
	return Result[U]{kind: r.kind, err: r.err}
}

// mapResult applies f to a value and passes End and Error through unchanged.
func mapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.kind == KindValue {
		return Value(f(r.val))
	}
	return retype[U](r)
}
