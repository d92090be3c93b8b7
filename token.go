package rangeio

// Token is a single-shot completion handle: invoking it resumes whichever
// party is waiting for a [Result].
//
// Copies of a Token share state. Whichever copy is invoked first delivers the
// Result; invoking any copy again panics. Ownership is therefore transferred
// by handing the Token over and never touching it afterwards.
//
// A Token is not safe for concurrent use. A pipeline is driven by one
// execution context at a time.
type Token[T any] struct {
	c *completion[T]
}

type completion[T any] struct {
	fn    func(Result[T])
	fired bool
	probe *leakProbe
}

// NewToken returns a Token that delivers its Result to fn.
// Panics if fn is nil.
func NewToken[T any](fn func(Result[T])) Token[T] {
	if fn == nil {
		panic("rangeio: NewToken requires a non-nil function")
	}
	c := &completion[T]{fn: fn}
	if debugTokens {
		c.probe = trackCompletion(c)
	}
	return Token[T]{c: c}
}

// Invoke delivers r to the waiting party.
//
// Invoke panics if t is the zero Token, if t has already been invoked, or if
// r is the zero Result. These are programming errors, not runtime conditions.
func (t Token[T]) Invoke(r Result[T]) {
	c := t.c
	if c == nil {
		panic("rangeio: Invoke on zero Token")
	}
	if c.fired {
		panic("rangeio: Token invoked more than once")
	}
	if r.kind == 0 {
		panic("rangeio: Invoke with zero Result")
	}
	c.fired = true
	c.probe.settle()
	fn := c.fn
	c.fn = nil
	fn(r)
}

// Pending reports whether t is a live Token that has not been invoked yet.
func (t Token[T]) Pending() bool {
	return t.c != nil && !t.c.fired
}

// handOff marks t as accounted for without invoking it. A range uses it for
// the upstream token it abandons when closed; a late invocation is still
// legal and simply ignored by the range.
func (t Token[T]) handOff() {
	if t.c != nil {
		t.c.probe.settle()
	}
}
