package rangeio

// manualSource holds each request until the test completes it, standing in
// for a source whose I/O completes later.
type manualSource[T any] struct {
	requests int
	cancels  int
	pending  Token[T]
}

func (s *manualSource[T]) Request(tok Token[T]) {
	if s.pending.Pending() {
		panic("manualSource: overlapping request")
	}
	s.requests++
	s.pending = tok
}

func (s *manualSource[T]) Cancel() {
	s.cancels++
	if tok := s.pending; tok.Pending() {
		s.pending = Token[T]{}
		tok.Invoke(Fail[T](ErrCancelled))
	}
}

func (s *manualSource[T]) waiting() bool {
	return s.pending.Pending()
}

func (s *manualSource[T]) deliver(res Result[T]) {
	tok := s.pending
	s.pending = Token[T]{}
	tok.Invoke(res)
}

// countingSlice is a synchronous source over items that counts requests.
type countingSlice[T any] struct {
	items    []T
	requests int
}

func (s *countingSlice[T]) Request(tok Token[T]) {
	s.requests++
	if len(s.items) == 0 {
		tok.Invoke(End[T]())
		return
	}
	v := s.items[0]
	s.items = s.items[1:]
	tok.Invoke(Value(v))
}

// recorder collects every result delivered to the tokens it hands out.
type recorder[T any] struct {
	results []Result[T]
}

func (rec *recorder[T]) token() Token[T] {
	return NewToken(func(r Result[T]) {
		rec.results = append(rec.results, r)
	})
}

func (rec *recorder[T]) values() []T {
	var out []T
	for _, r := range rec.results {
		if v, ok := r.Get(); ok {
			out = append(out, v)
		}
	}
	return out
}

func (rec *recorder[T]) last() Result[T] {
	if len(rec.results) == 0 {
		return Result[T]{}
	}
	return rec.results[len(rec.results)-1]
}

// collectSync drains r, which must complete synchronously.
func collectSync[T any](r *Range[T]) ([]T, error) {
	var (
		items []T
		err   error
		done  bool
	)
	Collect(r, func(vs []T, e error) {
		items, err, done = vs, e, true
	})
	if !done {
		panic("collectSync: range did not complete synchronously")
	}
	return items, err
}
