package rangeio

// loop drives a step that issues one upstream request per iteration.
//
// A completion that wants another iteration calls again. If the completion
// arrived synchronously, i.e. while step is still running, the loop iterates
// instead of recursing, so a long run of synchronous completions runs in
// constant stack. An asynchronous completion restarts the loop from the
// stack of whatever delivered it.
type loop struct {
	step   func()
	inStep bool
	repeat bool
}

func (l *loop) run() {
	for {
		l.inStep, l.repeat = true, false
		l.step()
		l.inStep = false
		if !l.repeat {
			return
		}
	}
}

func (l *loop) again() {
	if l.inStep {
		l.repeat = true
		return
	}
	l.run()
}
