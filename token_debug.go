//go:build rangeio_debug

package rangeio

import (
	"runtime"
	"sync/atomic"
)

const debugTokens = true

// leakProbe tracks whether a token was invoked or handed off before the
// garbage collector reclaimed it.
type leakProbe struct {
	settled atomic.Bool
}

func (p *leakProbe) settle() {
	if p != nil {
		p.settled.Store(true)
	}
}

func trackCompletion[T any](c *completion[T]) *leakProbe {
	p := new(leakProbe)
	runtime.AddCleanup(c, func(p *leakProbe) {
		if !p.settled.Load() {
			panic("rangeio: Token dropped without being invoked")
		}
	}, p)
	return p
}
