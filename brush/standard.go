package brush

import "sync/atomic"

var standard atomic.Pointer[Brush]

// Standard returns the process-wide default brush, creating it on first
// use. Every caller shares the same instance until ResetStandard.
func Standard() *Brush {
	if b := standard.Load(); b != nil {
		return b
	}
	b := New()
	if standard.CompareAndSwap(nil, b) {
		return b
	}
	return standard.Load()
}

// ResetStandard drops the default brush; the next Standard call creates a
// fresh one. Call it on shutdown or when brush defaults change.
func ResetStandard() {
	standard.Store(nil)
}
