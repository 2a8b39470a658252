// Package assert reports precondition violations.
//
// A violation is a programmer error: calling an operation in the wrong state
// or with an index outside its range. Builds tagged brushdebug panic on the
// first violation; other builds log it at error level and let the caller
// return without effect, so an interactive session is never brought down by
// a misuse.
package assert

import (
	"fmt"

	"github.com/gogpu/brushwork/internal/logging"
)

// That reports a violation when cond is false and returns cond, so callers
// can write:
//
//	if !assert.That(i < n, "mapping: point %d out of range", i) {
//		return
//	}
func That(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	if fatal {
		panic("assertion failed: " + msg)
	}
	logging.Logger().Error("assertion failed", "msg", msg)
	return false
}
