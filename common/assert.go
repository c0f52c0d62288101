package common

import (
	"fmt"

	"github.com/devlights/gomy/output"
)

// Assert panics with msg if condition is false. It is used exclusively for
// invariant violations the spec (§7) says are not self-healing: extendible
// hashing directory invariants and preconditions, and invalid buffer pool
// construction arguments. It must never be used for conditions callers can legitimately
// hit (those return (false, error) instead).
func Assert(condition bool, format string, args ...interface{}) {
	if !condition {
		Fatal(format, args...)
	}
}

// Fatal dumps every goroutine's stack (useful when the failure is a
// concurrency bug: a stuck latch holder, a frame pinned from another
// goroutine) and panics.
func Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	output.Stdoutl("integrity violation: ", msg)
	dumpStacks()
	panic(msg)
}

func dumpStacks() {
	buf := make([]byte, 1<<16)
	for {
		n := stackTrace(buf)
		if n < len(buf) {
			output.Stdoutl("stack: ", string(buf[:n]))
			return
		}
		buf = make([]byte, 2*len(buf))
	}
}
