package common

import "runtime"

// stackTrace fills buf with the stack of every running goroutine and
// returns the number of bytes written, following the growth pattern
// documented for runtime.Stack.
func stackTrace(buf []byte) int {
	return runtime.Stack(buf, true)
}
