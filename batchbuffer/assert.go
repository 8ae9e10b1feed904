package batchbuffer

import "fmt"

// debugAssertionsEnabled gates internal consistency checks that are
// cheap enough to always run at this module's target sizes, but are
// kept behind a single flag so they can be compiled out of a hot loop
// if profiling ever calls for it. Currently always on.
var debugAssertionsEnabled = true

// assertf panics with a formatted message when debugAssertionsEnabled
// and the condition is false. It exists to make internal-consistency
// violations loud rather than to validate caller input — those go
// through the dberr invariant-violation path instead.
func assertf(cond bool, format string, args ...interface{}) {
	if !debugAssertionsEnabled || cond {
		return
	}
	panic(fmt.Sprintf(format, args...))
}
