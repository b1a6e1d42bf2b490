// Package ice reports internal compiler errors: violations of invariants
// that only buggy callers, never user input, can produce. An ICE aborts the
// analysis pass; it is recovered solely at the process boundary.
package ice

import "fmt"

// Error wraps an internal invariant violation so the CLI boundary can
// distinguish it from ordinary panics.
type Error struct {
	Message string
}

func (e Error) Error() string {
	return "internal error: " + e.Message
}

// Panicf aborts the current analysis pass with an internal error.
func Panicf(format string, args ...any) {
	panic(Error{Message: fmt.Sprintf(format, args...)})
}
