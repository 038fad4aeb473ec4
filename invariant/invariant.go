// Package invariant provides contract assertions for the Esta front end.
//
// Assertions express conditions that hold unless the program itself has
// a bug: they guard parser progress and internal consistency, never user
// input. All functions panic on violation.
package invariant

import (
	"fmt"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Invariant checks an internal invariant during function execution,
// such as loop progress or cursor bounds.
// Panics with INVARIANT VIOLATION if condition is false.
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNil panics if value is nil. This is a precondition check for
// pointer and interface arguments.
func NotNil(value interface{}, name string) {
	if value == nil {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

// fail builds the violation message with the caller's location and panics
func fail(kind, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	// Skip fail and the exported assertion that called it
	if _, file, line, ok := runtime.Caller(2); ok {
		panic(fmt.Sprintf("%s VIOLATION at %s:%d: %s", kind, file, line, msg))
	}
	panic(fmt.Sprintf("%s VIOLATION: %s", kind, msg))
}
