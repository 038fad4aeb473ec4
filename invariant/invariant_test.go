package invariant_test

import (
	"strings"
	"testing"

	"github.com/esta-lang/esta/invariant"
)

// TestPreconditionPass verifies Precondition does not panic when the
// condition is true
func TestPreconditionPass(t *testing.T) {
	x := 1
	invariant.Precondition(true, "this should pass")
	invariant.Precondition(x == 1, "math works")
}

// TestPreconditionFail verifies Precondition panics with a labelled
// message when the condition is false
func TestPreconditionFail(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic, got %T", r)
		}
		if !strings.Contains(msg, "PRECONDITION VIOLATION") {
			t.Errorf("panic message missing label: %s", msg)
		}
		if !strings.Contains(msg, "count must be positive, got -1") {
			t.Errorf("panic message missing formatted detail: %s", msg)
		}
	}()

	invariant.Precondition(false, "count must be positive, got %d", -1)
}

// TestInvariantFail verifies Invariant panics with the caller location
func TestInvariantFail(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		msg := r.(string)
		if !strings.Contains(msg, "INVARIANT VIOLATION") {
			t.Errorf("panic message missing label: %s", msg)
		}
		if !strings.Contains(msg, "invariant_test.go") {
			t.Errorf("panic message missing caller location: %s", msg)
		}
	}()

	invariant.Invariant(false, "cursor went backwards")
}

// TestNotNil verifies nil detection for interface arguments
func TestNotNil(t *testing.T) {
	invariant.NotNil("something", "value") // should not panic

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		if !strings.Contains(r.(string), "token stream must not be nil") {
			t.Errorf("unexpected panic message: %v", r)
		}
	}()

	invariant.NotNil(nil, "token stream")
}
