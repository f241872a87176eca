// Package testkit holds the few helpers tests across the module share
package testkit

import (
	"strings"
	"testing"
)

// Swap points a package level seam at v until the test ends. Tests that
// swap the same seam must not run in parallel
func Swap[T any](t testing.TB, seam *T, v T) {
	t.Helper()
	prev := *seam
	*seam = v
	t.Cleanup(func() { *seam = prev })
}

// MustPanic fails the test unless fn panics, and returns the panic value
func MustPanic(t testing.TB, fn func()) (v any) {
	t.Helper()
	defer func() {
		if v = recover(); v == nil {
			t.Fatalf("expected a panic")
		}
	}()
	fn()
	return nil
}

// MustContain fails the test unless every want occurs in out
func MustContain(t testing.TB, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Fatalf("missing %q in\n%s", w, out)
		}
	}
}
