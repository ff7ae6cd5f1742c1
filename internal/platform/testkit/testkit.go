// Package testkit provides testing helpers
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	serialMu sync.Mutex
	serial   = map[string]*sync.Mutex{}
)

// Swap sets *target to v until the test ends
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	orig := *target
	*target = v
	t.Cleanup(func() { *target = orig })
}

// Serial holds the lock called name until the test ends. Tests that reset
// the same package-level registry take the same name
func Serial(t *testing.T, name string) {
	t.Helper()
	serialMu.Lock()
	mu, ok := serial[name]
	if !ok {
		mu = &sync.Mutex{}
		serial[name] = mu
	}
	serialMu.Unlock()
	mu.Lock()
	t.Cleanup(mu.Unlock)
}

// MustPanic asserts that fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustNotPanic asserts that fn does not panic
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain asserts that haystack contains needle. If not, writes haystack to logger_test_output.txt for debugging
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		tmpfile := filepath.Join(t.TempDir(), "logger_test_output.txt")
		_ = os.WriteFile(tmpfile, []byte(haystack), 0o600)
		t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, tmpfile)
	}
}

// Float returns a pointer to v, handy for building optional rates in fixtures
func Float(v float64) *float64 { return &v }

// ApproxEqual reports whether a and b differ by no more than tol
func ApproxEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// MustApprox fails the test if got is absent or not within tol of want
func MustApprox(t *testing.T, got *float64, want, tol float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("expected value near %v, got absent", want)
	}
	if !ApproxEqual(*got, want, tol) {
		t.Fatalf("expected %v (±%v), got %v", want, tol, *got)
	}
}
