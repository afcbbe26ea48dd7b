// Package leaktest checks that timer-driven code releases its goroutines.
package leaktest

import (
	"runtime"
	"strings"
	"testing"
	"time"
)

const (
	settleTimeout = time.Second
	pollInterval  = 5 * time.Millisecond
)

// GoroutineChecker records a goroutine baseline and later asserts the
// count has come back down to it.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check polls until at most tolerance goroutines remain above the baseline.
// On timeout it fails the test and logs the live stacks.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	target := g.before + tolerance
	if settle(target, settleTimeout) {
		return
	}

	after := runtime.NumGoroutine()
	g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
		g.before, after, after-g.before, tolerance)
	g.t.Logf("live goroutines:\n%s", stacks())
}

// CheckNoGoroutineLeak runs fn and fails if it leaves goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines waits until the goroutine count is at most target
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()

	if !settle(target, timeout) {
		t.Errorf("Timeout waiting for goroutines to complete: current=%d, target=%d",
			runtime.NumGoroutine(), target)
	}
}

func settle(target int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

func stacks() string {
	buf := make([]byte, 1<<16)
	n := runtime.Stack(buf, true)
	// keep the dump readable; the first goroutines are the interesting ones
	out := string(buf[:n])
	if parts := strings.Split(out, "\n\n"); len(parts) > 20 {
		out = strings.Join(parts[:20], "\n\n") + "\n..."
	}
	return out
}
