package leaktest

import (
	"runtime"
	"testing"
	"time"
)

func TestGoroutineChecker_NoLeak(t *testing.T) {
	checker := NewGoroutineChecker(t)
	checker.Check(0)
}

func TestGoroutineChecker_WithTolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	go func() { <-done }()
	defer close(done)

	checker.Check(1)
}

func TestGoroutineChecker_WaitsForSlowExit(t *testing.T) {
	checker := NewGoroutineChecker(t)

	go func() { time.Sleep(30 * time.Millisecond) }()

	checker.Check(0)
}

func TestSettle_BlockedGoroutineKeepsCountUp(t *testing.T) {
	before := runtime.NumGoroutine()

	done := make(chan struct{})
	go func() { <-done }()
	defer close(done)

	if settle(before, 20*time.Millisecond) {
		t.Fatal("expected the blocked goroutine to keep the count above baseline")
	}
}

func TestCheckNoGoroutineLeak(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		done := make(chan struct{})
		go func() { close(done) }()
		<-done
	})
}

func TestWaitForGoroutines(t *testing.T) {
	target := runtime.NumGoroutine()

	go func() { time.Sleep(20 * time.Millisecond) }()

	WaitForGoroutines(t, target, time.Second)
}
