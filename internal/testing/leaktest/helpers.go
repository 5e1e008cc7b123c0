// Package leaktest checks that scan loops and other background goroutines exit.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// DefaultSettle is how long Check waits for goroutines to wind down
const DefaultSettle = 2 * time.Second

// GoroutineChecker records a goroutine baseline and later verifies the count returned to it
type GoroutineChecker struct {
	baseline int
	settle   time.Duration
	t        testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{
		baseline: runtime.NumGoroutine(),
		settle:   DefaultSettle,
		t:        t,
	}
}

// Check polls until at most tolerance goroutines above the baseline remain,
// failing the test if the settle window runs out first.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(g.settle)
	for {
		runtime.Gosched()
		leaked := runtime.NumGoroutine() - g.baseline
		if leaked <= tolerance {
			return
		}
		if time.Now().After(deadline) {
			g.t.Errorf("Potential goroutine leak: baseline=%d, now=%d, leaked=%d (tolerance=%d)",
				g.baseline, runtime.NumGoroutine(), leaked, tolerance)
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// CheckNoGoroutineLeak runs fn and requires every goroutine it started to exit
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
