// Package leaktest checks that worker pools and recomputation passes release
// their goroutines.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	defaultSettleTimeout = 2 * time.Second
	pollInterval         = 10 * time.Millisecond
)

// GoroutineChecker records a goroutine baseline and later verifies it was restored
type GoroutineChecker struct {
	t       testing.TB
	before  int
	timeout time.Duration
}

// NewGoroutineChecker records the current goroutine count. Create it after any
// long-lived background goroutines of the code under test have started.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{t: t, before: runtime.NumGoroutine(), timeout: defaultSettleTimeout}
}

// WithTimeout changes how long Check waits for goroutines to exit
func (g *GoroutineChecker) WithTimeout(d time.Duration) *GoroutineChecker {
	g.timeout = d
	return g
}

// Check polls until at most tolerance extra goroutines remain, failing the test on timeout
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	target := g.before + tolerance
	if n, ok := settle(target, g.timeout); !ok {
		g.t.Errorf("goroutine leak: before=%d after=%d leaked=%d (tolerance=%d)",
			g.before, n, n-g.before, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails if it leaves goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// settle waits for the goroutine count to drop to target and returns the last count seen
func settle(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}
