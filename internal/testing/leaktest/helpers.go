// Package leaktest detects goroutines left behind by code under test, such
// as retry loops or oracle callbacks that outlive their Wait call.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// settleDelay gives unrelated background goroutines time to wind down before
// and after the measured section.
const settleDelay = 50 * time.Millisecond

// CheckNoGoroutineLeak runs fn and fails the test if the goroutine count is
// higher afterwards than it was before.
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)
	before := runtime.NumGoroutine()

	fn()

	runtime.Gosched()
	time.Sleep(settleDelay)
	runtime.GC()
	time.Sleep(settleDelay)

	after := runtime.NumGoroutine()
	if after > before {
		t.Errorf("goroutine leak: before=%d, after=%d, leaked=%d", before, after, after-before)
	}
}
