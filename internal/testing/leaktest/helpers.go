// Package leaktest checks that code under test does not leave goroutines
// behind, for timer workers, pools and connection pools.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = time.Second
	pollInterval  = 10 * time.Millisecond
	maxStackDump  = 64 << 10
)

// Baseline is a goroutine count taken before the code under test ran
type Baseline struct {
	t     testing.TB
	count int
}

// Snapshot records the current goroutine count
func Snapshot(t testing.TB) *Baseline {
	t.Helper()
	runtime.Gosched()
	return &Baseline{t: t, count: runtime.NumGoroutine()}
}

// Guard snapshots now and verifies the count when the test finishes
func Guard(t testing.TB, tolerance int) {
	t.Helper()
	b := Snapshot(t)
	t.Cleanup(func() { b.Verify(tolerance) })
}

// Verify waits up to a second for the count to fall back within tolerance
// of the baseline and fails the test with a stack dump if it does not.
func (b *Baseline) Verify(tolerance int) {
	b.t.Helper()
	limit := b.count + tolerance
	deadline := time.Now().Add(settleTimeout)

	n := runtime.NumGoroutine()
	for n > limit && time.Now().Before(deadline) {
		time.Sleep(pollInterval)
		runtime.Gosched()
		n = runtime.NumGoroutine()
	}
	if n <= limit {
		return
	}

	buf := make([]byte, maxStackDump)
	buf = buf[:runtime.Stack(buf, true)]
	b.t.Errorf("goroutine leak: baseline=%d now=%d tolerance=%d\n%s", b.count, n, tolerance, buf)
}

// Run calls fn and requires every goroutine it started to exit
func Run(t testing.TB, fn func()) {
	t.Helper()
	b := Snapshot(t)
	fn()
	b.Verify(0)
}
