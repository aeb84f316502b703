package vga

import (
	"runtime"
	"sync/atomic"
)

// spinLock is the test-and-set lock guarding the package-level console. On
// a hosted runtime each failed acquisition yields the processor so the
// holder can run; on a single-core freestanding target the loop is the
// classic busy wait.
type spinLock struct {
	state uint32
}

// Lock spins until the lock is acquired. Not reentrant: a goroutine that
// already holds the lock deadlocks here.
func (l *spinLock) Lock() {
	for !atomic.CompareAndSwapUint32(&l.state, 0, 1) {
		runtime.Gosched()
	}
}

// Unlock releases the lock.
func (l *spinLock) Unlock() {
	atomic.StoreUint32(&l.state, 0)
}
