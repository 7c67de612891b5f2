// Package syncx implements the sender's synchronization primitives on
// top of clock.TimePoint: a mutex with scoped/unique-lock guards, a
// timed condition variable, an Event (mutex+condition bundle), and an
// interruptible Timer used by the pacing loop.
package syncx

import "sync"

// Mutex is non-reentrant, matching srtcore/sync.cpp's pthread-backed
// Mutex. Lock/Unlock on a live mutex are infallible; construction
// never fails in Go, so there is no NewMutex error return.
type Mutex struct {
	mu sync.Mutex
}

func (m *Mutex) Lock() { m.mu.Lock() }

func (m *Mutex) Unlock() { m.mu.Unlock() }

// TryLock acquires the mutex without blocking, returning false if it
// was already held.
func (m *Mutex) TryLock() bool { return m.mu.TryLock() }

// Lock is the ScopedLock idiom: it locks m and returns the unlock
// closure, used as `defer syncx.Lock(&mu)()` so the mutex releases on
// every return path including a panicking one, the Go equivalent of
// ScopedLock's destructor-driven release.
func Lock(m *Mutex) func() {
	m.Lock()
	return m.Unlock
}

// UniqueLock wraps a *Mutex with idempotent manual unlock, the
// counterpart a Condition needs so it can unlock/relock around a wait.
type UniqueLock struct {
	mu     *Mutex
	locked bool
}

// NewUniqueLock locks m and returns the guard.
func NewUniqueLock(m *Mutex) *UniqueLock {
	m.Lock()
	return &UniqueLock{mu: m, locked: true}
}

// Unlock releases the underlying mutex; calling it again is a no-op.
func (u *UniqueLock) Unlock() {
	if u.locked {
		u.mu.Unlock()
		u.locked = false
	}
}

func (u *UniqueLock) relock() {
	if !u.locked {
		u.mu.Lock()
		u.locked = true
	}
}

// Mu returns the underlying mutex, mirroring srtcore's UniqueLock::mutex().
func (u *UniqueLock) Mu() *Mutex { return u.mu }
