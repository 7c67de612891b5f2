package syncx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/walkermi/srt/clock"
)

func TestEventLockWaitWakesOnNotify(t *testing.T) {
	e := NewEvent()

	done := make(chan struct{})
	go func() {
		e.LockWait()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	e.NotifyAll()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("LockWait did not wake")
	}
}

func TestEventWaitOnHeldLock(t *testing.T) {
	e := NewEvent()

	done := make(chan struct{})
	go func() {
		lock := NewUniqueLock(e.Mu())
		e.Wait(lock)
		lock.Unlock()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	e.NotifyOne()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not wake")
	}
}

func TestEventLockWaitUntilPastReturnsFalseImmediately(t *testing.T) {
	e := NewEvent()

	start := time.Now()
	notified := e.LockWaitUntil(clock.Now())
	elapsed := time.Since(start)

	assert.False(t, notified)
	assert.Less(t, elapsed, 50*time.Millisecond)
}

func TestEventLockWaitUntilWakesOnNotify(t *testing.T) {
	e := NewEvent()

	done := make(chan bool, 1)
	go func() {
		done <- e.LockWaitUntil(clock.Now().Add(clock.SecondsFrom(5)))
	}()

	time.Sleep(20 * time.Millisecond)
	e.NotifyAll()

	select {
	case notified := <-done:
		assert.True(t, notified)
	case <-time.After(time.Second):
		t.Fatal("LockWaitUntil did not wake")
	}
}

func TestDefaultEventIsUsable(t *testing.T) {
	done := make(chan struct{})
	go func() {
		DefaultEvent.LockWait()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	DefaultEvent.NotifyAll()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("DefaultEvent.LockWait did not wake")
	}
}
