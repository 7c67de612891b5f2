package syncx

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/walkermi/srt/clock"
	"github.com/walkermi/srt/srterr"
)

var log = logrus.WithField("component", "syncx")

// Condition is a monotonic-clock-backed condition variable paired
// with a UniqueLock. sync.Cond has no timed wait, so this is built on
// a generation channel instead: NotifyAll/NotifyOne close the current
// channel and install a fresh one, and every waiter selects on the
// channel it captured plus (for the timed variants) a time.Timer.
type Condition struct {
	chMu sync.Mutex
	ch   chan struct{}
}

// NewCondition constructs a Condition. Construction is infallible in
// this implementation (no pthread_cond_init equivalent), but the
// error return is kept to honor spec.md §7's "cv init may fail; fatal
// construction error propagated to the caller" contract, wrapped in
// the shared srterr taxonomy if it ever does.
func NewCondition() (*Condition, error) {
	c := &Condition{ch: make(chan struct{})}
	if c.ch == nil {
		return nil, errors.Wrap(srterr.New(srterr.MJSystemRes, srterr.MNThread, nil), "syncx: condition init failed")
	}
	return c, nil
}

func (c *Condition) sigChan() chan struct{} {
	c.chMu.Lock()
	ch := c.ch
	c.chMu.Unlock()
	return ch
}

// broadcast wakes every current waiter. NotifyOne reuses it: spec.md
// §4.2 permits spurious wakeups and requires callers to loop on their
// predicate, so over-waking on NotifyOne is within contract — there is
// no single-wake primitive available over a plain channel swap.
func (c *Condition) broadcast() {
	c.chMu.Lock()
	old := c.ch
	c.ch = make(chan struct{})
	c.chMu.Unlock()
	close(old)
}

// NotifyOne wakes at least one waiter. See broadcast's doc comment.
func (c *Condition) NotifyOne() { c.broadcast() }

// NotifyAll wakes every waiter.
func (c *Condition) NotifyAll() { c.broadcast() }

// Wait releases lock, suspends until notified, and reacquires lock
// before returning. Spurious wakeups are permitted.
func (c *Condition) Wait(lock *UniqueLock) {
	ch := c.sigChan()
	lock.Unlock()
	<-ch
	lock.relock()
}

// WaitFor is as Wait, but returns false iff relTime elapsed with no
// notification.
func (c *Condition) WaitFor(lock *UniqueLock, relTime clock.Duration) bool {
	ch := c.sigChan()
	lock.Unlock()
	defer lock.relock()

	timer := time.NewTimer(relTime.ToStd())
	defer timer.Stop()
	select {
	case <-ch:
		return true
	case <-timer.C:
		return false
	}
}

// WaitUntil is semantically equivalent to WaitFor(lock, tp-now()); if
// tp is already in the past, it returns false without suspending.
func (c *Condition) WaitUntil(lock *UniqueLock, tp clock.TimePoint) bool {
	now := clock.Now()
	if !now.Before(tp) {
		return false
	}
	return c.WaitFor(lock, tp.Sub(now))
}
