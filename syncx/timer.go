package syncx

import (
	"runtime"

	"github.com/walkermi/srt/clock"
)

// busyWaitThreshold is the final slice of a SleepUntil handled by
// polling clock.Now() in a tight loop instead of a timed wait, for
// sub-millisecond accuracy. 1ms on Unix-like platforms, 10ms on
// Windows, per spec.md §4.2 — Go has no _WIN32 macro, runtime.GOOS is
// its portable equivalent.
func busyWaitThreshold() clock.Duration {
	if runtime.GOOS == "windows" {
		return clock.MillisecondsFrom(10)
	}
	return clock.MillisecondsFrom(1)
}

// TimerRecorder observes completed sleeps for external reporting
// (metrics, tracing). Called after the sleep ends, outside any lock.
type TimerRecorder interface {
	ObserveSleep(waited clock.Duration, interrupted bool)
}

type nopTimerRecorder struct{}

func (nopTimerRecorder) ObserveSleep(clock.Duration, bool) {}

// Timer is an interruptible deadline wait built on Event, grounded on
// srtcore/sync.cpp's CTimer.
type Timer struct {
	event       *Event
	scheduledTp clock.TimePoint
	interrupted bool
	rec         TimerRecorder
}

// NewTimer constructs a Timer backed by its own Event.
func NewTimer() *Timer {
	return &Timer{event: NewEvent(), rec: nopTimerRecorder{}}
}

// SetRecorder installs rec to observe every future SleepUntil call.
// Passing nil restores the no-op recorder.
func (t *Timer) SetRecorder(rec TimerRecorder) {
	if rec == nil {
		rec = nopTimerRecorder{}
	}
	t.rec = rec
}

// SleepUntil suspends the caller until Now() >= tp or until another
// goroutine calls Interrupt. It records tp under the event's mutex,
// then, holding that mutex between each deadline check and the wait
// that follows it, loops timed waits on the event up to the deadline
// minus busyWaitThreshold, so a concurrent Interrupt that rewrites
// scheduled to "now" and notifies shortens the sleep. The remaining
// tail is a busy loop polling Now(). It
// returns cur >= scheduled at the end, the pinned convention from
// spec.md §9: true on a reached deadline, and also true immediately
// after an Interrupt (which sets the deadline to now). WasInterrupted
// resolves the ambiguity spec.md §9 flags as an open question.
func (t *Timer) SleepUntil(tp clock.TimePoint) bool {
	start := clock.Now()

	mu := t.event.Mu()
	mu.Lock()
	t.scheduledTp = tp
	t.interrupted = false
	mu.Unlock()

	threshold := busyWaitThreshold()
	twiceThreshold := clock.DurationFromTicks(2 * threshold.Ticks())
	cur := clock.Now()

	lock := NewUniqueLock(mu)
	for cur.Before(t.scheduledTp) {
		wait := t.scheduledTp.Sub(cur)
		if wait.LessEq(twiceThreshold) {
			break
		}
		t.event.WaitFor(lock, wait.Sub(threshold))
		cur = clock.Now()
	}
	lock.Unlock()

	for cur.Before(t.deadline()) {
		runtime.Gosched()
		cur = clock.Now()
	}

	reached := !cur.Before(t.deadline())
	t.rec.ObserveSleep(cur.Sub(start), t.WasInterrupted())
	return reached
}

func (t *Timer) deadline() clock.TimePoint {
	mu := t.event.Mu()
	mu.Lock()
	defer mu.Unlock()
	return t.scheduledTp
}

// Interrupt shortens the current SleepUntil to return immediately:
// it sets the deadline to now and broadcasts.
func (t *Timer) Interrupt() {
	mu := t.event.Mu()
	mu.Lock()
	t.scheduledTp = clock.Now()
	t.interrupted = true
	mu.Unlock()
	log.Debug("timer interrupted")
	t.event.NotifyAll()
}

// Tick notifies one waiter without changing the deadline.
func (t *Timer) Tick() {
	t.event.NotifyOne()
}

// WasInterrupted reports whether the most recent SleepUntil ended via
// Interrupt rather than by reaching its deadline naturally. This is
// the tri-valued probe spec.md §9 suggests as an alternative to an
// ambiguous boolean return.
func (t *Timer) WasInterrupted() bool {
	mu := t.event.Mu()
	mu.Lock()
	defer mu.Unlock()
	return t.interrupted
}
