package syncx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/walkermi/srt/clock"
)

func TestTimerSleepUntilReachesDeadline(t *testing.T) {
	timer := NewTimer()
	start := time.Now()
	deadline := clock.Now().Add(clock.MillisecondsFrom(100))

	reached := timer.SleepUntil(deadline)
	elapsed := time.Since(start)

	assert.True(t, reached)
	assert.False(t, timer.WasInterrupted())
	assert.GreaterOrEqual(t, elapsed, 90*time.Millisecond)
	assert.Less(t, elapsed, 300*time.Millisecond)
}

func TestTimerInterruptShortensSleep(t *testing.T) {
	timer := NewTimer()
	deadline := clock.Now().Add(clock.SecondsFrom(5))

	done := make(chan bool, 1)
	go func() {
		done <- timer.SleepUntil(deadline)
	}()

	time.Sleep(20 * time.Millisecond)
	start := time.Now()
	timer.Interrupt()

	select {
	case <-done:
		assert.Less(t, time.Since(start), 5*time.Millisecond+50*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("interrupt did not shorten sleep")
	}
	assert.True(t, timer.WasInterrupted())
}

func TestTimerTickDoesNotChangeDeadline(t *testing.T) {
	timer := NewTimer()
	start := time.Now()
	deadline := clock.Now().Add(clock.MillisecondsFrom(60))

	done := make(chan bool, 1)
	go func() { done <- timer.SleepUntil(deadline) }()

	time.Sleep(5 * time.Millisecond)
	timer.Tick()

	select {
	case reached := <-done:
		assert.True(t, reached)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("timer never returned")
	}
}
