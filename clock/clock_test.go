package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimeZero(t *testing.T) {
	assert.Equal(t, "00:00:00.000000", FormatTime(TimePoint{}))
}

func TestFormatTimeNonZero(t *testing.T) {
	tp := TimePoint{ticks: MicrosecondsFrom(3725123456).ticks}
	got := FormatTime(tp)
	assert.Contains(t, got, "[STD]")
	assert.NotEqual(t, "00:00:00.000000", got)
}

func TestRoundTripConversions(t *testing.T) {
	for _, us := range []int64{0, 1, 999, 1000, 1_000_000, 12_345_678} {
		assert.Equal(t, us, CountMicroseconds(MicrosecondsFrom(us)))
	}
	for _, ms := range []int64{0, 1, 500, 10_000} {
		assert.Equal(t, ms, CountMilliseconds(MillisecondsFrom(ms)))
	}
	for _, s := range []int64{0, 1, 60, 3600} {
		assert.Equal(t, s, CountSeconds(SecondsFrom(s)))
	}
}

func TestNowIsMonotonicNonDecreasing(t *testing.T) {
	prev := Now()
	for i := 0; i < 1000; i++ {
		cur := Now()
		assert.False(t, cur.Before(prev))
		prev = cur
	}
}

func TestAddSub(t *testing.T) {
	tp := Now()
	d := MillisecondsFrom(50)
	later := tp.Add(d)
	assert.True(t, later.After(tp))
	assert.Equal(t, d.ticks, later.Sub(tp).ticks)
}

func TestFormatTimeSysTag(t *testing.T) {
	got := FormatTimeSys(Now())
	assert.Contains(t, got, "[SYS]")
}
