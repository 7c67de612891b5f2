// Package clock implements the monotonic time source the rest of the
// sender runtime is built on: a process-wide tick counter, duration
// arithmetic against it, and the two render formats used by logs.
package clock

import (
	"fmt"
	"strings"
	"time"
)

// Tick is one unit of the monotonic counter. TicksPerMicrosecond ticks
// equal one microsecond; it is the process-wide cpu_frequency constant.
type Tick = int64

// TicksPerMicrosecond is the process-wide cpu_frequency constant. The
// chosen platform source (below) is one nanosecond per tick.
const TicksPerMicrosecond Tick = 1000

// TimePoint is an opaque tick count from the monotonic source. The
// zero value is the distinguished "zero" time point.
type TimePoint struct {
	ticks Tick
}

// Duration is a signed tick difference.
type Duration struct {
	ticks Tick
}

// processStart anchors TimePoint ticks to Go's runtime monotonic
// clock. time.Now() carries a monotonic reading on every platform Go
// supports, so this is the portable equivalent of clock_gettime
// (CLOCK_MONOTONIC) on Unix and QueryPerformanceCounter on Windows:
// the runtime already picked the right source, now() just reads it.
var processStart = time.Now()

// Now returns the current monotonic tick count.
func Now() TimePoint {
	return TimePoint{ticks: Tick(time.Since(processStart))}
}

// IsZero reports whether tp is the distinguished zero time point.
func (tp TimePoint) IsZero() bool {
	return tp.ticks == 0
}

// Add returns tp advanced by d.
func (tp TimePoint) Add(d Duration) TimePoint {
	return TimePoint{ticks: tp.ticks + d.ticks}
}

// Sub returns the duration from other to tp.
func (tp TimePoint) Sub(other TimePoint) Duration {
	return Duration{ticks: tp.ticks - other.ticks}
}

// Before reports whether tp is strictly earlier than other.
func (tp TimePoint) Before(other TimePoint) bool {
	return tp.ticks < other.ticks
}

// After reports whether tp is strictly later than other.
func (tp TimePoint) After(other TimePoint) bool {
	return tp.ticks > other.ticks
}

// Equal reports whether tp and other are the same tick count.
func (tp TimePoint) Equal(other TimePoint) bool {
	return tp.ticks == other.ticks
}

func (d Duration) Ticks() Tick { return d.ticks }

// DurationFromTicks builds a Duration directly from a tick count.
func DurationFromTicks(ticks Tick) Duration {
	return Duration{ticks: ticks}
}

// Sub returns d minus other.
func (d Duration) Sub(other Duration) Duration {
	return Duration{ticks: d.ticks - other.ticks}
}

// LessEq reports whether d is less than or equal to other.
func (d Duration) LessEq(other Duration) bool {
	return d.ticks <= other.ticks
}

// ToStd converts d to a time.Duration. One tick is one nanosecond, so
// this conversion is exact.
func (d Duration) ToStd() time.Duration {
	return time.Duration(d.ticks)
}

// CountMicroseconds truncates d to whole microseconds.
func CountMicroseconds(d Duration) int64 {
	return d.ticks / TicksPerMicrosecond
}

// CountMilliseconds truncates d to whole milliseconds.
func CountMilliseconds(d Duration) int64 {
	return d.ticks / TicksPerMicrosecond / 1000
}

// CountSeconds truncates d to whole seconds.
func CountSeconds(d Duration) int64 {
	return d.ticks / TicksPerMicrosecond / 1000000
}

// MicrosecondsFrom converts a microsecond count to a Duration. The
// From conversions only multiply by the compile-time
// TicksPerMicrosecond, so no precision is lost.
func MicrosecondsFrom(us int64) Duration {
	return Duration{ticks: us * TicksPerMicrosecond}
}

// MillisecondsFrom converts a millisecond count to a Duration.
func MillisecondsFrom(ms int64) Duration {
	return Duration{ticks: (1000 * ms) * TicksPerMicrosecond}
}

// SecondsFrom converts a second count to a Duration.
func SecondsFrom(s int64) Duration {
	return Duration{ticks: (1000000 * s) * TicksPerMicrosecond}
}

// FormatTime renders tp as "[DDD ]HH:MM:SS.uuuuuu [STD]". The zero
// time point renders as "00:00:00.000000" with no suffix. [STD]
// marks the chosen source: Go's runtime monotonic clock.
func FormatTime(tp TimePoint) string {
	if tp.IsZero() {
		return "00:00:00.000000"
	}

	totalUs := tp.ticks / TicksPerMicrosecond
	us := totalUs % 1000000
	totalSec := totalUs / 1000000

	days := totalSec / (60 * 60 * 24)
	hours := totalSec/(60*60) - days*24
	minutes := totalSec/60 - days*24*60 - hours*60
	seconds := totalSec - days*24*60*60 - hours*60*60 - minutes*60

	var b strings.Builder
	if days != 0 {
		fmt.Fprintf(&b, "%dD ", days)
	}
	fmt.Fprintf(&b, "%02d:%02d:%02d.%06d [STD]", hours, minutes, seconds, us)
	return b.String()
}

// FormatTimeSys anchors tp to the current wall clock by sampling both
// once and applying the offset, then renders local time with a
// microsecond suffix and a [SYS] tag.
func FormatTimeSys(tp TimePoint) string {
	nowWall := time.Now()
	nowMono := Now()
	deltaUs := CountMicroseconds(tp.Sub(nowMono))

	target := nowWall.Add(time.Duration(deltaUs) * time.Microsecond).Local()
	us := (tp.ticks / TicksPerMicrosecond) % 1000000
	return fmt.Sprintf("%s.%06d [SYS]", target.Format("15:04:05"), us)
}
