package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walkermi/srt/clock"
)

func TestNewRegistersWithoutPanicking(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() {
		New(reg)
	})
}

func TestObserveLength(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveLength(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(m.lossLength))

	m.ObserveLength(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.lossLength))
}

func TestObserveInsertedIgnoresNonPositive(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveInserted(0)
	m.ObserveInserted(-3)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.lossInsertedTotal))

	m.ObserveInserted(5)
	assert.Equal(t, float64(5), testutil.ToFloat64(m.lossInsertedTotal))
}

func TestObserveRemovedIgnoresNonPositive(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRemoved(0)
	m.ObserveRemoved(-1)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.lossRemovedTotal))

	m.ObserveRemoved(2)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.lossRemovedTotal))
}

func TestObservePopped(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObservePopped()
	m.ObservePopped()
	assert.Equal(t, float64(2), testutil.ToFloat64(m.lossPoppedTotal))
}

func TestObserveCapacityExceeded(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveCapacityExceeded()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.lossCapacityExceeded))
}

func TestObserveSleepRecordsDurationAndInterruptFlag(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSleep(clock.MillisecondsFrom(50), false)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.timerInterruptedTotal))

	m.ObserveSleep(clock.MillisecondsFrom(1), true)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.timerInterruptedTotal))

	count := testutil.CollectAndCount(m.timerSleepSeconds)
	assert.Equal(t, 1, count)
}
