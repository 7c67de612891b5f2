// Package metrics wires losslist.Recorder and syncx.TimerRecorder to
// Prometheus collectors, so a sender process built on this core can
// export loss-list and timer behavior the way a production SRT
// sender would, without the core packages taking a hard dependency on
// Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/walkermi/srt/clock"
)

// Metrics is a Prometheus-backed implementation of losslist.Recorder
// and syncx.TimerRecorder.
type Metrics struct {
	lossLength            prometheus.Gauge
	lossInsertedTotal      prometheus.Counter
	lossRemovedTotal       prometheus.Counter
	lossPoppedTotal        prometheus.Counter
	lossCapacityExceeded   prometheus.Counter
	timerSleepSeconds      prometheus.Histogram
	timerInterruptedTotal  prometheus.Counter
}

// New registers the SRT core collectors under namespace "srt" with
// reg, and returns a Metrics ready to pass to
// losslist.NewSndLossList and syncx.Timer.SetRecorder. reg may be
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		lossLength: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "srt",
			Subsystem: "losslist",
			Name:      "length",
			Help:      "Current count of outstanding lost sequence numbers.",
		}),
		lossInsertedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "srt",
			Subsystem: "losslist",
			Name:      "inserted_total",
			Help:      "Count of sequence numbers newly recorded as lost.",
		}),
		lossRemovedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "srt",
			Subsystem: "losslist",
			Name:      "removed_total",
			Help:      "Count of sequence numbers dropped by Remove (acknowledged).",
		}),
		lossPoppedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "srt",
			Subsystem: "losslist",
			Name:      "popped_total",
			Help:      "Count of sequence numbers dequeued by PopLostSeq.",
		}),
		lossCapacityExceeded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "srt",
			Subsystem: "losslist",
			Name:      "capacity_exceeded_total",
			Help:      "Count of Insert calls rejected for exceeding capacity.",
		}),
		timerSleepSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "srt",
			Subsystem: "timer",
			Name:      "sleep_seconds",
			Help:      "Wall-clock time spent inside Timer.SleepUntil.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}),
		timerInterruptedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "srt",
			Subsystem: "timer",
			Name:      "interrupted_total",
			Help:      "Count of sleeps that ended via Interrupt rather than deadline.",
		}),
	}
}

// ObserveLength implements losslist.Recorder.
func (m *Metrics) ObserveLength(length int) {
	m.lossLength.Set(float64(length))
}

// ObserveInserted implements losslist.Recorder.
func (m *Metrics) ObserveInserted(n int) {
	if n > 0 {
		m.lossInsertedTotal.Add(float64(n))
	}
}

// ObserveRemoved implements losslist.Recorder.
func (m *Metrics) ObserveRemoved(n int) {
	if n > 0 {
		m.lossRemovedTotal.Add(float64(n))
	}
}

// ObservePopped implements losslist.Recorder.
func (m *Metrics) ObservePopped() {
	m.lossPoppedTotal.Inc()
}

// ObserveCapacityExceeded implements losslist.Recorder.
func (m *Metrics) ObserveCapacityExceeded() {
	m.lossCapacityExceeded.Inc()
}

// ObserveSleep implements syncx.TimerRecorder.
func (m *Metrics) ObserveSleep(waited clock.Duration, interrupted bool) {
	m.timerSleepSeconds.Observe(float64(clock.CountMicroseconds(waited)) / 1e6)
	if interrupted {
		m.timerInterruptedTotal.Inc()
	}
}
