package losslist

// Recorder observes SndLossList mutations for external reporting
// (metrics, tracing). Every method is called synchronously by the
// mutating SndLossList method, after it has released the list's own
// lock.
type Recorder interface {
	ObserveLength(length int)
	ObserveInserted(n int)
	ObserveRemoved(n int)
	ObservePopped()
	ObserveCapacityExceeded()
}

// nopRecorder is used when a caller passes a nil Recorder.
type nopRecorder struct{}

func (nopRecorder) ObserveLength(int)          {}
func (nopRecorder) ObserveInserted(int)        {}
func (nopRecorder) ObserveRemoved(int)         {}
func (nopRecorder) ObservePopped()             {}
func (nopRecorder) ObserveCapacityExceeded()   {}
