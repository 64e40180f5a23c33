package metrics

import "time"

// ResultLabel enumerates task result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for a generator run. Implementations
// may forward to Prometheus or similar.
type Recorder interface {
	ObserveTaskDuration(task string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncTaskResult(task string, result ResultLabel)
	IncFilesRendered(task string)
	IncFailures(category string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveTaskDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)        {}
func (NoopRecorder) IncTaskResult(string, ResultLabel)         {}
func (NoopRecorder) IncFilesRendered(string)                   {}
func (NoopRecorder) IncFailures(string)                        {}
