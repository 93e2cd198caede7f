package metrics

import "time"

// ResultLabel enumerates result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for builds, inventory fetches and highlighting.
type Recorder interface {
	ObserveBuildDuration(builder string, d time.Duration)
	IncBuildOutcome(builder string, result ResultLabel)
	AddPagesRendered(builder string, n int)
	ObserveInventoryFetch(target string, d time.Duration, success bool)
	IncInventoryRetry(target string)
	IncHighlight(language string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(string, time.Duration)        {}
func (NoopRecorder) IncBuildOutcome(string, ResultLabel)               {}
func (NoopRecorder) AddPagesRendered(string, int)                      {}
func (NoopRecorder) ObserveInventoryFetch(string, time.Duration, bool) {}
func (NoopRecorder) IncInventoryRetry(string)                          {}
func (NoopRecorder) IncHighlight(string)                               {}
