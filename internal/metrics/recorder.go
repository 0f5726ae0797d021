package metrics

import "time"

// ResultLabel categorizes a single page task's outcome.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFatal   ResultLabel = "fatal"
)

// OutcomeLabel categorizes a whole build.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines the observability hooks the build orchestrator calls.
// Implementations must be safe for concurrent use; page observations arrive
// from many goroutines.
type Recorder interface {
	ObservePageDuration(category string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncPageResult(result ResultLabel)
	IncBuildOutcome(outcome OutcomeLabel)
	SetWorkerConcurrency(n int)
}

// NoopRecorder is the default Recorder; it does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObservePageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)        {}
func (NoopRecorder) IncPageResult(ResultLabel)                 {}
func (NoopRecorder) IncBuildOutcome(OutcomeLabel)              {}
func (NoopRecorder) SetWorkerConcurrency(int)                  {}
