package metrics

import "time"

// Outcome enumerates generator run results.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeCanceled Outcome = "canceled"
)

// Recorder defines observability hooks for generator runs and the preview
// server. Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveBuildDuration(mode string, d time.Duration)
	IncBuildOutcome(mode string, outcome Outcome)
	IncRebuildTrigger(reason string) // reason: watch|schedule
	SetLastSuccess(t time.Time)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(string, time.Duration) {}
func (NoopRecorder) IncBuildOutcome(string, Outcome)            {}
func (NoopRecorder) IncRebuildTrigger(string)                   {}
func (NoopRecorder) SetLastSuccess(time.Time)                   {}
