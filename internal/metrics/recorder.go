package metrics

import "time"

// Outcome enumerates what happened to one document in one processor.
type Outcome string

const (
	OutcomeNoMarker  Outcome = "no_marker"
	OutcomeCollected Outcome = "collected"
	OutcomeFailed    Outcome = "parse_failed"
)

// Recorder defines observability hooks for a run.
type Recorder interface {
	ObserveDocument(processor string, outcome Outcome)
	ObserveRunDuration(d time.Duration)
	IncOutputWritten(processor string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveDocument(string, Outcome) {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncOutputWritten(string)          {}
