// Package metrics defines observability hooks for site builds.
package metrics

import "time"

// Recorder receives build metrics. Implementations may forward to
// Prometheus; the Noop recorder is used when metrics are not configured.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	AddPagesRendered(n int)
	AddArtifactsWritten(n int)
	IncBuildOutcome(outcome string) // outcome: success|failed
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) AddPagesRendered(int)               {}
func (NoopRecorder) AddArtifactsWritten(int)            {}
func (NoopRecorder) IncBuildOutcome(string)             {}
