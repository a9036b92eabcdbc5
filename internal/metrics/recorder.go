package metrics

import "time"

// ResultLabel enumerates feature result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
	ResultSkipped  ResultLabel = "skipped"
)

// BuildOutcomeLabel enumerates final build outcomes.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeWarning  BuildOutcomeLabel = "warning"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for builds, features and document
// conversions. Conversion hooks are called from worker goroutines and must be
// safe for concurrent use.
type Recorder interface {
	ObserveFeatureDuration(feature string, d time.Duration)
	IncFeatureResult(feature string, result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	ObserveConversionDuration(d time.Duration, success bool)
	IncConversionResult(success bool)
	SetConversionWorkers(n int)
	SetFeedItems(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveFeatureDuration(string, time.Duration)  {}
func (NoopRecorder) IncFeatureResult(string, ResultLabel)          {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)            {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)             {}
func (NoopRecorder) ObserveConversionDuration(time.Duration, bool) {}
func (NoopRecorder) IncConversionResult(bool)                      {}
func (NoopRecorder) SetConversionWorkers(int)                      {}
func (NoopRecorder) SetFeedItems(int)                              {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
