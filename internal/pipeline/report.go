package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/rvgswg/rvgswg/internal/config"
	"github.com/rvgswg/rvgswg/internal/metrics"
)

// BuildOutcome is the final state of a build.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// FeatureRecord is one feature's entry in the report.
type FeatureRecord struct {
	Feature  config.FeatureName
	Result   FeatureResult
	Duration time.Duration
	Err      error
}

// Report captures what happened during one pipeline run.
type Report struct {
	BuildID  string
	Start    time.Time
	End      time.Time
	Features []FeatureRecord
	Errors   []error // fatal or canceled, at most one
	Warnings []error
	Outcome  BuildOutcome
}

// NewReport starts a report.
func NewReport(buildID string, start time.Time) *Report {
	return &Report{BuildID: buildID, Start: start}
}

// Record appends an outcome and mirrors it into the recorder.
func (r *Report) Record(out Outcome, d time.Duration, recorder metrics.Recorder) {
	rec := FeatureRecord{Feature: out.Feature, Result: out.Result, Duration: d}
	if out.Error != nil {
		rec.Err = out.Error
		if out.Result == ResultWarning {
			r.Warnings = append(r.Warnings, out.Error)
		} else {
			r.Errors = append(r.Errors, out.Error)
		}
	}
	r.Features = append(r.Features, rec)

	recorder = metrics.OrNoop(recorder)
	if out.Result != ResultSkipped {
		recorder.ObserveFeatureDuration(string(out.Feature), d)
	}
	recorder.IncFeatureResult(string(out.Feature), metrics.ResultLabel(out.Result))
}

// Result returns the recorded result for a feature, or "" if it never ran.
func (r *Report) Result(feature config.FeatureName) FeatureResult {
	for _, rec := range r.Features {
		if rec.Feature == feature {
			return rec.Result
		}
	}
	return ""
}

// Finish stamps the end time and derives the outcome.
func (r *Report) Finish(end time.Time) {
	r.End = end
	r.DeriveOutcome()
}

// DeriveOutcome sets Outcome from the recorded errors and warnings.
func (r *Report) DeriveOutcome() {
	switch {
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
		for _, rec := range r.Features {
			if rec.Result == ResultCanceled {
				r.Outcome = OutcomeCanceled
			}
		}
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	parts := make([]string, 0, len(r.Features))
	for _, rec := range r.Features {
		parts = append(parts, fmt.Sprintf("%s=%s", rec.Feature, rec.Result))
	}
	return fmt.Sprintf("build=%s duration=%s features=[%s] errors=%d warnings=%d outcome=%s",
		r.BuildID, r.End.Sub(r.Start).Truncate(time.Millisecond), strings.Join(parts, " "),
		len(r.Errors), len(r.Warnings), r.Outcome)
}
