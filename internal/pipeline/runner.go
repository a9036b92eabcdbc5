package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/rvgswg/rvgswg/internal/config"
	"github.com/rvgswg/rvgswg/internal/logfields"
	"github.com/rvgswg/rvgswg/internal/metrics"
)

// Pipeline holds the registered features in execution order.
type Pipeline struct {
	features []Feature
}

// New orders features by config.Features regardless of argument order.
// Features with unknown names run last, in the order given.
func New(features ...Feature) *Pipeline {
	ordered := make([]Feature, len(features))
	copy(ordered, features)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank(ordered[i].Name()) < rank(ordered[j].Name())
	})
	return &Pipeline{features: ordered}
}

func rank(name config.FeatureName) int {
	for i, n := range config.Features {
		if n == name {
			return i
		}
	}
	return len(config.Features)
}

// Names returns the feature names in execution order.
func (p *Pipeline) Names() []config.FeatureName {
	out := make([]config.FeatureName, len(p.features))
	for i, f := range p.features {
		out[i] = f.Name()
	}
	return out
}

// Run executes the enabled features in order, stopping at the first fatal or
// canceled outcome. The report is always returned; the error is the aborting
// FeatureError.
func (p *Pipeline) Run(ctx context.Context, st *State) (*Report, error) {
	st = normalizeState(st)
	report := NewReport(st.BuildID, st.Now())

	for _, f := range p.features {
		name := f.Name()
		log := st.Logger.With(logfields.Feature(string(name)))

		if !st.Project.Enabled(name) {
			log.Debug("Feature disabled")
			report.Record(Outcome{Feature: name, Result: ResultSkipped}, 0, st.Recorder)
			continue
		}

		select {
		case <-ctx.Done():
			out := Classify(name, NewCanceledError(name, ctx.Err()))
			report.Record(out, 0, st.Recorder)
			report.Finish(st.Now())
			return report, out.Error
		default:
		}

		log.Info("Running feature")
		t0 := time.Now()
		err := f.Run(ctx, st)
		dur := time.Since(t0)

		out := Classify(name, err)
		report.Record(out, dur, st.Recorder)

		switch out.Result {
		case ResultSuccess:
			log.Info("Feature complete", logfields.DurationMS(float64(dur.Milliseconds())))
		case ResultWarning:
			log.Warn("Feature completed with warnings", logfields.DurationMS(float64(dur.Milliseconds())), logfields.Error(out.Error.Err))
		}

		if out.Abort {
			report.Finish(st.Now())
			return report, out.Error
		}
	}

	report.Finish(st.Now())
	return report, nil
}

func normalizeState(st *State) *State {
	if st == nil {
		st = &State{}
	}
	if st.Logger == nil {
		st.Logger = slog.Default()
	}
	if st.Recorder == nil {
		st.Recorder = metrics.NoopRecorder{}
	}
	if st.Now == nil {
		st.Now = time.Now
	}
	return st
}
