package build

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rvgswg/rvgswg/internal/articles"
	"github.com/rvgswg/rvgswg/internal/config"
	"github.com/rvgswg/rvgswg/internal/convert"
	"github.com/rvgswg/rvgswg/internal/logfields"
	"github.com/rvgswg/rvgswg/internal/metrics"
	"github.com/rvgswg/rvgswg/internal/pipeline"
	"github.com/rvgswg/rvgswg/internal/rss"
	"github.com/rvgswg/rvgswg/internal/staging"
)

// Service executes builds.
type Service struct {
	features []pipeline.Feature
	logger   *slog.Logger
	recorder metrics.Recorder
	now      func() time.Time
	newID    func() string
}

// NewService creates a service with the articles, conversion and RSS features.
func NewService() *Service {
	return &Service{
		features: []pipeline.Feature{
			articles.NewFeature(),
			convert.NewFeature(),
			rss.NewFeature(),
		},
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithFeatures replaces the registered features (for testing).
func (s *Service) WithFeatures(features ...pipeline.Feature) *Service {
	s.features = features
	return s
}

func (s *Service) WithLogger(logger *slog.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	s.recorder = metrics.OrNoop(r)
	return s
}

// WithClock sets the clock handed to features.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Run stages the project and runs the pipeline. A staging failure returns a
// nil report; otherwise the report is always returned alongside any fatal
// feature error.
func (s *Service) Run(ctx context.Context, p config.Project) (*pipeline.Report, error) {
	start := time.Now()
	buildID := s.newID()
	log := s.logger.With(logfields.BuildID(buildID))

	log.Info("Staging source tree", logfields.Path(p.SourceDir), logfields.Output(p.OutputDir))
	target, err := staging.NewManager(p.SourceDir, p.OutputDir).WithLogger(log).Stage()
	if err != nil {
		s.finish(start, metrics.BuildOutcomeFailed)
		return nil, err
	}
	p.OutputDir = target

	st := &pipeline.State{
		Project:  p,
		BuildID:  buildID,
		Logger:   log,
		Recorder: s.recorder,
		Now:      s.now,
	}
	report, err := pipeline.New(s.features...).Run(ctx, st)

	s.finish(start, outcomeLabel(report.Outcome))
	log.Info("Build finished", logfields.Result(string(report.Outcome)), "summary", report.Summary())
	return report, err
}

func (s *Service) finish(start time.Time, outcome metrics.BuildOutcomeLabel) {
	s.recorder.ObserveBuildDuration(time.Since(start))
	s.recorder.IncBuildOutcome(outcome)
}

func outcomeLabel(o pipeline.BuildOutcome) metrics.BuildOutcomeLabel {
	switch o {
	case pipeline.OutcomeSuccess:
		return metrics.BuildOutcomeSuccess
	case pipeline.OutcomeWarning:
		return metrics.BuildOutcomeWarning
	case pipeline.OutcomeCanceled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeFailed
	}
}
