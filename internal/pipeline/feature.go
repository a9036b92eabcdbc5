// Package pipeline runs the content-generation features over a staged output
// tree in a fixed order and classifies each feature's outcome.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rvgswg/rvgswg/internal/config"
	"github.com/rvgswg/rvgswg/internal/metrics"
)

// Feature is one content-generation unit. Features communicate only through
// files in the output tree.
type Feature interface {
	Name() config.FeatureName
	Run(ctx context.Context, st *State) error
}

// State carries everything a feature may read during a build.
type State struct {
	Project  config.Project
	BuildID  string
	Logger   *slog.Logger
	Recorder metrics.Recorder
	Now      func() time.Time
}

// OutputDir is the staged tree features work on.
func (s *State) OutputDir() string {
	return s.Project.OutputDir
}

// Resolve joins a path relative to the output tree.
func (s *State) Resolve(path string) string {
	return resolveIn(s.Project.OutputDir, path)
}

// FeatureErrorKind classifies the outcome of a feature.
type FeatureErrorKind string

const (
	FeatureErrorFatal    FeatureErrorKind = "fatal"    // Build must abort.
	FeatureErrorWarning  FeatureErrorKind = "warning"  // Non-fatal; record and continue.
	FeatureErrorCanceled FeatureErrorKind = "canceled" // Context cancellation.
)

// FeatureError wraps a feature failure with its kind.
type FeatureError struct {
	Kind    FeatureErrorKind
	Feature config.FeatureName
	Err     error
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("%s feature %s: %v", e.Kind, e.Feature, e.Err)
}
func (e *FeatureError) Unwrap() error { return e.Err }

// NewFatalError creates a fatal feature error.
func NewFatalError(feature config.FeatureName, err error) *FeatureError {
	return &FeatureError{Kind: FeatureErrorFatal, Feature: feature, Err: err}
}

func NewWarnError(feature config.FeatureName, err error) *FeatureError {
	return &FeatureError{Kind: FeatureErrorWarning, Feature: feature, Err: err}
}

func NewCanceledError(feature config.FeatureName, err error) *FeatureError {
	return &FeatureError{Kind: FeatureErrorCanceled, Feature: feature, Err: err}
}

// FeatureResult captures the high-level outcome of a feature.
type FeatureResult string

const (
	ResultSuccess  FeatureResult = "success"
	ResultWarning  FeatureResult = "warning"
	ResultFatal    FeatureResult = "fatal"
	ResultCanceled FeatureResult = "canceled"
	ResultSkipped  FeatureResult = "skipped"
)
