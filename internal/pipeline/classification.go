package pipeline

import (
	"context"
	"errors"

	"github.com/rvgswg/rvgswg/internal/config"
)

// Outcome is the normalized result of one feature run.
type Outcome struct {
	Feature config.FeatureName
	Result  FeatureResult
	Error   *FeatureError
	Abort   bool
}

func resultFromKind(k FeatureErrorKind) FeatureResult {
	switch k {
	case FeatureErrorWarning:
		return ResultWarning
	case FeatureErrorCanceled:
		return ResultCanceled
	default:
		return ResultFatal
	}
}

// Classify converts a raw error returned by a feature into an Outcome.
// Errors that are not FeatureErrors are fatal, except context cancellation.
func Classify(feature config.FeatureName, err error) Outcome {
	if err == nil {
		return Outcome{Feature: feature, Result: ResultSuccess}
	}

	var fe *FeatureError
	if !errors.As(err, &fe) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			fe = NewCanceledError(feature, err)
		} else {
			fe = NewFatalError(feature, err)
		}
	}

	return Outcome{
		Feature: feature,
		Result:  resultFromKind(fe.Kind),
		Error:   fe,
		Abort:   fe.Kind != FeatureErrorWarning,
	}
}
