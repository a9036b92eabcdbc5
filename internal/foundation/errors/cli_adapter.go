package errors

import (
	"context"
	"log/slog"
	"os"

	"github.com/rvgswg/rvgswg/internal/logging"
)

// ExitFailure is the status for every fatal condition reported to the shell.
const ExitFailure = 1

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		exit:    os.Exit,
	}
}

// WithExit replaces the process exit hook (tests).
func (a *CLIErrorAdapter) WithExit(fn func(int)) *CLIErrorAdapter {
	if fn != nil {
		a.exit = fn
	}
	return a
}

// ExitCodeFor determines the exit code for an error. Every failure maps to
// ExitFailure; the category only changes how it is logged.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	return ExitFailure
}

// HandleError logs err and exits the program with the matching code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	a.logError(err)
	a.exit(a.ExitCodeFor(err))
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if classified, ok := AsClassified(err); ok {
		level := SlogLevelFromSeverity(classified.Severity())
		attrs := classified.LogAttrs()
		if a.verbose {
			attrs = append(attrs, slog.String("detail", err.Error()))
		}
		a.logger.LogAttrs(context.Background(), level, classified.Message(), attrs...)
		return
	}

	a.logger.Error("Build failed", "error", err)
}

// SlogLevelFromSeverity converts ClassifiedError severity to slog level.
func SlogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityFatal:
		return logging.LevelCritical
	default:
		return slog.LevelError
	}
}
