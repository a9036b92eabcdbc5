package staging

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rvgswg/rvgswg/internal/config"
	"github.com/rvgswg/rvgswg/internal/foundation/errors"
	"github.com/rvgswg/rvgswg/internal/logfields"
)

// Manager stages a source directory into an output directory.
type Manager struct {
	sourceDir string
	outputDir string
	logger    *slog.Logger
}

// NewManager creates a staging manager.
func NewManager(sourceDir, outputDir string) *Manager {
	return &Manager{
		sourceDir: sourceDir,
		outputDir: outputDir,
		logger:    slog.Default(),
	}
}

// WithLogger sets the logger used for staging diagnostics.
func (m *Manager) WithLogger(logger *slog.Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// OutputDir returns the directory Stage writes to.
func (m *Manager) OutputDir() string {
	return m.outputDir
}

// Stage removes the output tree, recreates it and copies the source tree into
// it. It returns the copy target, which always equals the output directory.
func (m *Manager) Stage() (string, error) {
	info, err := os.Stat(m.sourceDir)
	if err != nil || !info.IsDir() {
		return "", errors.FileSystemError("website source directory does not exist").
			Fatal().
			WithCause(err).
			WithContext("path", m.sourceDir).
			Build()
	}

	if err := m.Clean(); err != nil {
		return "", err
	}

	if err := os.Mkdir(m.outputDir, info.Mode().Perm()); err != nil {
		if !os.IsExist(err) {
			return "", errors.WrapError(err, errors.CategoryFileSystem, "cannot create output directory").
				Fatal().
				WithContext("path", m.outputDir).
				Build()
		}
		m.logger.Error("Output directory already exists", logfields.Path(m.outputDir))
	}

	target, err := CopyDir(m.sourceDir, m.outputDir)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "cannot copy source tree").
			Fatal().
			WithContext("path", m.sourceDir).
			WithContext("output", m.outputDir).
			Build()
	}
	if filepath.Clean(target) != filepath.Clean(m.outputDir) {
		return "", errors.FileSystemError("copied directory does not correspond to the target directory").
			Fatal().
			WithContext("target", target).
			WithContext("output", m.outputDir).
			Build()
	}

	m.logger.Debug("Staged source tree", logfields.Path(m.sourceDir), logfields.Output(target))
	return target, nil
}

// Clean removes the output tree. A missing tree is not an error. An output
// directory that overlaps the source tree is refused before anything is removed.
func (m *Manager) Clean() error {
	if err := m.checkOverlap(); err != nil {
		return err
	}
	if err := os.RemoveAll(m.outputDir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot remove output directory").
			Fatal().
			WithContext("path", m.outputDir).
			Build()
	}
	return nil
}

func (m *Manager) checkOverlap() error {
	src, srcErr := filepath.Abs(m.sourceDir)
	out, outErr := filepath.Abs(m.outputDir)
	if srcErr != nil || outErr != nil || config.Within(src, out) || config.Within(out, src) {
		return errors.FileSystemError("output directory overlaps the source directory").
			Fatal().
			WithContext("path", m.sourceDir).
			WithContext("output", m.outputDir).
			Build()
	}
	return nil
}
