package config

import (
	"path/filepath"
	"strings"

	"github.com/rvgswg/rvgswg/internal/foundation/errors"
)

// Within reports whether path is base or lies below it. Both paths should be
// absolute.
func Within(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// checkLayout rejects an output directory that staging could not remove and
// recreate without touching the source tree or the project root.
func checkLayout(p Project) error {
	src, err := filepath.Abs(p.SourceDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "cannot resolve source directory").Fatal().Build()
	}
	out, err := filepath.Abs(p.OutputDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "cannot resolve output directory").Fatal().Build()
	}
	root, err := filepath.Abs(p.Root)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "cannot resolve project root").Fatal().Build()
	}

	var reason string
	switch {
	case Within(src, out):
		reason = "output directory is the source directory or lies inside it"
	case Within(out, src):
		reason = "output directory contains the source directory"
	case Within(out, root):
		reason = "output directory contains the project root"
	default:
		return nil
	}
	return errors.ConfigError(reason).
		WithContext("field", "website_output").
		WithContext("source", src).
		WithContext("output", out).
		Build()
}
