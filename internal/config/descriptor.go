package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rvgswg/rvgswg/internal/foundation/errors"
)

// LoadDescriptor decodes the feature descriptor at path into v. Files ending
// in .yaml or .yml are decoded as YAML, everything else as JSON. Failures are
// recoverable config errors; the caller decides whether to skip the feature.
func LoadDescriptor(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "cannot read feature descriptor").
			WithContext("path", path).
			Build()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "cannot decode feature descriptor").
			WithContext("path", path).
			Build()
	}
	return nil
}
