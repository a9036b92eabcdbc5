package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rvgswg/rvgswg/internal/foundation/errors"
)

// marker mirrors the JSON layout of the project marker file.
type marker struct {
	WebsiteSource string            `json:"website_source"`
	WebsiteOutput string            `json:"website_output"`
	WebsiteServe  string            `json:"website_serve"`
	Features      map[string]bool   `json:"features"`
	Descriptors   map[string]string `json:"descriptors,omitempty"`
	Workers       int               `json:"workers,omitempty"`
	LogLevel      string            `json:"log_level,omitempty"`
	LogFormat     string            `json:"log_format,omitempty"`
}

// Load reads the marker file at path. Directory values are resolved against
// the directory holding the marker.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, errors.WrapError(err, errors.CategoryConfig, "cannot read project marker").
			Fatal().
			WithContext("path", path).
			Build()
	}
	p, err := Parse(data)
	if err != nil {
		return Project{}, err
	}
	root := filepath.Dir(path)
	p.Root = root
	p.SourceDir = p.Resolve(p.SourceDir)
	p.OutputDir = p.Resolve(p.OutputDir)
	p.ServeDir = p.Resolve(p.ServeDir)
	if err := checkLayout(p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// Parse decodes and validates marker file contents. Paths are left as written
// and Root is the current directory.
func Parse(data []byte) (Project, error) {
	var m marker
	if err := json.Unmarshal(data, &m); err != nil {
		return Project{}, errors.WrapError(err, errors.CategoryConfig, "project marker is not valid JSON").
			Fatal().
			Build()
	}

	required := []struct {
		key   string
		value string
	}{
		{"website_source", m.WebsiteSource},
		{"website_output", m.WebsiteOutput},
		{"website_serve", m.WebsiteServe},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return Project{}, errors.ConfigError("missing required configuration value").
				WithContext("field", r.key).
				Build()
		}
	}
	if m.Features == nil {
		return Project{}, errors.ConfigError("missing required configuration value").
			WithContext("field", "features").
			Build()
	}
	if m.Workers < 0 {
		return Project{}, errors.ValidationError("workers must not be negative").
			WithContext("field", "workers").
			WithContext("value", m.Workers).
			Build()
	}

	p := Project{
		Root:        ".",
		SourceDir:   m.WebsiteSource,
		OutputDir:   m.WebsiteOutput,
		ServeDir:    m.WebsiteServe,
		Workers:     m.Workers,
		LogLevel:    NormalizeLogLevel(m.LogLevel),
		LogFormat:   NormalizeLogFormat(m.LogFormat),
		features:    make(map[FeatureName]bool, len(Features)),
		descriptors: make(map[FeatureName]string, len(m.Descriptors)),
	}
	for _, name := range Features {
		p.features[name] = m.Features[string(name)]
		if path, ok := m.Descriptors[string(name)]; ok {
			p.descriptors[name] = path
		}
	}
	return p, nil
}
