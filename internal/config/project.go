package config

import (
	"path/filepath"
)

// MarkerFile identifies a directory as an rvgswg project.
const MarkerFile = ".rvgswg"

// FeatureName identifies one content-generation feature.
type FeatureName string

const (
	FeatureArticles FeatureName = "articles"
	FeatureOrgMode  FeatureName = "orgmode"
	FeatureRSS      FeatureName = "rss"
)

// Features lists every known feature in pipeline order.
var Features = []FeatureName{FeatureArticles, FeatureOrgMode, FeatureRSS}

var defaultDescriptors = map[FeatureName]string{
	FeatureOrgMode:  "rvgswg_orgmode.json",
	FeatureArticles: "rvgswg_articles.json",
	FeatureRSS:      "rvgswg_rss.json",
}

// Project is the loaded project configuration. It is passed by value and not
// modified after Load.
type Project struct {
	// Root is the directory holding the marker file.
	Root      string
	SourceDir string
	OutputDir string
	ServeDir  string

	// Workers is the conversion pool size; zero selects the default.
	Workers   int
	LogLevel  LogLevel
	LogFormat LogFormat
	// Converter replaces the conversion descriptor's binary when set.
	Converter string

	features    map[FeatureName]bool
	descriptors map[FeatureName]string
}

// Enabled reports whether the named feature is switched on. Absent flags are off.
func (p Project) Enabled(name FeatureName) bool {
	return p.features[name]
}

// DescriptorPath returns the descriptor file for a feature, resolved against Root.
func (p Project) DescriptorPath(name FeatureName) string {
	path, ok := p.descriptors[name]
	if !ok || path == "" {
		path = defaultDescriptors[name]
	}
	return p.Resolve(path)
}

// Resolve joins a relative path onto Root.
func (p Project) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}

// EnabledFeatures returns the enabled features in pipeline order.
func (p Project) EnabledFeatures() []FeatureName {
	var out []FeatureName
	for _, name := range Features {
		if p.Enabled(name) {
			out = append(out, name)
		}
	}
	return out
}
