package convert

import (
	"strings"
	"time"

	"github.com/rvgswg/rvgswg/internal/config"
	"github.com/rvgswg/rvgswg/internal/foundation/errors"
)

// DefaultExtension selects org-mode documents.
const DefaultExtension = ".org"

// Descriptor configures the conversion feature.
type Descriptor struct {
	Binary string `json:"binary" yaml:"binary"`
	Header string `json:"header" yaml:"header"`
	Footer string `json:"footer" yaml:"footer"`

	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
	Workers   int    `json:"workers,omitempty" yaml:"workers,omitempty"`
	// Timeout bounds each converter invocation, e.g. "30s". Empty means no limit.
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// LoadDescriptor reads and validates the conversion descriptor.
func LoadDescriptor(path string) (Descriptor, error) {
	var d Descriptor
	if err := config.LoadDescriptor(path, &d); err != nil {
		return Descriptor{}, err
	}
	if d.Extension == "" {
		d.Extension = DefaultExtension
	}
	if !strings.HasPrefix(d.Extension, ".") {
		d.Extension = "." + d.Extension
	}
	if d.Workers < 0 {
		return Descriptor{}, errors.ValidationError("conversion workers must not be negative").
			Warning().
			WithContext("path", path).
			Build()
	}
	if _, err := d.TimeoutDuration(); err != nil {
		return Descriptor{}, errors.WrapError(err, errors.CategoryValidation, "invalid conversion timeout").
			Warning().
			WithContext("path", path).
			WithContext("timeout", d.Timeout).
			Build()
	}
	return d, nil
}

// TimeoutDuration parses Timeout; zero means unbounded.
func (d Descriptor) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(d.Timeout) == "" {
		return 0, nil
	}
	return time.ParseDuration(strings.TrimSpace(d.Timeout))
}
