package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rvgswg/rvgswg/internal/foundation/errors"
)

const (
	EnvWorkers   = "RVGSWG_WORKERS"
	EnvLogLevel  = "RVGSWG_LOG_LEVEL"
	EnvConverter = "RVGSWG_CONVERTER"
)

// LoadEnvFile loads root/.env into the process environment. Variables that are
// already set win. A missing file is not an error.
func LoadEnvFile(root string) error {
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "cannot load .env file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}

// ApplyEnv returns p with environment overrides applied.
func ApplyEnv(p Project, lookup func(string) (string, bool)) (Project, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if raw, ok := lookup(EnvWorkers); ok && strings.TrimSpace(raw) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			return p, errors.ValidationError("invalid worker count in environment").
				WithContext("field", EnvWorkers).
				WithContext("value", raw).
				Build()
		}
		p.Workers = n
	}
	if raw, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(raw) != "" {
		p.LogLevel = NormalizeLogLevel(raw)
	}
	if raw, ok := lookup(EnvConverter); ok {
		p.Converter = strings.TrimSpace(raw)
	}
	return p, nil
}
