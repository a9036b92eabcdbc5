package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyFeature    = "feature"
	KeyResult     = "result"
	KeyPath       = "path"
	KeyGroup      = "group"
	KeyBinary     = "binary"
	KeyWorkers    = "workers"
	KeyCount      = "count"
	KeyFailed     = "failed"
	KeyStep       = "step"
	KeyDurationMS = "duration_ms"
	KeyOutput     = "output"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Feature(name string) slog.Attr    { return slog.String(KeyFeature, name) }
func Result(r string) slog.Attr        { return slog.String(KeyResult, r) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Group(dest string) slog.Attr      { return slog.String(KeyGroup, dest) }
func Binary(b string) slog.Attr        { return slog.String(KeyBinary, b) }
func Workers(n int) slog.Attr          { return slog.Int(KeyWorkers, n) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Failed(n int) slog.Attr           { return slog.Int(KeyFailed, n) }
func Step(s string) slog.Attr          { return slog.String(KeyStep, s) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Output(out string) slog.Attr      { return slog.String(KeyOutput, out) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
