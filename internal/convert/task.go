package convert

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rvgswg/rvgswg/internal/foundation"
	"github.com/rvgswg/rvgswg/internal/templates"
)

// DateLayout is the DD-MM-YYYY layout used by #+DATE and the footer.
const DateLayout = "02-01-2006"

var datePattern = regexp.MustCompile(`#\+DATE:\s(\d{2}-\d{2}-\d{4})`)

// Task is the conversion of one document. Tasks share no mutable state.
type Task struct {
	Path   string
	Header string
	Footer string
	Binary string
}

// Step names the part of a task that failed.
type Step string

const (
	StepRead    Step = "read"
	StepHeader  Step = "header"
	StepFooter  Step = "footer"
	StepConvert Step = "convert"
)

// StepError records which step of a task failed.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return string(e.Step) + ": " + e.Err.Error() }
func (e *StepError) Unwrap() error { return e.Err }

// TaskResult reports how a task ended. Step is empty on success.
type TaskResult struct {
	Path     string
	Step     Step
	Err      error
	Output   []byte
	Duration time.Duration
}

// OK reports whether the task succeeded.
func (r TaskResult) OK() bool { return r.Err == nil }

// Discover returns every file under root ending in ext, in lexical order.
func Discover(root, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ResolveDate returns the first #+DATE: DD-MM-YYYY value in text, or now in
// the same layout.
func ResolveDate(text string, now time.Time) string {
	if m := datePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return now.Format(DateLayout)
}

// RenderFooter resolves {{date}} in footer against the original text.
func RenderFooter(footer, original string, now time.Time) string {
	return templates.Substitute(footer, templates.Values{templates.TokenDate: ResolveDate(original, now)})
}

// ReadDocument reads the full original text of a document.
func ReadDocument(path string) foundation.Result[[]byte, error] {
	data, err := os.ReadFile(path)
	return foundation.FromTuple(data, err)
}

// PrependHeader rewrites path as header followed by original.
func PrependHeader(path, header string, original []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	data := make([]byte, 0, len(header)+len(original))
	data = append(data, header...)
	data = append(data, original...)
	return os.WriteFile(path, data, mode)
}

// AppendFooter appends footer to path.
func AppendFooter(path, footer string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(footer); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
