package convert

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/rvgswg/rvgswg/internal/config"
	"github.com/rvgswg/rvgswg/internal/foundation/errors"
	"github.com/rvgswg/rvgswg/internal/logfields"
	"github.com/rvgswg/rvgswg/internal/pipeline"
)

// Feature converts every document in the staged tree.
type Feature struct {
	converter Converter
	lookPath  func(string) (string, error)
}

// NewFeature creates the conversion feature using the external converter.
func NewFeature() *Feature {
	return &Feature{lookPath: exec.LookPath}
}

// WithConverter replaces the external converter (tests).
func (f *Feature) WithConverter(c Converter) *Feature {
	f.converter = c
	return f
}

// WithLookPath replaces the binary lookup (tests).
func (f *Feature) WithLookPath(fn func(string) (string, error)) *Feature {
	if fn != nil {
		f.lookPath = fn
	}
	return f
}

func (*Feature) Name() config.FeatureName { return config.FeatureOrgMode }

// Summary counts the task results of one run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Summarize counts successes and failures.
func Summarize(results []TaskResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.OK() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// Run discovers documents, converts them and reports a warning when the
// converter is missing or any document fails.
func (f *Feature) Run(ctx context.Context, st *pipeline.State) error {
	path := st.Project.DescriptorPath(config.FeatureOrgMode)
	desc, err := LoadDescriptor(path)
	if err != nil {
		st.Logger.Error("Cannot load conversion descriptor", logfields.Path(path), logfields.Error(err))
		return pipeline.NewWarnError(f.Name(), err)
	}

	binary := desc.Binary
	if st.Project.Converter != "" {
		binary = st.Project.Converter
	}
	resolved, err := f.lookPath(binary)
	if binary == "" || err != nil {
		st.Logger.Error("The converter binary does not exist, skipping conversion", logfields.Binary(binary))
		return pipeline.NewWarnError(f.Name(), errors.WrapError(fmt.Errorf("%w: %q", ErrConverterNotFound, binary), errors.CategoryConverter, "converter unavailable").
			Warning().
			WithContext("binary", binary).
			Build())
	}
	st.Logger.Info("Converter detected", logfields.Binary(resolved))

	files, err := Discover(st.OutputDir(), desc.Extension)
	if err != nil {
		return pipeline.NewFatalError(f.Name(), errors.WrapError(err, errors.CategoryFileSystem, "cannot scan output tree").
			Fatal().
			WithContext("path", st.OutputDir()).
			Build())
	}

	tasks := make([]Task, len(files))
	for i, file := range files {
		tasks[i] = Task{Path: file, Header: desc.Header, Footer: desc.Footer, Binary: resolved}
	}

	workers := desc.Workers
	if workers == 0 {
		workers = st.Project.Workers
	}
	converter := f.converter
	if converter == nil {
		timeout, _ := desc.TimeoutDuration()
		converter = ExecConverter{Timeout: timeout}
	}

	engine := NewEngine(converter, workers).WithLogger(st.Logger).WithRecorder(st.Recorder)
	if st.Now != nil {
		engine = engine.WithClock(st.Now)
	}
	st.Logger.Info("Converting documents", logfields.Count(len(tasks)), logfields.Workers(engine.Workers()))

	results := engine.RunAll(ctx, tasks)
	if err := ctx.Err(); err != nil {
		return pipeline.NewCanceledError(f.Name(), err)
	}

	sum := Summarize(results)
	st.Logger.Info("Conversion finished", logfields.Count(sum.Succeeded), logfields.Failed(sum.Failed))
	if sum.Failed > 0 {
		return pipeline.NewWarnError(f.Name(), fmt.Errorf("%w: %d of %d documents", ErrConversionFailed, sum.Failed, sum.Total))
	}
	return nil
}
