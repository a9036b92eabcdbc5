package convert

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rvgswg/rvgswg/internal/foundation"
	"github.com/rvgswg/rvgswg/internal/logfields"
	"github.com/rvgswg/rvgswg/internal/logging"
	"github.com/rvgswg/rvgswg/internal/metrics"
)

// Engine runs conversion tasks across a fixed-size worker pool.
type Engine struct {
	converter Converter
	workers   int
	logger    *slog.Logger
	recorder  metrics.Recorder
	now       func() time.Time
}

// NewEngine creates an engine. The pool size is clamped by ResolvePoolSize.
func NewEngine(converter Converter, workers int) *Engine {
	if converter == nil {
		converter = ExecConverter{}
	}
	return &Engine{
		converter: converter,
		workers:   ResolvePoolSize(workers),
		logger:    slog.Default(),
		recorder:  metrics.NoopRecorder{},
		now:       time.Now,
	}
}

func (e *Engine) WithLogger(logger *slog.Logger) *Engine {
	if logger != nil {
		e.logger = logger
	}
	return e
}

func (e *Engine) WithRecorder(r metrics.Recorder) *Engine {
	e.recorder = metrics.OrNoop(r)
	return e
}

// WithClock sets the clock used for footers without a #+DATE directive.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	if now != nil {
		e.now = now
	}
	return e
}

// Workers returns the pool size.
func (e *Engine) Workers() int { return e.workers }

// RunAll converts every task and returns one result per task, in task order.
// A failed task never stops the others; tasks not started before ctx is done
// fail with the context error.
func (e *Engine) RunAll(ctx context.Context, tasks []Task) []TaskResult {
	if len(tasks) == 0 {
		return nil
	}

	concurrency := e.workers
	if concurrency > len(tasks) {
		concurrency = len(tasks)
	}
	e.recorder.SetConversionWorkers(concurrency)

	results := make([]TaskResult, len(tasks))
	var wg sync.WaitGroup
	jobs := make(chan int, len(tasks))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = TaskResult{Path: tasks[idx].Path, Step: StepConvert, Err: ctx.Err()}
					continue
				}
				results[idx] = e.run(ctx, tasks[idx])
			}
		}()
	}

	for i := range tasks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func (e *Engine) run(ctx context.Context, t Task) TaskResult {
	t0 := time.Now()
	res := e.execute(ctx, t)
	res.Duration = time.Since(t0)

	e.recorder.ObserveConversionDuration(res.Duration, res.OK())
	e.recorder.IncConversionResult(res.OK())

	if res.OK() {
		e.logger.Debug("Converted document", logfields.Path(t.Path))
		return res
	}

	attrs := []any{logfields.Path(t.Path), logfields.Step(string(res.Step)), logfields.Error(res.Err)}
	if out := strings.TrimSpace(string(res.Output)); out != "" {
		attrs = append(attrs, logfields.Output(out))
	}
	if res.Step == StepConvert {
		logging.Critical(e.logger, "Converter exited with error", attrs...)
	} else {
		e.logger.Error("Cannot prepare document", attrs...)
	}
	return res
}

// prepare reads the document, then prepends the header and appends the
// footer. The first failing step ends the chain.
func (e *Engine) prepare(t Task) foundation.Result[[]byte, *StepError] {
	original := atStep(StepRead, ReadDocument(t.Path))
	withHeader := foundation.FlatMap(original, func(b []byte) foundation.Result[[]byte, *StepError] {
		return atStep(StepHeader, foundation.FromTuple(b, PrependHeader(t.Path, t.Header, b)))
	})
	return foundation.FlatMap(withHeader, func(b []byte) foundation.Result[[]byte, *StepError] {
		footer := RenderFooter(t.Footer, string(b), e.now())
		return atStep(StepFooter, foundation.FromTuple(b, AppendFooter(t.Path, footer)))
	})
}

func atStep(step Step, r foundation.Result[[]byte, error]) foundation.Result[[]byte, *StepError] {
	v, err := r.ToTuple()
	if err != nil {
		return foundation.Err[[]byte, *StepError](&StepError{Step: step, Err: err})
	}
	return foundation.Ok[[]byte, *StepError](v)
}

func (e *Engine) execute(ctx context.Context, t Task) TaskResult {
	res := TaskResult{Path: t.Path}

	prepared := e.prepare(t)
	if prepared.IsErr() {
		failed := prepared.UnwrapErr()
		res.Step, res.Err = failed.Step, failed.Err
		return res
	}

	out, err := e.converter.Convert(ctx, t.Binary, t.Path)
	res.Output = out
	if err != nil {
		res.Step, res.Err = StepConvert, err
	}
	return res
}
