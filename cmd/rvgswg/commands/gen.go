package commands

import (
	"context"
	"log/slog"

	"github.com/rvgswg/rvgswg/internal/build"
	"github.com/rvgswg/rvgswg/internal/config"
	"github.com/rvgswg/rvgswg/internal/logfields"
	"github.com/rvgswg/rvgswg/internal/metrics"
	"github.com/rvgswg/rvgswg/internal/watch"
)

// GenCmd implements the 'gen' command.
type GenCmd struct {
	Watch       bool   `short:"w" help:"Rebuild when files under the source directory change"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file after each build" type:"path"`
}

func (c *GenCmd) Run(g *Global, root *CLI) error {
	p, logger, err := loadProject(g, root)
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if c.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}
	svc := build.NewService().WithLogger(logger).WithRecorder(recorder)

	gen := func(ctx context.Context) error {
		_, err := svc.Run(ctx, p)
		c.writeMetrics(prom, logger)
		return err
	}

	ctx := g.context()
	if !c.Watch {
		return gen(ctx)
	}
	if err := gen(ctx); err != nil {
		logger.Error("Build failed", logfields.Error(err))
	}
	return watchSource(ctx, p, logger, gen)
}

func (c *GenCmd) writeMetrics(prom *metrics.PrometheusRecorder, logger *slog.Logger) {
	if prom == nil {
		return
	}
	if err := prom.WriteTextfile(c.MetricsFile); err != nil {
		logger.Warn("Cannot write metrics file", logfields.Path(c.MetricsFile), logfields.Error(err))
	}
}

func watchSource(ctx context.Context, p config.Project, logger *slog.Logger, gen func(context.Context) error) error {
	return watch.New(p.SourceDir).WithLogger(logger).Run(ctx, func(ctx context.Context) {
		if err := gen(ctx); err != nil {
			logger.Error("Rebuild failed", logfields.Error(err))
		}
	})
}
