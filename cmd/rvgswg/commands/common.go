package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/rvgswg/rvgswg/internal/config"
	"github.com/rvgswg/rvgswg/internal/foundation/errors"
	"github.com/rvgswg/rvgswg/internal/logfields"
	"github.com/rvgswg/rvgswg/internal/logging"
)

// Global carries state shared by every subcommand.
type Global struct {
	Logger *slog.Logger
	Ctx    context.Context
	Stdout io.Writer
	// Usage prints the command-line help.
	Usage func() error
}

func (g *Global) context() context.Context {
	if g == nil || g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Project string           `short:"p" help:"Path to the project marker file" default:".rvgswg" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init  InitCmd  `cmd:"" help:"Initialize the current directory as a website project"`
	Gen   GenCmd   `cmd:"" help:"Generate the website from the source directory"`
	Clean CleanCmd `cmd:"" help:"Remove the generated output directory"`
	Run   RunCmd   `cmd:"" help:"Serve the website directory over HTTP"`
	Help  HelpCmd  `cmd:"" help:"Show usage"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(logging.New(os.Stdout, logging.Options{Level: level}))
	return nil
}

// loadProject reads the marker, applies .env and environment overrides and
// rebuilds the logger from the project's logging settings. The source
// directory must exist.
func loadProject(g *Global, root *CLI) (config.Project, *slog.Logger, error) {
	marker := root.Project
	if _, err := os.Stat(marker); err != nil {
		return config.Project{}, nil, errors.ConfigError("directory is not valid, initialization required").
			WithContext("path", marker).
			Build()
	}
	if err := config.LoadEnvFile(filepath.Dir(marker)); err != nil {
		return config.Project{}, nil, err
	}
	p, err := config.Load(marker)
	if err != nil {
		return config.Project{}, nil, err
	}
	p, err = config.ApplyEnv(p, os.LookupEnv)
	if err != nil {
		return config.Project{}, nil, err
	}

	level := p.LogLevel.Slog()
	if root.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(g.stdout(), logging.Options{Level: level, Format: p.LogFormat.Handler()})

	if fi, err := os.Stat(p.SourceDir); err != nil || !fi.IsDir() {
		return config.Project{}, nil, errors.ConfigError("source directory does not exist").
			WithContext("path", p.SourceDir).
			Build()
	}
	logger.Debug("Project loaded",
		logfields.Path(marker),
		"source", p.SourceDir,
		logfields.Output(p.OutputDir),
		"features", p.EnabledFeatures())
	return p, logger, nil
}
