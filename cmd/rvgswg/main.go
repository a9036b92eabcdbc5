package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/rvgswg/rvgswg/cmd/rvgswg/commands"
	"github.com/rvgswg/rvgswg/internal/foundation/errors"
	"github.com/rvgswg/rvgswg/internal/version"
)

func main() {
	var cli commands.CLI
	parser, err := kong.New(&cli,
		kong.Name("rvgswg"),
		kong.Description("Static website generator for org-mode sources"),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errors.ExitFailure)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "rvgswg:", err)
		if kctx != nil {
			_ = kctx.PrintUsage(true)
		}
		os.Exit(errors.ExitFailure)
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		slog.Debug(fmt.Sprintf(format, args...))
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	global := &commands.Global{
		Logger: slog.Default(),
		Ctx:    ctx,
		Stdout: os.Stdout,
		Usage:  func() error { return kctx.PrintUsage(false) },
	}
	if err := kctx.Run(global, &cli); err != nil {
		stop()
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
