package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/aristath/pulse/internal/cli"
	"github.com/aristath/pulse/pkg/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"warn"`

	Summary  cli.SummaryCmd  `cmd:"" help:"Print the weekly wellness summary as JSON."`
	Validate cli.ValidateCmd `cmd:"" help:"Load a dataset and report its size and date span."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pulse"),
		kong.Description("Weekly wellness summaries from daily health metrics"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	appCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New(logger.Config{
		Level:  CLI.LogLevel,
		Pretty: true,
		Output: os.Stderr,
	})

	err := ctx.Run(&cli.Context{
		Ctx: appCtx,
		Out: os.Stdout,
		Log: log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
