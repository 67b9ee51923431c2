// # cmd/stanlang/app.go
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"stanlang/internal/core/app"
	"stanlang/internal/core/config"
	"stanlang/internal/core/vocab"
)

const usage = "usage: stanlang <function-table.txt> <output.json>"

// run is main without the process exit, so it can be driven from tests.
// The command takes no flags: both arguments are paths even when they begin
// with a dash.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	src, dst := args[0], args[1]

	cfg := config.Default()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	voc, err := vocab.Default()
	if err != nil {
		slog.Error("failed to load vocabulary", "error", err)
		return 1
	}

	generator, err := app.New(cfg, voc, app.WithLogger(logger))
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 1
	}

	summary, err := generator.Run(ctx, src, dst)
	if err != nil {
		slog.Error("failed to generate manifest", "source", src, "error", err)
		return 1
	}

	fmt.Fprintf(stdout, "Stan version: %s\n", summary.Version)
	return 0
}
