// Command expensectl manages the expense log from a terminal. It shares
// configuration and storage with the web server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"expensetracker/internal/cli"
	applog "expensetracker/internal/log"
	"expensetracker/internal/settings"
	"expensetracker/internal/store"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(envOr("LOG_LEVEL", "warn"))
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext()
	defer stop()

	be := cli.OpenBackend(ctx, logger, cfg)
	st, err := store.New(ctx, be.Store, store.WithLogger(logger.For(applog.ComponentCLI)))
	if err != nil {
		logger.Error("Failed to load expenses", "error", err, "backend", cfg.DataBackend)
		_ = be.Close()
		os.Exit(1)
	}

	a := &app{
		store: st,
		prefs: settings.New(be.Store),
		now:   time.Now,
		out:   os.Stdout,
	}
	code := a.run(ctx, os.Args[1:])
	if err := be.Close(); err != nil {
		logger.Error("Backend close failed", "error", err)
	}
	os.Exit(code)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage()
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(a.out, "unknown command %q\n\n", args[0])
		a.usage()
		return 2
	}
	if err := cmd.run(a, ctx, args[1:]); err != nil {
		fmt.Fprintf(a.out, "%s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func (a *app) usage() {
	fmt.Fprintln(a.out, "usage: expensectl <command> [flags]")
	fmt.Fprintln(a.out)
	for _, name := range commandOrder {
		fmt.Fprintf(a.out, "  %-8s %s\n", name, commands[name].help)
	}
}
