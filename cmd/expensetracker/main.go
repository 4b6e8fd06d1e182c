package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"expensetracker/internal/cli"
	"expensetracker/internal/export"
	apphttp "expensetracker/internal/http"
	applog "expensetracker/internal/log"
	"expensetracker/internal/settings"
	"expensetracker/internal/store"
)

func main() {
	cli.LoadEnvFile()

	// Bootstrap at the raw env level; the validated config may differ.
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)
	logger.SetLevel(applog.ParseLevel(cfg.LogLevel))

	ctx, stop := cli.SignalContext()
	defer stop()

	be := cli.OpenBackend(ctx, logger, cfg)
	defer func() {
		if err := be.Close(); err != nil {
			logger.Error("Backend close failed", "error", err)
		}
	}()

	st, err := store.New(ctx, be.Store, store.WithLogger(logger.For(applog.ComponentExpense)))
	if err != nil {
		logger.Error("Failed to load expenses", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	dialect := export.Plain
	if cfg.CSVQuoting {
		dialect = export.Quoted
	}
	srv, err := apphttp.NewServer(cfg.ListenAddr, st, settings.New(be.Store),
		apphttp.WithExporter(export.NewExporter(dialect)),
		apphttp.WithLogger(logger),
	)
	if err != nil {
		logger.Error("Failed to create HTTP server", "error", err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting expense tracker", applog.FieldOperation, applog.OpStartup, "addr", cfg.ListenAddr, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "addr", cfg.ListenAddr)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
