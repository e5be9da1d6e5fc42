package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/brewlog/internal/cellar"
	"github.com/alfredjeanlab/brewlog/internal/clock"
	"github.com/alfredjeanlab/brewlog/internal/config"
	"github.com/alfredjeanlab/brewlog/internal/events"
	"github.com/alfredjeanlab/brewlog/internal/server"
	"github.com/alfredjeanlab/brewlog/internal/store/file"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cellar over HTTP for dashboards and other tools",
	Args:  cobra.NoArgs,
	// The root pre-run already opened a manager for CLI use; serve wants
	// its own with a live event relay, so it builds the stack itself.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	brewCfg, err := config.LoadBrewConfig(cfg.BrewConfigPath())
	if err != nil {
		return err
	}
	clk, err := clock.New(brewCfg.LocalTimezone)
	if err != nil {
		return err
	}

	relay := events.NewRelay()
	st := file.New(cfg.SlotsPath(), cfg.ArchivePath())
	m, err := cellar.New(brewCfg, clk, st, relay, cfg.SlotCount)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			slog.Error("failed to save on shutdown", "error", err)
		}
	}()

	srv := server.NewBrewServer(m)
	relay.Attach(srv)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.NewHTTPHandler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.HTTPAddr, "data_dir", cfg.DataDir)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides BREWLOG_HTTP_ADDR)")
}
