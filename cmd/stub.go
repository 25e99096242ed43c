package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	config "taskdesk.com/taskdesk/internal/configs"
	httpapi "taskdesk.com/taskdesk/internal/http"
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Start a local task API for development",
	Long:  "Serves the task REST API from a local SQLite database so the client can run without the real backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := config.NewDatabase(cfg.StubDatabaseDSN)
		if err != nil {
			return err
		}
		if sqlDB, err := database.DB(); err == nil {
			defer sqlDB.Close()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := httpapi.NewServer(database, httpapi.Options{
			Secret:                 []byte(cfg.StubSecret),
			AuthRateLimitPerMinute: cfg.AuthRateLimit,
		}, logger)

		errCh := make(chan error, 1)
		go func() {
			logger.Info("stub API listening", "addr", cfg.StubAddr)
			if err := e.Start(cfg.StubAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case <-ctx.Done():
		case err := <-errCh:
			return err
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}

		logger.Info("stub API shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stubCmd)
}
