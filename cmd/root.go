package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "taskdesk.com/taskdesk/internal/configs"
	"taskdesk.com/taskdesk/internal/ui"
	"taskdesk.com/taskdesk/internal/validators"
)

var (
	cfg    config.Config
	logger *log.Logger

	flagAPIURL   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "taskdesk",
	Short:         "Manage your tasks from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if flagAPIURL != "" {
			loaded.APIURL = flagAPIURL
		}
		if flagLogLevel != "" {
			loaded.LogLevel = flagLogLevel
		}
		if err := loaded.Validate(); err != nil {
			return err
		}

		cfg = loaded
		logger = config.NewLogger(os.Stderr, cfg.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "base URL of the task API (overrides TASKDESK_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error (overrides TASKDESK_LOG_LEVEL)")
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err unless a notifier already showed it to the user.
func reportError(w io.Writer, err error) {
	var fieldErrs validators.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		fmt.Fprint(w, ui.FieldErrors(fieldErrs))
	case notified.has(err):
	case logger != nil:
		logger.Error(err)
	default:
		fmt.Fprintln(w, "Error:", err)
	}
}
