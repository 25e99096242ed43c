package cmd

import (
	"github.com/spf13/cobra"

	"taskdesk.com/taskdesk/internal/services"
	"taskdesk.com/taskdesk/internal/ui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse and change tasks interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.requireLogin(); err != nil {
				return err
			}

			status := &ui.StatusLine{}
			tasks := services.NewTaskService(a.api, status, logger)
			board := ui.NewBoard(cmd.Context(), tasks, status)
			if err := ui.RunBoard(cmd.Context(), board); err != nil {
				return err
			}
			return board.Err()
		})
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
