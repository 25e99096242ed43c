package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskdesk.com/taskdesk/internal/services"
	"taskdesk.com/taskdesk/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts by status and priority",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.requireLogin(); err != nil {
				return err
			}

			stats, err := services.NewDashboardService(a.api, logger).Statistics(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.Statistics(stats))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
