package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskdesk.com/taskdesk/internal/services"
	"taskdesk.com/taskdesk/internal/ui"
)

// profileFields maps form field names to their flag names.
var profileFields = map[string]string{
	"firstName": "first-name",
	"lastName":  "last-name",
	"email":     "email",
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfile(cmd, func(svc *services.ProfileService) error {
			fmt.Fprint(cmd.OutOrStdout(), ui.Profile(svc.Profile()))
			return nil
		})
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change the profile fields given as flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfile(cmd, func(svc *services.ProfileService) error {
			form := svc.Form()
			for field, name := range profileFields {
				if !cmd.Flags().Changed(name) {
					continue
				}
				value, _ := cmd.Flags().GetString(name)
				if err := form.Set(field, value); err != nil {
					return err
				}
			}

			if err := svc.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.Profile(svc.Profile()))
			return nil
		})
	},
}

// withProfile loads the profile before running fn.
func withProfile(cmd *cobra.Command, fn func(svc *services.ProfileService) error) error {
	return withApp(cmd.Context(), func(a *app) error {
		if err := a.requireLogin(); err != nil {
			return err
		}

		svc := services.NewProfileService(a.api, a.notifier())
		if err := svc.Load(cmd.Context()); err != nil {
			return err
		}
		return fn(svc)
	})
}

func init() {
	profileEditCmd.Flags().String(profileFields["firstName"], "", "first name")
	profileEditCmd.Flags().String(profileFields["lastName"], "", "last name")
	profileEditCmd.Flags().String(profileFields["email"], "", "email address")

	profileCmd.AddCommand(profileEditCmd)
	rootCmd.AddCommand(profileCmd)
}
