package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskdesk.com/taskdesk/internal/forms"
	"taskdesk.com/taskdesk/internal/services"
)

var errNotLoggedIn = errors.New("not logged in, run `taskdesk login` first")

var (
	authUsername string
	authEmail    string
	authPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			password, err := passwordOrStdin(cmd.InOrStdin())
			if err != nil {
				return err
			}

			form := &forms.RegisterForm{Username: authUsername, Email: authEmail, Password: password}
			auth := services.NewAuthService(a.api, a.session, a.notifier())
			return auth.Register(cmd.Context(), form)
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			password, err := passwordOrStdin(cmd.InOrStdin())
			if err != nil {
				return err
			}

			form := &forms.LoginForm{Username: authUsername, Password: password}
			auth := services.NewAuthService(a.api, a.session, a.notifier())
			return auth.Login(cmd.Context(), form)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			auth := services.NewAuthService(a.api, a.session, a.notifier())
			return auth.Logout(cmd.Context())
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who the stored session belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.requireLogin(); err != nil {
				return err
			}

			name := a.session.Username()
			if name == "" {
				name = "(unknown user)"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, name)
			if exp, ok := a.session.ExpiresAt(); ok {
				if a.session.Expired(time.Now()) {
					fmt.Fprintf(out, "session expired at %s\n", exp.Local().Format(time.RFC1123))
				} else {
					fmt.Fprintf(out, "session valid until %s\n", exp.Local().Format(time.RFC1123))
				}
			}
			return nil
		})
	},
}

// passwordOrStdin returns --password, or reads one line from r.
func passwordOrStdin(r io.Reader) (string, error) {
	if authPassword != "" {
		return authPassword, nil
	}

	if f, ok := r.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			fmt.Fprint(os.Stderr, "Password: ")
		}
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVarP(&authUsername, "username", "u", "", "account username")
		c.Flags().StringVarP(&authPassword, "password", "p", "", "account password (read from stdin when omitted)")
	}
	registerCmd.Flags().StringVarP(&authEmail, "email", "e", "", "account email")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}
