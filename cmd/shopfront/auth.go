package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/shopfront/go-client/api"
	"github.com/shopfront/go-client/session"
	"github.com/shopfront/go-client/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		if username == "" {
			username = tui.Input(a.log, "Username", "")
		}
		if password == "" {
			password = tui.Password(a.log, "Password", "")
		}

		sess, err := a.manager.Login(cmd.Context(), session.Credentials{
			Username: strings.TrimSpace(username),
			Password: password,
		})
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return errors.New("invalid username or password")
			}
			return err
		}
		tui.ShowSuccess("logged in as %s", sess.User.Username)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if username == "" {
			username = tui.Input(a.log, "Username", "")
		}
		if email == "" {
			email = tui.Input(a.log, "Email", "")
		}
		if password == "" {
			password = tui.Password(a.log, "Password", "")
		}

		err = a.manager.Signup(cmd.Context(), session.Registration{
			Username: strings.TrimSpace(username),
			Email:    strings.TrimSpace(email),
			Password: password,
		})
		if err != nil {
			if errors.Is(err, api.ErrValidation) {
				return errors.Wrap(err, "registration rejected")
			}
			return err
		}
		tui.ShowSuccess("account created, run %s to sign in", tui.Command("login"))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		a.manager.Logout(cmd.Context())
		tui.ShowLock("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		st := a.manager.CurrentUser(cmd.Context())
		if st.Phase != session.PhaseAuthenticated {
			return errors.Newf("not logged in, run %s first", tui.Command("login"))
		}
		tui.ShowSuccess("%s %s %s", tui.Bold(st.User.Username),
			tui.Muted("<"+st.User.Email+">"),
			tui.Muted("roles="+strings.Join(st.User.Roles, ",")))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "username")
	loginCmd.Flags().StringP("password", "p", "", "password")
	signupCmd.Flags().StringP("username", "u", "", "username")
	signupCmd.Flags().StringP("email", "e", "", "email")
	signupCmd.Flags().StringP("password", "p", "", "password")
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
}
