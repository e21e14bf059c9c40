package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/travelcraft/travelcraft/client"
)

var (
	name     string
	email    string
	password string
)

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}
		_, auth := newManagers(api)
		defer auth.Close()

		user, err := auth.SignIn(cmd.Context(), email, passwordValue())
		if err != nil {
			return describe(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s <%s>\n", user.Name, user.Email)
		return saveCookies(api)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}
		_, auth := newManagers(api)
		defer auth.Close()

		user, err := auth.SignUp(cmd.Context(), name, email, passwordValue())
		if err != nil {
			return describe(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "account created for %s <%s>\n", user.Name, user.Email)
		return saveCookies(api)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}
		_, auth := newManagers(api)
		defer auth.Close()

		if err := auth.Init(cmd.Context()); err != nil {
			return describe(err)
		}
		if user, ok := auth.User(); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.Name, user.Email, user.ID)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
		}
		return saveCookies(api)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Destroy the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}
		_, auth := newManagers(api)
		defer auth.Close()

		err = auth.Logout(cmd.Context())
		if rmErr := os.Remove(stateFile); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return rmErr
		}
		if err != nil {
			return describe(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{signinCmd, signupCmd} {
		c.Flags().StringVar(&email, "email", "", "account email")
		c.Flags().StringVar(&password, "password", "", "password (defaults to $TRIPCTL_PASSWORD)")
		_ = c.MarkFlagRequired("email")
	}
	signupCmd.Flags().StringVar(&name, "name", "", "display name")
	_ = signupCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(signinCmd, signupCmd, whoamiCmd, logoutCmd)
}

func passwordValue() string {
	if password != "" {
		return password
	}
	return os.Getenv("TRIPCTL_PASSWORD")
}

// describe turns client errors into messages meant for a terminal.
func describe(err error) error {
	var statusErr *client.StatusError
	switch {
	case errors.Is(err, client.ErrUnauthenticated):
		return errors.New("not signed in")
	case errors.As(err, &statusErr) && statusErr.Message != "":
		return errors.New(statusErr.Message)
	case client.IsTransient(err):
		return fmt.Errorf("server unreachable, try again: %w", err)
	default:
		return err
	}
}
