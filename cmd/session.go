package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cinetix-cli/model"
	"cinetix-cli/service"
	"cinetix-cli/store"
)

var errNotLoggedIn = errors.New("Not logged in. Run \"cinetix login\" first.")

func required(label string) func(string) error {
	return func(input string) error {
		if strings.TrimSpace(input) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func newLoginCmd(e *env) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.setup(); err != nil {
				return err
			}
			if strings.TrimSpace(email) == "" {
				prompt := promptui.Prompt{
					Label:    "Email",
					Validate: required("Email"),
					Stdin:    e.in,
				}
				value, err := prompt.Run()
				if err != nil {
					return err
				}
				email = value
			}
			prompt := promptui.Prompt{
				Label:    "Password",
				Mask:     '•',
				Validate: required("Password"),
				Stdin:    e.in,
			}
			password, err := prompt.Run()
			if err != nil {
				return err
			}

			ctx, cancel := e.requestContext(cmd.Context())
			defer cancel()
			session, err := login(ctx, e, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", session.User.Name, session.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

// login authenticates and persists the session. Nothing is written unless
// the API returned both a token and a user.
func login(ctx context.Context, e *env, email, password string) (store.Session, error) {
	req := model.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	auth, err := e.client.Login(ctx, req)
	if err != nil {
		e.log.Info("login rejected", zap.Error(err))
		return store.Session{}, errors.New(service.UserMessage(err, "Login failed"))
	}
	session := store.Session{Token: auth.Token}
	if auth.User != nil {
		session.User = *auth.User
	}
	if err := store.SaveSession(session); err != nil {
		return store.Session{}, fmt.Errorf("save session: %w", err)
	}
	e.log.Info("logged in", zap.String("user_id", session.User.Id))
	return session, nil
}

func newLogoutCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				prompt := promptui.Prompt{
					Label:     "Are you sure you want to logout",
					IsConfirm: true,
					Stdin:     e.in,
				}
				if _, err := prompt.Run(); err != nil {
					if errors.Is(err, promptui.ErrAbort) {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
						return nil
					}
					return err
				}
			}
			if err := store.ClearSession(); err != nil {
				return fmt.Errorf("Failed to log out: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newWhoamiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := store.LoadSession()
			if errors.Is(err, store.ErrNoSession) {
				return errNotLoggedIn
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:  %s\n", session.User.Name)
			fmt.Fprintf(out, "Email: %s\n", session.User.Email)
			fmt.Fprintf(out, "ID:    %s\n", session.User.Id)
			return nil
		},
	}
}
