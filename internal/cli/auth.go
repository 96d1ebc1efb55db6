package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tessro/spot/internal/app"
	"github.com/tessro/spot/internal/core"
	spoterrors "github.com/tessro/spot/internal/errors"
	"github.com/tessro/spot/internal/spotify/client"
)

var (
	loginUsername  string
	loginToken     string
	loginExpiresIn time.Duration
	statusVerify   bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Spotify credentials",
	Long:  `Commands for managing the stored Spotify credentials.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store Spotify credentials",
	Long: `Records a login through the player state: a login attempt followed by
a successful login carrying the token. The credentials are persisted to the
configured store.`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored Spotify credentials",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE:  runAuthStatus,
}

func init() {
	authLoginCmd.Flags().StringVar(&loginUsername, "username", "", "Spotify username")
	authLoginCmd.Flags().StringVar(&loginToken, "token", "", "access token")
	authLoginCmd.Flags().DurationVar(&loginExpiresIn, "expires-in", time.Hour, "token lifetime (0 for no expiry)")
	_ = authLoginCmd.MarkFlagRequired("username")
	_ = authLoginCmd.MarkFlagRequired("token")

	authStatusCmd.Flags().BoolVar(&statusVerify, "verify", false, "check the token against the API")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	creds := core.Credentials{
		Username: loginUsername,
		Token:    loginToken,
	}
	if loginExpiresIn > 0 {
		creds.TokenExpiresAt = time.Now().Add(loginExpiresIn)
	}

	err = applyAndPrint(cmd, sess,
		app.TryLogin{Username: loginUsername},
		app.LoginSuccess{Credentials: creds},
	)
	if err != nil {
		return err
	}

	// Persistence failures don't surface as events, so check the store.
	stored, err := sess.store.Load()
	if err != nil || stored == nil || stored.Token != creds.Token {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: credentials were not persisted; the login only applies to this run.")
		return nil
	}

	if !JSONOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", creds.Username)
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.store.Delete(); err != nil {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully")
	return nil
}

// authStatus is the JSON shape of `auth status`.
type authStatus struct {
	Authenticated bool       `json:"authenticated"`
	Username      string     `json:"username,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Expired       bool       `json:"expired"`
	Verified      *bool      `json:"verified,omitempty"`
	DisplayName   string     `json:"display_name,omitempty"`
	Store         string     `json:"store"`
	Suggestion    string     `json:"suggestion,omitempty"`
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	creds, err := sess.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	status := authStatus{Store: sess.store.Path()}
	if creds != nil {
		status.Authenticated = true
		status.Username = creds.Username
		status.Expired = creds.IsExpired()
		if !creds.TokenExpiresAt.IsZero() {
			expiresAt := creds.TokenExpiresAt
			status.ExpiresAt = &expiresAt
		}
	}

	var verifyErr error
	if statusVerify && status.Authenticated {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		user, err := sess.client.GetCurrentUser(ctx)
		verified := err == nil
		status.Verified = &verified
		if err != nil {
			verifyErr = err
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
				status.Suggestion = "Run 'spot auth login' to store a fresh token"
			} else {
				status.Suggestion = spoterrors.GetSuggestion(err)
			}
		} else {
			status.DisplayName = user.DisplayName
		}
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		data, _ := json.MarshalIndent(status, "", "  ")
		fmt.Fprintln(out, string(data))
		return nil
	}

	if !status.Authenticated {
		fmt.Fprintln(out, "Status: Not logged in")
		fmt.Fprintln(out, "Run 'spot auth login' to store credentials.")
		return nil
	}

	fmt.Fprintln(out, "Status: Logged in")
	fmt.Fprintf(out, "User: %s\n", status.Username)
	fmt.Fprintf(out, "Store: %s\n", status.Store)
	switch {
	case status.ExpiresAt == nil:
		fmt.Fprintln(out, "Token: does not expire")
	case status.Expired:
		fmt.Fprintf(out, "Token: expired %s\n", humanize.Time(*status.ExpiresAt))
	default:
		fmt.Fprintf(out, "Token: expires %s\n", humanize.Time(*status.ExpiresAt))
	}

	if status.Verified != nil {
		if *status.Verified {
			fmt.Fprintf(out, "Verified: yes (%s)\n", status.DisplayName)
		} else {
			fmt.Fprintf(out, "Verified: no (%v)\n", verifyErr)
			if status.Suggestion != "" {
				fmt.Fprintln(out, status.Suggestion)
			}
		}
	}
	return nil
}
