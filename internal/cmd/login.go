package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/egeria-tools/egc/internal/client"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Obtain and cache a bearer token",
	Long: `Request a bearer token from the platform token endpoint and cache it in the
egc home directory. Later commands reuse the cached token until it expires.

The user and password come from the config file or EGERIA_USER and
EGERIA_PASSWORD. The token is verified with a minimal search before caching.

Examples:
  egc login
  EGERIA_PASSWORD=secret egc login
  egc login --logout      # Discard the cached token`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var loginLogout bool

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().BoolVar(&loginLogout, "logout", false, "Discard the cached token instead of requesting one")
}

func runLogin(cmd *cobra.Command, args []string) error {
	if loginLogout {
		if err := clearToken(); err != nil {
			return err
		}
		fmt.Println("Cached token removed")
		return nil
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	// Always request a fresh token, replacing any cached one.
	if err := s.client.CreateToken(ctx); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// Verify the token actually works before caching it.
	if _, err := s.client.FindElements(ctx, "*", client.SearchOptions{PageSize: 1}); err != nil {
		return fmt.Errorf("token verification failed: %w", err)
	}

	if err := saveToken(s.client.Token()); err != nil {
		return err
	}
	fmt.Printf("Logged in to %s as %s\n", s.cfg.Platform.URL, s.client.UserID())
	return nil
}
