package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the access token",
	Long: `Install, inspect and remove the access token used for every provider call.

wsbridge does not run a sign-in flow. Obtain an access token with the
required read-only scopes elsewhere and hand it over with 'auth login'.

Examples:
  # Prompt for the token without echo
  wsbridge auth login

  # Pass the token directly
  wsbridge auth login ya29.a0Af...

  # Show the active token
  wsbridge auth status`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Store an access token",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored access token",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active access token",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	var token string
	if len(args) == 1 {
		token = strings.TrimSpace(args[0])
	} else {
		cmd.Print("Access token: ")
		token = readPassword()
		cmd.Println()
	}
	if token == "" {
		return errors.New("access token is required")
	}

	if tokenFile != "" {
		if err := writeTokenFile(tokenFile, token); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
	}
	sessionService.Set(token)

	cmd.Printf("Token installed: %s\n", sessionService.Credential().Masked())
	if tokenFile != "" {
		cmd.Printf("Stored in %s\n", tokenFile)
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if tokenFile != "" {
		if err := os.Remove(tokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove token file: %w", err)
		}
	}
	sessionService.Clear()

	cmd.Println("Signed out. Cached data cleared.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if !sessionService.IsActive() {
		cmd.Println("No active token.")
		cmd.Println("Run 'wsbridge auth login' to install one.")
		return nil
	}

	cred := sessionService.Credential()
	cmd.Println("Active token")
	cmd.Printf("  Token:     %s\n", cred.Masked())
	if !cred.InstalledAt.IsZero() {
		cmd.Printf("  Installed: %s\n", humanize.Time(cred.InstalledAt))
	}
	if tokenFile != "" {
		cmd.Printf("  File:      %s\n", tokenFile)
	}
	return nil
}

// writeTokenFile stores the token readable by the owner only.
func writeTokenFile(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	// Fallback to regular input
	return readLine(bufio.NewReader(os.Stdin))
}
