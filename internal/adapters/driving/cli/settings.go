package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsbridge/internal/logger"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the provider application settings.

The client identifier and API key are required before any resource call.
Environment variables WSBRIDGE_CLIENT_ID and WSBRIDGE_API_KEY override
the config file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsClientIDCmd = &cobra.Command{
	Use:   "client-id [value]",
	Short: "Set the client identifier",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsClientID,
}

var settingsAPIKeyCmd = &cobra.Command{
	Use:   "api-key [value]",
	Short: "Set the API key",
	Long:  `Set the API key. Without an argument the key is prompted for without echo.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsAPIKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsClientIDCmd)
	settingsCmd.AddCommand(settingsAPIKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Google]")
	cmd.Printf("  Client ID: %s\n", orNotSet(settings.ClientID))
	cmd.Printf("  API Key: %s\n", orNotSet(logger.Redact(settings.APIKey)))
	cmd.Printf("  Scopes: %d\n", len(settings.Scopes))
	for _, scope := range settings.Scopes {
		cmd.Printf("    %s\n", scope)
	}
	cmd.Printf("  Discovery check: %s\n", onOff(!settings.SkipDiscovery))
	cmd.Println()

	cmd.Println("[Transport]")
	cmd.Printf("  Min interval: %s\n", settings.MinInterval)
	cmd.Printf("  HTTP timeout: %s\n", settings.HTTPTimeout)
	cmd.Printf("  Mail detail concurrency: %d\n", settings.MailDetailConcurrency)
	cmd.Printf("  Metrics: %s\n", onOff(settings.MetricsEnabled))
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'wsbridge settings client-id' and 'wsbridge settings api-key' to fix it.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsClientID(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	clientID := strings.TrimSpace(args[0])
	if clientID == "" {
		return errors.New("client identifier is required")
	}
	if err := settingsService.SetClientID(clientID); err != nil {
		return fmt.Errorf("failed to set client identifier: %w", err)
	}
	cmd.Println("Client identifier saved.")
	return nil
}

func runSettingsAPIKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var apiKey string
	if len(args) == 1 {
		apiKey = strings.TrimSpace(args[0])
	} else {
		cmd.Print("API key: ")
		apiKey = readPassword()
		cmd.Println()
	}
	if apiKey == "" {
		return errors.New("API key is required")
	}
	if err := settingsService.SetAPIKey(apiKey); err != nil {
		return fmt.Errorf("failed to set API key: %w", err)
	}
	cmd.Printf("API key saved: %s\n", logger.Redact(apiKey))
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
