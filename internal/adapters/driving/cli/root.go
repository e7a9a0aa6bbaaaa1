// Package cli provides the cobra commands of the wsbridge binary.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsbridge/internal/core/ports/driving"
	"github.com/custodia-labs/wsbridge/internal/logger"
)

// annotationSkipSetup marks commands that run without the workspace.
const annotationSkipSetup = "wsbridge/skip-setup"

// version is set at build time by SetVersion.
var version = "dev"

// Options holds the global flags.
type Options struct {
	Verbose    bool
	ConfigPath string
	NoConfig   bool
	Token      string
	Endpoint   string
}

// Services holds everything the commands talk to.
type Services struct {
	Lifecycle driving.Lifecycle
	Session   driving.SessionService
	Settings  driving.SettingsService
	Drive     driving.DriveService
	Calendar  driving.CalendarService
	Mail      driving.MailService
	Contacts  driving.ContactsService
	Tasks     driving.TasksService

	// TokenFile is where auth login stores the credential.
	TokenFile string
	// MetricsHandler serves /metrics in HTTP mode. Nil disables the route.
	MetricsHandler http.Handler
	// WatchTokens follows the token file until ctx is done. May be nil.
	WatchTokens func(ctx context.Context) error
}

// Factory builds the services once the global flags are parsed.
type Factory func(ctx context.Context, opts Options) (*Services, error)

var (
	opts       Options
	outputJSON bool
	factory    Factory

	lifecycle       driving.Lifecycle
	sessionService  driving.SessionService
	settingsService driving.SettingsService
	driveService    driving.DriveService
	calendarService driving.CalendarService
	mailService     driving.MailService
	contactsService driving.ContactsService
	tasksService    driving.TasksService
	tokenFile       string
	metricsHandler  http.Handler
	watchTokens     func(ctx context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "wsbridge",
	Short: "Read-only bridge to Google Workspace resources",
	Long: `wsbridge lists, searches and reads Google Drive files, Calendar events,
Gmail messages, contacts and tasks through one throttled, cached layer.

Credentials are issued by an external sign-in flow. Hand the access token
to wsbridge with 'wsbridge auth login', the --token flag or the
WSBRIDGE_TOKEN environment variable.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "print debug logs to stderr")
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.wsbridge/config.toml)")
	flags.BoolVar(&opts.NoConfig, "no-config", false, "ignore the config file")
	flags.StringVar(&opts.Token, "token", "", "access token for this invocation")
	flags.StringVar(&opts.Endpoint, "endpoint", "", "override the provider base URL")
	flags.BoolVar(&outputJSON, "json", false, "output results as JSON")
}

// SetFactory registers the function that builds the services.
func SetFactory(f Factory) {
	factory = f
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices installs the services used by the commands.
func SetServices(s *Services) {
	lifecycle = s.Lifecycle
	sessionService = s.Session
	settingsService = s.Settings
	driveService = s.Drive
	calendarService = s.Calendar
	mailService = s.Mail
	contactsService = s.Contacts
	tasksService = s.Tasks
	tokenFile = s.TokenFile
	metricsHandler = s.MetricsHandler
	watchTokens = s.WatchTokens
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)

	if cmd.Annotations[annotationSkipSetup] == "true" || factory == nil {
		return nil
	}

	services, err := factory(cmd.Context(), opts)
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

// ready initialises the workspace before the first resource call.
func ready(ctx context.Context) error {
	if lifecycle == nil {
		return errors.New("workspace not configured")
	}
	if err := lifecycle.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialise workspace: %w", err)
	}
	return nil
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printMore tells the user how to fetch the next page.
func printMore(cmd *cobra.Command, cursor string) {
	if cursor != "" {
		cmd.Printf("\nMore results available. Use --cursor %s\n", cursor)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
