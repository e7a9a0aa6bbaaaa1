// Command wsbridge is the command-line host of the workspace integration layer.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/custodia-labs/wsbridge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wsbridge/internal/adapters/driven/metrics"
	"github.com/custodia-labs/wsbridge/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wsbridge/internal/adapters/driven/tokenfile"
	"github.com/custodia-labs/wsbridge/internal/adapters/driving/cli"
	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/connectors/google/calendar"
	"github.com/custodia-labs/wsbridge/internal/connectors/google/drive"
	"github.com/custodia-labs/wsbridge/internal/connectors/google/gmail"
	"github.com/custodia-labs/wsbridge/internal/connectors/google/people"
	"github.com/custodia-labs/wsbridge/internal/connectors/google/tasks"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/core/services"
	"github.com/custodia-labs/wsbridge/internal/logger"
)

// version is set by the build.
var version = "dev"

// tokenFileName lives next to the config file.
const tokenFileName = "token"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version)
	cli.SetFactory(build)

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}

// build wires the workspace from the global flags.
func build(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	logger.Section("Startup")

	configPath := opts.ConfigPath
	if configPath == "" {
		p, err := file.DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}

	var store driven.ConfigStore
	if opts.NoConfig {
		logger.Debug("config file disabled")
		store = memory.NewConfigStore(nil)
	} else {
		fs, err := file.NewConfigStore(configPath)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		logger.Debug("config file: %s", configPath)
		store = fs
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var (
		recorder       driven.Metrics = driven.NopMetrics{}
		metricsHandler http.Handler
	)
	if settings.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder = metrics.NewCollector(reg)
		metricsHandler = metrics.Handler(reg)
	}

	caches := services.Caches{
		Files:    memory.NewResourceCache[domain.DriveFile](domain.KindDocuments.String()),
		Events:   memory.NewResourceCache[domain.CalendarEvent](domain.KindCalendarEvents.String()),
		Messages: memory.NewResourceCache[domain.MailMessage](domain.KindMailMessages.String()),
	}
	session := services.NewSession(recorder, caches.Clearables()...)

	tokenPath := filepath.Join(filepath.Dir(configPath), tokenFileName)
	watcher := tokenfile.NewWatcher(tokenPath, session)
	var watch func(context.Context) error

	// Token precedence: flag, environment, token file.
	switch token, fromEnv := settingsService.TokenFromEnv(); {
	case opts.Token != "":
		logger.Debug("token from --token")
		session.Set(opts.Token)
	case fromEnv:
		logger.Debug("token from %s", services.EnvToken)
		session.Set(token)
	default:
		if err := watcher.Load(); err != nil {
			logger.Warn("token file %s: %v", tokenPath, err)
		}
		watch = watcher.Run
	}

	throttle := google.NewThrottle(settings.MinInterval, recorder)
	client := google.NewClient(session, throttle, google.ClientOptions{
		Endpoint: opts.Endpoint,
		Timeout:  settings.HTTPTimeout,
		Metrics:  recorder,
	})

	providers, err := newProviders(ctx, client, settings.APIKey)
	if err != nil {
		return nil, err
	}

	workspace := services.NewWorkspace(settings, session, providers, caches, recorder)

	return &cli.Services{
		Lifecycle:      workspace,
		Session:        session,
		Settings:       settingsService,
		Drive:          workspace.Drive,
		Calendar:       workspace.Calendar,
		Mail:           workspace.Mail,
		Contacts:       workspace.Contacts,
		Tasks:          workspace.Tasks,
		TokenFile:      tokenPath,
		MetricsHandler: metricsHandler,
		WatchTokens:    watch,
	}, nil
}

// newProviders creates one adapter per resource kind over a shared client.
func newProviders(ctx context.Context, client *google.Client, apiKey string) (driven.Providers, error) {
	driveProvider, err := drive.New(ctx, client)
	if err != nil {
		return driven.Providers{}, fmt.Errorf("create drive provider: %w", err)
	}
	calendarProvider, err := calendar.New(ctx, client)
	if err != nil {
		return driven.Providers{}, fmt.Errorf("create calendar provider: %w", err)
	}
	mailProvider, err := gmail.New(ctx, client)
	if err != nil {
		return driven.Providers{}, fmt.Errorf("create mail provider: %w", err)
	}
	contactsProvider, err := people.New(ctx, client)
	if err != nil {
		return driven.Providers{}, fmt.Errorf("create contacts provider: %w", err)
	}
	tasksProvider, err := tasks.New(ctx, client)
	if err != nil {
		return driven.Providers{}, fmt.Errorf("create tasks provider: %w", err)
	}

	return driven.Providers{
		Drive:       driveProvider,
		Calendar:    calendarProvider,
		Mail:        mailProvider,
		Contacts:    contactsProvider,
		Tasks:       tasksProvider,
		Initializer: google.NewDiscoveryInitializer(client, apiKey),
	}, nil
}
