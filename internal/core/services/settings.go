package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyClientID          = "google.client_id"
	keyAPIKey            = "google.api_key"
	keyScopes            = "google.scopes"
	keySkipDiscovery     = "google.skip_discovery"
	keyMinIntervalMS     = "throttle.min_interval_ms"
	keyHTTPTimeoutSecs   = "http.timeout_seconds"
	keyDetailConcurrency = "mail.detail_concurrency"
	keyMetricsEnabled    = "metrics.enabled"
)

// Environment variables that override the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvToken    = "WSBRIDGE_TOKEN"
	EnvClientID = "WSBRIDGE_CLIENT_ID"
	EnvAPIKey   = "WSBRIDGE_API_KEY"
)

// SettingsService manages initialisation parameters.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service reading overrides from
// the process environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// WithEnv replaces the environment lookup. Used by tests.
func (s *SettingsService) WithEnv(lookup func(string) (string, bool)) *SettingsService {
	s.lookupEnv = lookup
	return s
}

// Get resolves settings. Environment variables win over the config store.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	settings.ClientID = s.configStore.GetString(keyClientID)
	settings.APIKey = s.configStore.GetString(keyAPIKey)
	if scopes := s.configStore.GetStringSlice(keyScopes); len(scopes) > 0 {
		settings.Scopes = scopes
	}
	settings.SkipDiscovery = s.configStore.GetBool(keySkipDiscovery)
	settings.MetricsEnabled = s.configStore.GetBool(keyMetricsEnabled)

	if _, ok := s.configStore.Get(keyMinIntervalMS); ok {
		ms := s.configStore.GetInt(keyMinIntervalMS)
		if ms < 0 {
			return settings, &domain.ConfigurationError{Field: keyMinIntervalMS, Message: "must not be negative"}
		}
		settings.MinInterval = time.Duration(ms) * time.Millisecond
	}
	if secs := s.configStore.GetInt(keyHTTPTimeoutSecs); secs > 0 {
		settings.HTTPTimeout = time.Duration(secs) * time.Second
	}
	if n := s.configStore.GetInt(keyDetailConcurrency); n > 0 {
		settings.MailDetailConcurrency = n
	}

	if v, ok := s.env(EnvClientID); ok {
		settings.ClientID = v
	}
	if v, ok := s.env(EnvAPIKey); ok {
		settings.APIKey = v
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings domain.Settings) error {
	if settings.ClientID != "" {
		if err := s.configStore.Set(keyClientID, settings.ClientID); err != nil {
			return fmt.Errorf("save client_id: %w", err)
		}
	}
	if settings.APIKey != "" {
		if err := s.configStore.Set(keyAPIKey, settings.APIKey); err != nil {
			return fmt.Errorf("save api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keySkipDiscovery, settings.SkipDiscovery); err != nil {
		return fmt.Errorf("save skip_discovery: %w", err)
	}
	if err := s.configStore.Set(keyMinIntervalMS, int(settings.MinInterval/time.Millisecond)); err != nil {
		return fmt.Errorf("save min_interval_ms: %w", err)
	}
	if err := s.configStore.Set(keyHTTPTimeoutSecs, int(settings.HTTPTimeout/time.Second)); err != nil {
		return fmt.Errorf("save timeout_seconds: %w", err)
	}
	if err := s.configStore.Set(keyDetailConcurrency, settings.MailDetailConcurrency); err != nil {
		return fmt.Errorf("save detail_concurrency: %w", err)
	}
	if err := s.configStore.Set(keyMetricsEnabled, settings.MetricsEnabled); err != nil {
		return fmt.Errorf("save metrics enabled: %w", err)
	}
	return nil
}

// SetClientID updates the client identifier.
func (s *SettingsService) SetClientID(clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return &domain.ConfigurationError{Field: keyClientID, Message: "client identifier is empty"}
	}
	return s.configStore.Set(keyClientID, clientID)
}

// SetAPIKey updates the API key.
func (s *SettingsService) SetAPIKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return &domain.ConfigurationError{Field: keyAPIKey, Message: "API key is empty"}
	}
	return s.configStore.Set(keyAPIKey, apiKey)
}

// TokenFromEnv returns the bearer token supplied through the environment.
func (s *SettingsService) TokenFromEnv() (string, bool) {
	return s.env(EnvToken)
}

func (s *SettingsService) env(key string) (string, bool) {
	if s.lookupEnv == nil {
		return "", false
	}
	v, ok := s.lookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}
