package domain

import (
	"strings"
	"time"
)

// Access scopes negotiated at initialisation, one per capability.
const (
	ScopeDriveReadonly    = "https://www.googleapis.com/auth/drive.readonly"
	ScopeCalendarReadonly = "https://www.googleapis.com/auth/calendar.readonly"
	ScopeGmailReadonly    = "https://www.googleapis.com/auth/gmail.readonly"
	ScopeContactsReadonly = "https://www.googleapis.com/auth/contacts.readonly"
	ScopeTasksReadonly    = "https://www.googleapis.com/auth/tasks.readonly"
	ScopeProfile          = "https://www.googleapis.com/auth/userinfo.profile"
	ScopeEmailsRead       = "https://www.googleapis.com/auth/user.emails.read"
)

// DefaultScopes returns the scopes the layer requires.
func DefaultScopes() []string {
	return []string{
		ScopeDriveReadonly,
		ScopeCalendarReadonly,
		ScopeGmailReadonly,
		ScopeContactsReadonly,
		ScopeTasksReadonly,
		ScopeProfile,
		ScopeEmailsRead,
	}
}

// Defaults for Settings.
const (
	DefaultMinInterval           = 200 * time.Millisecond
	DefaultHTTPTimeout           = 30 * time.Second
	DefaultMailDetailConcurrency = 4
)

// Settings holds the initialisation parameters of the provider clients.
type Settings struct {
	// ClientID identifies the provider application.
	ClientID string
	// APIKey is the provider application's API key.
	APIKey string
	// Scopes are the access scopes the credential must carry.
	Scopes []string
	// SkipDiscovery disables the discovery document check during Init.
	SkipDiscovery bool
	// MinInterval is the minimum spacing between outbound calls.
	MinInterval time.Duration
	// HTTPTimeout bounds each provider request.
	HTTPTimeout time.Duration
	// MailDetailConcurrency bounds concurrent message detail fetches.
	MailDetailConcurrency int
	// MetricsEnabled exposes Prometheus metrics in HTTP mode.
	MetricsEnabled bool
}

// DefaultSettings returns settings with every optional value filled in.
// ClientID and APIKey have no default.
func DefaultSettings() Settings {
	return Settings{
		Scopes:                DefaultScopes(),
		MinInterval:           DefaultMinInterval,
		HTTPTimeout:           DefaultHTTPTimeout,
		MailDetailConcurrency: DefaultMailDetailConcurrency,
	}
}

// Validate checks that the required values are present.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.ClientID) == "" {
		return &ConfigurationError{Field: "google.client_id", Message: "client identifier is not set"}
	}
	if strings.TrimSpace(s.APIKey) == "" {
		return &ConfigurationError{Field: "google.api_key", Message: "API key is not set"}
	}
	if s.MinInterval < 0 {
		return &ConfigurationError{Field: "throttle.min_interval_ms", Message: "must not be negative"}
	}
	return nil
}
