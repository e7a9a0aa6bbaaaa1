package driving

import "github.com/custodia-labs/wsbridge/internal/core/domain"

// SettingsService manages the layer's initialisation parameters.
type SettingsService interface {
	// Get resolves settings from the config store, environment overrides
	// and defaults. The result is not validated.
	Get() (domain.Settings, error)

	// Save persists settings. Secrets are written only when non-empty.
	Save(settings domain.Settings) error

	// SetClientID updates the client identifier.
	SetClientID(clientID string) error

	// SetAPIKey updates the API key.
	SetAPIKey(apiKey string) error
}
