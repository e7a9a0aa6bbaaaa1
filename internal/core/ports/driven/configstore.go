package driven

// ConfigStore provides access to the layer's configuration values.
// Keys use dot notation ("google.client_id", "throttle.min_interval_ms").
type ConfigStore interface {
	// Get retrieves a raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns "" when the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 when the key is missing or not an integer.
	GetInt(key string) int

	// GetBool returns false when the key is missing or not a boolean.
	GetBool(key string) bool

	// GetStringSlice returns nil when the key is missing or not a list.
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Path returns the backing file path, or "" for in-memory stores.
	Path() string
}
