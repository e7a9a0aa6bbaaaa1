package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Typed errors below match these through errors.Is, so callers
// can branch on the kind without knowing the concrete type.
var (
	// ErrConfiguration indicates required initialisation parameters are missing.
	ErrConfiguration = errors.New("configuration error")

	// ErrAuthentication indicates the provider rejected the credential.
	ErrAuthentication = errors.New("authentication error")

	// ErrProvider indicates a non-2xx response or a malformed payload.
	ErrProvider = errors.New("provider error")

	// ErrDataIntegrity indicates an internal invariant was violated.
	ErrDataIntegrity = errors.New("data integrity error")
)

// Lifecycle errors.
var (
	// ErrNotInitialized indicates a call was made before Workspace.Init succeeded.
	ErrNotInitialized = errors.New("workspace not initialised")

	// ErrNotSignedIn indicates no credential is installed.
	ErrNotSignedIn = errors.New("no active credential")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// ConfigurationError reports a missing or invalid configuration value.
// It is fatal at startup and never retried.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// AuthenticationError reports a credential the provider rejected
// (expired, revoked, or missing a scope). The host must re-authenticate.
type AuthenticationError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s failed: authentication: %s", e.Op, e.Message)
}

// Is reports whether target is ErrAuthentication.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// ProviderError reports any other provider failure, annotated with the
// failing operation and the provider-supplied message.
type ProviderError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed: %d %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

// Is reports whether target is ErrProvider.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient (429 or 5xx).
// The core never retries; this is informational for hosts.
func (e *ProviderError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// DataIntegrityError signals a bug rather than a transient condition,
// such as a provider cursor that repeats.
type DataIntegrityError struct {
	Op      string
	Message string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("%s: data integrity: %s", e.Op, e.Message)
}

// Is reports whether target is ErrDataIntegrity.
func (e *DataIntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}
