// Package domain defines the core entities of the workspace integration layer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DriveFile, CalendarEvent, MailMessage, Contact, Task: normalised records
//   - Page: one page of a provider listing plus its continuation cursor
//   - Settings: initialisation parameters for the provider clients
//   - ConfigurationError, AuthenticationError, ProviderError, DataIntegrityError
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
