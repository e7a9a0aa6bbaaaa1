package driven

import "context"

// TokenProvider supplies the bearer credential for provider calls.
//
// The provider transport asks for the token on every request, so a
// credential installed or cleared between two calls takes effect on the
// next call without rebuilding any client.
type TokenProvider interface {
	// GetToken returns the active access token, or domain.ErrNotSignedIn.
	GetToken(ctx context.Context) (string, error)

	// IsActive returns true if a credential is installed.
	IsActive() bool
}
