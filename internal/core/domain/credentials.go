package domain

import "time"

// Credential is the bearer token used for every provider call.
// It is issued by an external sign-in flow and never persisted by the core.
type Credential struct {
	// Token is the opaque access token.
	Token string
	// InstalledAt is when the credential was set.
	InstalledAt time.Time
}

// IsZero returns true if no token is held.
func (c Credential) IsZero() bool {
	return c.Token == ""
}

// Masked returns the token with all but its edges hidden, for display.
func (c Credential) Masked() string {
	if len(c.Token) <= 8 {
		return "****"
	}
	return c.Token[:4] + "..." + c.Token[len(c.Token)-4:]
}
