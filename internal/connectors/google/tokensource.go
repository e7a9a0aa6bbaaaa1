package google

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
)

// TokenSourceAdapter adapts the session's TokenProvider to oauth2.TokenSource.
// It never caches: every request reads the session, so a credential change
// takes effect on the next call.
type TokenSourceAdapter struct {
	provider driven.TokenProvider
}

// NewTokenSource creates an oauth2.TokenSource from a TokenProvider.
func NewTokenSource(provider driven.TokenProvider) oauth2.TokenSource {
	return &TokenSourceAdapter{provider: provider}
}

// Token implements oauth2.TokenSource interface.
// Called by the oauth2 transport before each request.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	accessToken, err := t.provider.GetToken(context.Background())
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}
