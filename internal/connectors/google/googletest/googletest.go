// Package googletest provides helpers for testing provider adapters
// against an httptest server.
package googletest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// Token is the bearer token NewClient installs.
const Token = "test-token"

// StaticTokens is a TokenProvider with a fixed token.
type StaticTokens string

// GetToken returns the token or domain.ErrNotSignedIn when empty.
func (s StaticTokens) GetToken(context.Context) (string, error) {
	if s == "" {
		return "", domain.ErrNotSignedIn
	}
	return string(s), nil
}

// IsActive returns true if the token is set.
func (s StaticTokens) IsActive() bool { return s != "" }

// NewClient starts a server for handler and returns a client whose every
// API host points at it. The throttle does not delay.
func NewClient(t *testing.T, handler http.Handler) *google.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return google.NewClient(StaticTokens(Token), google.NewThrottle(0, nil), google.ClientOptions{
		Endpoint: srv.URL,
		Timeout:  5 * time.Second,
	})
}

// JSON writes v as a JSON response.
func JSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a provider-style JSON error.
func Error(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": status, "message": message},
	})
}
