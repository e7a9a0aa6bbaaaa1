package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driving"
	"github.com/custodia-labs/wsbridge/internal/logger"
)

// Ensure Session implements the interfaces.
var (
	_ driving.SessionService = (*Session)(nil)
	_ driven.TokenProvider   = (*Session)(nil)
)

// Session holds the single active credential and owns cache invalidation.
//
// Every provider transport reads the token through GetToken on each
// request, so Set and Clear take effect on the next outbound call.
type Session struct {
	mu      sync.RWMutex
	cred    domain.Credential
	caches  []driven.Clearable
	metrics driven.Metrics
	now     func() time.Time
}

// NewSession creates a session with no credential. The given caches are
// emptied together whenever the credential is cleared or replaced.
func NewSession(metrics driven.Metrics, caches ...driven.Clearable) *Session {
	if metrics == nil {
		metrics = driven.NopMetrics{}
	}
	return &Session{
		caches:  caches,
		metrics: metrics,
		now:     time.Now,
	}
}

// Set installs a credential. Setting the same token again is a no-op.
// Replacing an active credential with a different one clears the caches,
// since records fetched under one identity must not be served to another.
// An empty token is equivalent to Clear.
func (s *Session) Set(token string) {
	if token == "" {
		s.Clear()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cred.Token == token {
		return
	}
	if !s.cred.IsZero() {
		logger.Info("credential replaced, invalidating caches")
		s.clearCachesLocked()
	}
	s.cred = domain.Credential{Token: token, InstalledAt: s.now()}
}

// Clear removes the credential and empties every cache under one lock.
// No caller can observe a cleared credential alongside populated caches.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = domain.Credential{}
	s.clearCachesLocked()
	logger.Info("credential cleared")
}

// IsActive returns true if a credential is installed.
func (s *Session) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.cred.IsZero()
}

// Credential returns a copy of the installed credential.
func (s *Session) Credential() domain.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred
}

// GetToken returns the active token, or domain.ErrNotSignedIn.
func (s *Session) GetToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred.IsZero() {
		return "", domain.ErrNotSignedIn
	}
	return s.cred.Token, nil
}

func (s *Session) clearCachesLocked() {
	for _, c := range s.caches {
		c.Clear()
	}
	s.metrics.RecordCacheClear()
}
