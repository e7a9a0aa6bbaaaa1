package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsbridge/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

func newTestCaches() Caches {
	return Caches{
		Files:    memory.NewResourceCache[domain.DriveFile]("documents"),
		Events:   memory.NewResourceCache[domain.CalendarEvent]("calendar_events"),
		Messages: memory.NewResourceCache[domain.MailMessage]("mail_messages"),
	}
}

func TestSession_GetToken_NotSignedIn(t *testing.T) {
	s := NewSession(nil)

	_, err := s.GetToken(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotSignedIn)
	assert.False(t, s.IsActive())
	assert.True(t, s.Credential().IsZero())
}

func TestSession_SetAndClear(t *testing.T) {
	s := NewSession(nil)

	s.Set("ya29.token")
	assert.True(t, s.IsActive())
	tok, err := s.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", tok)
	assert.False(t, s.Credential().InstalledAt.IsZero())

	s.Clear()
	assert.False(t, s.IsActive())
	_, err = s.GetToken(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotSignedIn)
}

func TestSession_SetEmptyToken_Clears(t *testing.T) {
	s := NewSession(nil)
	s.Set("token")
	s.Set("")
	assert.False(t, s.IsActive())
}

func TestSession_Clear_EmptiesAllCaches(t *testing.T) {
	caches := newTestCaches()
	metrics := &countingMetrics{}
	s := NewSession(metrics, caches.Clearables()...)
	s.Set("token")

	caches.Files.Put("d1", domain.DriveFile{ID: "d1"})
	caches.Events.Put("primary/e1", domain.CalendarEvent{ID: "e1"})
	caches.Messages.Put("m1", domain.MailMessage{ID: "m1"})

	s.Clear()

	assert.Equal(t, 0, caches.Files.Len())
	assert.Equal(t, 0, caches.Events.Len())
	assert.Equal(t, 0, caches.Messages.Len())
	assert.Equal(t, 1, metrics.clears)
}

func TestSession_Set_ReplacingTokenClearsCaches(t *testing.T) {
	tests := []struct {
		name      string
		second    string
		wantEmpty bool
	}{
		{name: "same token keeps caches", second: "token-a", wantEmpty: false},
		{name: "different token clears caches", second: "token-b", wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caches := newTestCaches()
			s := NewSession(nil, caches.Clearables()...)
			s.Set("token-a")
			caches.Files.Put("d1", domain.DriveFile{ID: "d1"})

			s.Set(tt.second)

			assert.Equal(t, tt.wantEmpty, caches.Files.Len() == 0)
			tok, err := s.GetToken(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.second, tok)
		})
	}
}

func TestSession_FirstSet_DoesNotClear(t *testing.T) {
	caches := newTestCaches()
	s := NewSession(nil, caches.Clearables()...)
	caches.Files.Put("d1", domain.DriveFile{ID: "d1"})

	s.Set("token")
	assert.Equal(t, 1, caches.Files.Len())
}

func TestSession_Concurrent(t *testing.T) {
	caches := newTestCaches()
	s := NewSession(nil, caches.Clearables()...)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			s.Set("token")
		}()
		go func() {
			defer wg.Done()
			_, _ = s.GetToken(context.Background())
		}()
		go func() {
			defer wg.Done()
			s.Clear()
		}()
	}
	wg.Wait()
}
