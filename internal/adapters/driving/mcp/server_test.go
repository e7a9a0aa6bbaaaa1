package mcp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing lifecycle returns error", func(t *testing.T) {
		ports := &Ports{Drive: &mockDriveService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingLifecycle)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Lifecycle: &mockLifecycle{},
			Drive:     &mockDriveService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("missing lifecycle returns error", func(t *testing.T) {
		ports := &Ports{Mail: &mockMailService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingLifecycle)
	})

	t.Run("no resource service returns error", func(t *testing.T) {
		ports := &Ports{Lifecycle: &mockLifecycle{}}
		assert.ErrorIs(t, ports.Validate(), ErrNoResourceServices)
	})

	t.Run("one service is valid", func(t *testing.T) {
		ports := &Ports{Lifecycle: &mockLifecycle{}, Tasks: &mockTasksService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Lifecycle: &mockLifecycle{},
			Drive:     &mockDriveService{},
			Calendar:  &mockCalendarService{},
			Mail:      &mockMailService{},
			Contacts:  &mockContactsService{},
			Tasks:     &mockTasksService{},
		}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_Router(t *testing.T) {
	lifecycle := &mockLifecycle{}
	server, err := NewServer(&Ports{Lifecycle: lifecycle, Drive: &mockDriveService{}})
	require.NoError(t, err)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("wsbridge_api_calls_total 1\n"))
	})

	t.Run("healthz is unavailable before init", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.Router(metrics).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("healthz is ok after init", func(t *testing.T) {
		require.NoError(t, server.ready(t.Context()))

		rec := httptest.NewRecorder()
		server.Router(metrics).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ok")
	})

	t.Run("metrics route is mounted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.Router(metrics).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "wsbridge_api_calls_total")
	})

	t.Run("metrics route is absent without handler", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.Router(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
