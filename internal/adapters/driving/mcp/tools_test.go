package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Lifecycle == nil {
		ports.Lifecycle = &mockLifecycle{}
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleDriveList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns files and cursor", func(t *testing.T) {
		drive := &mockDriveService{
			files: []domain.DriveFile{{
				ID:           "f1",
				Name:         "Plan.pdf",
				MimeType:     "application/pdf",
				Size:         1536,
				ModifiedTime: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			}},
			cursor: "next",
		}
		server := newTestServer(t, &Ports{Drive: drive})

		_, output, err := server.handleDriveList(ctx, nil, DriveListInput{Query: "starred = true"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "next", output.NextCursor)
		assert.Equal(t, "f1", output.Files[0].ID)
		assert.Equal(t, "1.50 KB", output.Files[0].Size)
		assert.Equal(t, "2024-03-01T10:00:00Z", output.Files[0].ModifiedTime)
		assert.Equal(t, "starred = true", drive.lastFilter.Query)
	})

	t.Run("initialises the workspace first", func(t *testing.T) {
		lifecycle := &mockLifecycle{initErr: &domain.ConfigurationError{Field: "google.api_key", Message: "API key is not set"}}
		server := newTestServer(t, &Ports{Lifecycle: lifecycle, Drive: &mockDriveService{}})

		_, _, err := server.handleDriveList(ctx, nil, DriveListInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Equal(t, 1, lifecycle.inits)
	})

	t.Run("empty listing is an empty array", func(t *testing.T) {
		server := newTestServer(t, &Ports{Drive: &mockDriveService{}})

		_, output, err := server.handleDriveList(ctx, nil, DriveListInput{})

		require.NoError(t, err)
		assert.NotNil(t, output.Files)
		assert.Equal(t, 0, output.Count)
	})
}

func TestServer_handleDriveGet_NotFound(t *testing.T) {
	server := newTestServer(t, &Ports{Drive: &mockDriveService{}})

	_, _, err := server.handleDriveGet(context.Background(), nil, IDInput{ID: "missing"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_handleDriveBatch(t *testing.T) {
	drive := &mockDriveService{files: []domain.DriveFile{{ID: "a"}, {ID: "c"}}}
	server := newTestServer(t, &Ports{Drive: drive})

	_, output, err := server.handleDriveBatch(context.Background(), nil, DriveBatchInput{IDs: []string{"a", "b", "c"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, drive.lastIDs)
	assert.Equal(t, 2, output.Count)
}

func TestServer_handleDriveContent(t *testing.T) {
	ctx := context.Background()

	t.Run("text content is returned", func(t *testing.T) {
		server := newTestServer(t, &Ports{Drive: &mockDriveService{content: []byte("hello")}})

		_, output, err := server.handleDriveContent(ctx, nil, IDInput{ID: "f1"})

		require.NoError(t, err)
		assert.Equal(t, "hello", output.Content)
		assert.Equal(t, 5, output.Bytes)
		assert.False(t, output.Binary)
	})

	t.Run("binary content is flagged", func(t *testing.T) {
		server := newTestServer(t, &Ports{Drive: &mockDriveService{content: []byte{0xff, 0xfe, 0x00}}})

		_, output, err := server.handleDriveContent(ctx, nil, IDInput{ID: "f1"})

		require.NoError(t, err)
		assert.Empty(t, output.Content)
		assert.True(t, output.Binary)
		assert.Equal(t, 3, output.Bytes)
	})
}

func TestServer_handleCalendarList(t *testing.T) {
	ctx := context.Background()

	t.Run("parses the window", func(t *testing.T) {
		cal := &mockCalendarService{events: []domain.CalendarEvent{{
			ID:         "e1",
			CalendarID: "primary",
			Summary:    "Standup",
			Start:      domain.EventTime{Date: "2024-05-01"},
			Conference: &domain.Conference{EntryPoints: []domain.EntryPoint{
				{Type: "phone", URI: "tel:+1"},
				{Type: "video", URI: "https://meet.example/abc"},
			}},
		}}}
		server := newTestServer(t, &Ports{Calendar: cal})

		_, output, err := server.handleCalendarList(ctx, nil, CalendarListInput{
			TimeMin: "2024-05-01T00:00:00Z",
			TimeMax: "2024-05-08T00:00:00Z",
		})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), cal.lastFilter.TimeMin)
		assert.Equal(t, time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC), cal.lastFilter.TimeMax)
		require.Len(t, output.Events, 1)
		assert.Equal(t, "2024-05-01", output.Events[0].Start)
		assert.Equal(t, "https://meet.example/abc", output.Events[0].MeetingURL)
	})

	t.Run("rejects a malformed time", func(t *testing.T) {
		server := newTestServer(t, &Ports{Calendar: &mockCalendarService{}})

		_, _, err := server.handleCalendarList(ctx, nil, CalendarListInput{TimeMin: "tomorrow"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleCalendarHistory(t *testing.T) {
	cal := &mockCalendarService{}
	server := newTestServer(t, &Ports{Calendar: cal})

	_, output, err := server.handleCalendarHistory(context.Background(), nil, CalendarHistoryInput{CalendarID: "team"})

	require.NoError(t, err)
	assert.Equal(t, "team", cal.lastCalendar)
	assert.True(t, cal.lastFrom.IsZero())
	assert.True(t, cal.lastTo.IsZero())
	assert.Equal(t, 0, output.Count)
}

func TestServer_handleMailGet(t *testing.T) {
	mail := &mockMailService{messages: []domain.MailMessage{{
		ID:          "m1",
		Subject:     "Hi",
		Unread:      true,
		HasBody:     true,
		Body:        "body text",
		Attachments: []domain.Attachment{{Filename: "a.pdf"}},
	}}}
	server := newTestServer(t, &Ports{Mail: mail})

	_, output, err := server.handleMailGet(context.Background(), nil, MailGetInput{ID: "m1", IncludeBody: true})

	require.NoError(t, err)
	assert.True(t, mail.lastOpts.IncludeBody)
	assert.Equal(t, "body text", output.Body)
	assert.Equal(t, []string{"a.pdf"}, output.Attachments)
	assert.True(t, output.Unread)
}

func TestServer_handleMailLabels(t *testing.T) {
	mail := &mockMailService{labels: []domain.MailLabel{{ID: "INBOX", Name: "INBOX", Type: "system", MessagesTotal: 10, MessagesUnread: 2}}}
	server := newTestServer(t, &Ports{Mail: mail})

	_, output, err := server.handleMailLabels(context.Background(), nil, EmptyInput{})

	require.NoError(t, err)
	require.Len(t, output.Labels, 1)
	assert.Equal(t, int64(2), output.Labels[0].Unread)
}

func TestServer_handleContactsSearch(t *testing.T) {
	contacts := &mockContactsService{contacts: []domain.Contact{{
		ResourceName: "people/c1",
		DisplayName:  "Ada",
		Emails:       []domain.ContactValue{{Value: "ada@example.com", Type: "work"}},
	}}}
	server := newTestServer(t, &Ports{Contacts: contacts})

	_, output, err := server.handleContactsSearch(context.Background(), nil, SearchInput{Text: "ada"})

	require.NoError(t, err)
	require.Len(t, output.Contacts, 1)
	assert.Equal(t, []string{"ada@example.com"}, output.Contacts[0].Emails)
}

func TestServer_handleProfile_Error(t *testing.T) {
	contacts := &mockContactsService{err: &domain.AuthenticationError{Op: "people.get", StatusCode: 401, Message: "expired"}}
	server := newTestServer(t, &Ports{Contacts: contacts})

	_, _, err := server.handleProfile(context.Background(), nil, EmptyInput{})

	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestServer_handleTasksSearch(t *testing.T) {
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tasks := &mockTasksService{tasks: []domain.Task{{ID: "t1", Title: "Pay rent", Status: domain.TaskNeedsAction, Due: &due}}}
	server := newTestServer(t, &Ports{Tasks: tasks})

	_, output, err := server.handleTasksSearch(context.Background(), nil, TaskSearchInput{Text: "rent", ShowCompleted: true})

	require.NoError(t, err)
	assert.Equal(t, "rent", tasks.lastText)
	assert.True(t, tasks.lastFilter.ShowCompleted)
	require.Len(t, output.Tasks, 1)
	assert.Equal(t, "2024-06-01", output.Tasks[0].Due)
}

func TestServer_handleTasksList_Error(t *testing.T) {
	server := newTestServer(t, &Ports{Tasks: &mockTasksService{err: errors.New("boom")}})

	_, _, err := server.handleTasksList(context.Background(), nil, TasksListInput{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
