package gmail

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsbridge/internal/connectors/google/googletest"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

func newTestProvider(t *testing.T, handler http.Handler) *Provider {
	t.Helper()
	p, err := New(context.Background(), googletest.NewClient(t, handler))
	require.NoError(t, err)
	return p
}

func TestProvider_ListMessages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gmail/v1/users/me/messages", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "is:unread", q.Get("q"))
		assert.Equal(t, "2", q.Get("maxResults"))
		if q.Get("pageToken") == "" {
			googletest.JSON(w, map[string]any{
				"messages":      []map[string]any{{"id": "m1", "threadId": "t1"}, {"id": "m2", "threadId": "t2"}},
				"nextPageToken": "c1",
			})
			return
		}
		assert.Equal(t, "c1", q.Get("pageToken"))
		googletest.JSON(w, map[string]any{"messages": []map[string]any{{"id": "m3", "threadId": "t3"}}})
	})
	p := newTestProvider(t, mux)
	filter := domain.MailFilter{Query: "is:unread"}

	page, err := p.ListMessages(context.Background(), filter, 2, "")
	require.NoError(t, err)
	assert.Equal(t, "c1", page.NextCursor)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "m1", page.Items[0].ID)

	page, err = p.ListMessages(context.Background(), filter, 2, "c1")
	require.NoError(t, err)
	assert.False(t, page.HasMore())
	require.Len(t, page.Items, 1)
	assert.Equal(t, "m3", page.Items[0].ID)
}

func TestProvider_ListMessages_Labels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gmail/v1/users/me/messages", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, []string{"INBOX", "IMPORTANT"}, q["labelIds"])
		assert.Empty(t, q.Get("q"))
		googletest.JSON(w, map[string]any{})
	})
	p := newTestProvider(t, mux)

	page, err := p.ListMessages(context.Background(), domain.MailFilter{LabelIDs: []string{"INBOX", "IMPORTANT"}}, 0, "")
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestProvider_GetMessage_Metadata(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gmail/v1/users/me/messages/{id}", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "metadata", q.Get("format"))
		assert.Equal(t, []string{"From", "To", "Subject", "Date"}, q["metadataHeaders"])
		googletest.JSON(w, map[string]any{
			"id":       r.PathValue("id"),
			"threadId": "t1",
			"snippet":  "Hello there",
			"labelIds": []string{"INBOX", "UNREAD"},
			"payload": map[string]any{
				"headers": []map[string]any{
					{"name": "From", "value": "Ann <ann@example.com>"},
					{"name": "To", "value": "me@example.com"},
					{"name": "Subject", "value": "Lunch"},
					{"name": "Date", "value": "Mon, 3 Jun 2024 12:00:00 +0000"},
				},
			},
		})
	})
	p := newTestProvider(t, mux)

	msg, err := p.GetMessage(context.Background(), "m1", false)
	require.NoError(t, err)
	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, "Ann <ann@example.com>", msg.From)
	assert.Equal(t, "Lunch", msg.Subject)
	assert.True(t, msg.Unread)
	assert.False(t, msg.HasAttachments)
	assert.False(t, msg.HasBody)
	assert.Empty(t, msg.Body)
}

func TestProvider_GetMessage_Full(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gmail/v1/users/me/messages/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "full", r.URL.Query().Get("format"))
		googletest.JSON(w, map[string]any{
			"id":       "m2",
			"labelIds": []string{"INBOX"},
			"payload": map[string]any{
				"mimeType": "multipart/mixed",
				"parts": []map[string]any{
					{"mimeType": "text/html", "body": map[string]any{"data": "PGI+aGk8L2I+"}},
					{"mimeType": "application/pdf", "filename": "a.pdf", "body": map[string]any{"size": 10}},
				},
			},
		})
	})
	p := newTestProvider(t, mux)

	msg, err := p.GetMessage(context.Background(), "m2", true)
	require.NoError(t, err)
	assert.True(t, msg.HasBody)
	assert.Equal(t, "<b>hi</b>", msg.Body)
	assert.False(t, msg.Unread)
	assert.True(t, msg.HasAttachments)
	assert.Equal(t, []domain.Attachment{{Filename: "a.pdf", MimeType: "application/pdf", Size: 10}}, msg.Attachments)
}

func TestProvider_GetMessage_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gmail/v1/users/me/messages/{id}", func(w http.ResponseWriter, _ *http.Request) {
		googletest.Error(w, http.StatusNotFound, "Requested entity was not found.")
	})
	p := newTestProvider(t, mux)

	_, err := p.GetMessage(context.Background(), "gone", false)
	require.ErrorIs(t, err, domain.ErrProvider)
	assert.Contains(t, err.Error(), "Requested entity was not found.")
}

func TestProvider_ListLabels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gmail/v1/users/me/labels", func(w http.ResponseWriter, _ *http.Request) {
		googletest.JSON(w, map[string]any{"labels": []map[string]any{
			{"id": "INBOX", "name": "INBOX", "type": "system"},
			{"id": "Label_1", "name": "Receipts", "type": "user", "messagesUnread": 3},
		}})
	})
	p := newTestProvider(t, mux)

	labels, err := p.ListLabels(context.Background())
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "Receipts", labels[1].Name)
	assert.Equal(t, int64(3), labels[1].MessagesUnread)
}
