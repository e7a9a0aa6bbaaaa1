package tasks

import (
	"context"
	"net/http"
	"testing"
	"time"

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

func TestProvider_ListTaskLists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/v1/users/@me/lists", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("maxResults"))
		googletest.JSON(w, map[string]any{
			"items": []map[string]any{
				{"id": "L1", "title": "My Tasks", "updated": "2024-03-01T08:00:00.000Z"},
				{"id": "L2", "title": "Groceries"},
			},
		})
	})
	p := newTestProvider(t, mux)

	page, err := p.ListTaskLists(context.Background(), 0, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "My Tasks", page.Items[0].Title)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), page.Items[0].Updated.UTC())
	assert.True(t, page.Items[1].Updated.IsZero())
	assert.False(t, page.HasMore())
}

func TestProvider_ListTasks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/v1/lists/{list}/tasks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "@default", r.PathValue("list"))
		q := r.URL.Query()
		assert.Equal(t, "true", q.Get("showCompleted"))
		assert.Equal(t, "p1", q.Get("pageToken"))
		googletest.JSON(w, map[string]any{
			"items": []map[string]any{
				{
					"id":     "t1",
					"title":  "Write report",
					"notes":  "Q2 numbers",
					"status": "needsAction",
					"due":    "2024-06-30T00:00:00.000Z",
					"links":  []map[string]any{{"type": "email", "description": "thread", "link": "https://mail.google.com/x"}},
				},
				{
					"id":        "t2",
					"title":     "Send invoice",
					"status":    "completed",
					"completed": "2024-06-01T10:00:00.000Z",
				},
			},
			"nextPageToken": "p2",
		})
	})
	p := newTestProvider(t, mux)

	page, err := p.ListTasks(context.Background(), domain.TaskFilter{ShowCompleted: true}, 0, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p2", page.NextCursor)
	require.Len(t, page.Items, 2)

	t1 := page.Items[0]
	assert.Equal(t, "@default", t1.TaskListID)
	require.NotNil(t, t1.Due)
	assert.Equal(t, 30, t1.Due.Day())
	assert.Nil(t, t1.Completed)
	assert.False(t, t1.IsCompleted())
	require.Len(t, t1.Links, 1)
	assert.Equal(t, "email", t1.Links[0].Type)

	t2 := page.Items[1]
	assert.True(t, t2.IsCompleted())
	require.NotNil(t, t2.Completed)
	assert.Nil(t, t2.Due)
}

func TestProvider_GetTask(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/v1/lists/{list}/tasks/{task}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("task") != "t1" {
			googletest.Error(w, http.StatusNotFound, "Task not found")
			return
		}
		googletest.JSON(w, map[string]any{"id": "t1", "title": "Write report", "status": "needsAction"})
	})
	p := newTestProvider(t, mux)

	task, err := p.GetTask(context.Background(), "L1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "L1", task.TaskListID)
	assert.Equal(t, "Write report", task.Title)

	_, err = p.GetTask(context.Background(), "L1", "t404")
	assert.ErrorIs(t, err, domain.ErrProvider)
}
