package tasks

import (
	"time"

	"google.golang.org/api/tasks/v1"

	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

func toTaskList(op string, l *tasks.TaskList) (domain.TaskList, error) {
	if l == nil || l.Id == "" {
		return domain.TaskList{}, google.MalformedResponse(op, "task list without id")
	}
	out := domain.TaskList{ID: l.Id, Title: l.Title}
	if t := parseTime(l.Updated); t != nil {
		out.Updated = *t
	}
	return out, nil
}

func toTask(op, listID string, t *tasks.Task) (domain.Task, error) {
	if t == nil || t.Id == "" {
		return domain.Task{}, google.MalformedResponse(op, "task without id")
	}
	out := domain.Task{
		ID:         t.Id,
		TaskListID: listID,
		Title:      t.Title,
		Notes:      t.Notes,
		Status:     t.Status,
		Due:        parseTime(t.Due),
	}
	if t.Completed != nil {
		out.Completed = parseTime(*t.Completed)
	}
	for _, l := range t.Links {
		if l == nil {
			continue
		}
		out.Links = append(out.Links, domain.TaskLink{Type: l.Type, Description: l.Description, Link: l.Link})
	}
	return out, nil
}

// parseTime parses an RFC 3339 timestamp, returning nil when empty or invalid.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
