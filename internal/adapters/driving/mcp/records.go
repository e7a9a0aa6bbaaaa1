package mcp

import (
	"time"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// FileOutput is a Drive file as returned to the assistant.
type FileOutput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mime_type"`
	Size         string `json:"size,omitempty"`
	ModifiedTime string `json:"modified_time,omitempty"`
	WebViewLink  string `json:"web_view_link,omitempty"`
	Starred      bool   `json:"starred,omitempty"`
	Shared       bool   `json:"shared,omitempty"`
}

// EventOutput is a calendar event as returned to the assistant.
type EventOutput struct {
	ID          string   `json:"id"`
	CalendarID  string   `json:"calendar_id"`
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Attendees   []string `json:"attendees,omitempty"`
	MeetingURL  string   `json:"meeting_url,omitempty"`
	Status      string   `json:"status,omitempty"`
	HTMLLink    string   `json:"html_link,omitempty"`
}

// MessageOutput is a mail message as returned to the assistant.
type MessageOutput struct {
	ID             string   `json:"id"`
	ThreadID       string   `json:"thread_id"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	Subject        string   `json:"subject"`
	Date           string   `json:"date"`
	Snippet        string   `json:"snippet"`
	Unread         bool     `json:"unread"`
	HasAttachments bool     `json:"has_attachments"`
	Labels         []string `json:"labels,omitempty"`
	Body           string   `json:"body,omitempty"`
	Attachments    []string `json:"attachments,omitempty"`
}

// ContactOutput is a contact as returned to the assistant.
type ContactOutput struct {
	ResourceName string   `json:"resource_name"`
	DisplayName  string   `json:"display_name"`
	Emails       []string `json:"emails,omitempty"`
	Phones       []string `json:"phones,omitempty"`
}

// TaskOutput is a task as returned to the assistant.
type TaskOutput struct {
	ID         string `json:"id"`
	TaskListID string `json:"task_list_id"`
	Title      string `json:"title"`
	Notes      string `json:"notes,omitempty"`
	Status     string `json:"status"`
	Due        string `json:"due,omitempty"`
}

func toFileOutput(f domain.DriveFile) FileOutput {
	out := FileOutput{
		ID:           f.ID,
		Name:         f.Name,
		MimeType:     f.MimeType,
		ModifiedTime: formatTime(f.ModifiedTime),
		WebViewLink:  f.WebViewLink,
		Starred:      f.Starred,
		Shared:       f.Shared,
	}
	if !f.IsFolder() {
		out.Size = domain.FormatFileSize(f.Size)
	}
	return out
}

func toEventOutput(e domain.CalendarEvent) EventOutput {
	out := EventOutput{
		ID:          e.ID,
		CalendarID:  e.CalendarID,
		Summary:     e.Summary,
		Description: e.Description,
		Location:    e.Location,
		Start:       e.Start.String(),
		End:         e.End.String(),
		Status:      e.Status,
		HTMLLink:    e.HTMLLink,
	}
	for _, a := range e.Attendees {
		out.Attendees = append(out.Attendees, a.Email)
	}
	if e.Conference != nil {
		for _, ep := range e.Conference.EntryPoints {
			if ep.Type == "video" {
				out.MeetingURL = ep.URI
				break
			}
		}
	}
	return out
}

func toMessageOutput(m domain.MailMessage) MessageOutput {
	out := MessageOutput{
		ID:             m.ID,
		ThreadID:       m.ThreadID,
		From:           m.From,
		To:             m.To,
		Subject:        m.Subject,
		Date:           m.Date,
		Snippet:        m.Snippet,
		Unread:         m.Unread,
		HasAttachments: m.HasAttachments,
		Labels:         m.LabelIDs,
		Body:           m.Body,
	}
	for _, a := range m.Attachments {
		out.Attachments = append(out.Attachments, a.Filename)
	}
	return out
}

func toContactOutput(c domain.Contact) ContactOutput {
	out := ContactOutput{
		ResourceName: c.ResourceName,
		DisplayName:  c.DisplayName,
	}
	for _, e := range c.Emails {
		out.Emails = append(out.Emails, e.Value)
	}
	for _, p := range c.Phones {
		out.Phones = append(out.Phones, p.Value)
	}
	return out
}

func toTaskOutput(t domain.Task) TaskOutput {
	out := TaskOutput{
		ID:         t.ID,
		TaskListID: t.TaskListID,
		Title:      t.Title,
		Notes:      t.Notes,
		Status:     t.Status,
	}
	if t.Due != nil {
		out.Due = t.Due.Format(time.DateOnly)
	}
	return out
}

func mapAll[T, O any](items []T, fn func(T) O) []O {
	out := make([]O, len(items))
	for i := range items {
		out[i] = fn(items[i])
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
