package mcp

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// Tool inputs.

// ContactsListInput is the input for the contacts_list tool.
type ContactsListInput struct {
	PageSize int    `json:"page_size,omitempty" jsonschema:"maximum number of items on the page"`
	Cursor   string `json:"cursor,omitempty" jsonschema:"next_cursor from a previous call"`
}

// SearchInput is the input of the text search tools.
type SearchInput struct {
	Text string `json:"text" jsonschema:"text to search for"`
}

// IDInput identifies one record.
type IDInput struct {
	ID string `json:"id" jsonschema:"record identifier"`
}

// EmptyInput is the input of tools that take no arguments.
type EmptyInput struct{}

// DriveListInput is the input for the drive_list tool.
type DriveListInput struct {
	PageSize int    `json:"page_size,omitempty" jsonschema:"maximum number of items on the page"`
	Cursor   string `json:"cursor,omitempty" jsonschema:"next_cursor from a previous call"`
	Query    string `json:"query,omitempty" jsonschema:"Drive query expression (default: trashed = false)"`
}

// DriveBatchInput is the input for the drive_batch_get tool.
type DriveBatchInput struct {
	IDs []string `json:"ids" jsonschema:"file identifiers to resolve"`
}

// CalendarListInput is the input for the calendar_list_events tool.
type CalendarListInput struct {
	PageSize   int    `json:"page_size,omitempty" jsonschema:"maximum number of items on the page"`
	Cursor     string `json:"cursor,omitempty" jsonschema:"next_cursor from a previous call"`
	CalendarID string `json:"calendar_id,omitempty" jsonschema:"calendar id (default: primary)"`
	TimeMin    string `json:"time_min,omitempty" jsonschema:"RFC 3339 window start (default: now)"`
	TimeMax    string `json:"time_max,omitempty" jsonschema:"RFC 3339 window end (default: 30 days after start)"`
	Query      string `json:"query,omitempty" jsonschema:"free text filter"`
}

// CalendarGetInput is the input for the calendar_get_event tool.
type CalendarGetInput struct {
	CalendarID string `json:"calendar_id,omitempty" jsonschema:"calendar id (default: primary)"`
	EventID    string `json:"event_id" jsonschema:"event identifier"`
}

// CalendarHistoryInput is the input for the calendar_history tool.
type CalendarHistoryInput struct {
	CalendarID string `json:"calendar_id,omitempty" jsonschema:"calendar id (default: primary)"`
	TimeMin    string `json:"time_min,omitempty" jsonschema:"RFC 3339 window start (default: now)"`
	TimeMax    string `json:"time_max,omitempty" jsonschema:"RFC 3339 window end (default: 90 days after start)"`
}

// MailListInput is the input for the mail_list tool.
type MailListInput struct {
	PageSize    int      `json:"page_size,omitempty" jsonschema:"maximum number of items on the page"`
	Cursor      string   `json:"cursor,omitempty" jsonschema:"next_cursor from a previous call"`
	Query       string   `json:"query,omitempty" jsonschema:"Gmail search expression (default: is:unread)"`
	LabelIDs    []string `json:"label_ids,omitempty" jsonschema:"restrict to these label ids"`
	IncludeBody bool     `json:"include_body,omitempty" jsonschema:"resolve message bodies"`
}

// MailGetInput is the input for the mail_get tool.
type MailGetInput struct {
	ID          string `json:"id" jsonschema:"message identifier"`
	IncludeBody bool   `json:"include_body,omitempty" jsonschema:"include the decoded body"`
}

// ContactGetInput is the input for the contacts_get tool.
type ContactGetInput struct {
	ResourceName string `json:"resource_name" jsonschema:"contact resource name such as people/c123"`
}

// TasksListInput is the input for the tasks_list tool.
type TasksListInput struct {
	PageSize      int    `json:"page_size,omitempty" jsonschema:"maximum number of items on the page"`
	Cursor        string `json:"cursor,omitempty" jsonschema:"next_cursor from a previous call"`
	TaskListID    string `json:"task_list_id,omitempty" jsonschema:"task list id (default: @default)"`
	ShowCompleted bool   `json:"show_completed,omitempty" jsonschema:"include completed tasks"`
}

// TaskGetInput is the input for the tasks_get tool.
type TaskGetInput struct {
	TaskListID string `json:"task_list_id,omitempty" jsonschema:"task list id (default: @default)"`
	TaskID     string `json:"task_id" jsonschema:"task identifier"`
}

// TaskSearchInput is the input for the tasks_search tool.
type TaskSearchInput struct {
	TaskListID    string `json:"task_list_id,omitempty" jsonschema:"task list id (default: @default)"`
	ShowCompleted bool   `json:"show_completed,omitempty" jsonschema:"include completed tasks"`
	Text          string `json:"text" jsonschema:"text matched against titles and notes"`
}

// Tool outputs.

// FilesOutput is a list of files.
type FilesOutput struct {
	Files      []FileOutput `json:"files"`
	Count      int          `json:"count"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// ContentOutput is a downloaded file.
type ContentOutput struct {
	ID      string `json:"id"`
	Bytes   int    `json:"bytes"`
	Content string `json:"content,omitempty"`
	Binary  bool   `json:"binary,omitempty"`
}

// EventsOutput is a list of events.
type EventsOutput struct {
	Events     []EventOutput `json:"events"`
	Count      int           `json:"count"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// CalendarOutput is one calendar list entry.
type CalendarOutput struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Primary bool   `json:"primary,omitempty"`
}

// CalendarsOutput is the calendar list.
type CalendarsOutput struct {
	Calendars []CalendarOutput `json:"calendars"`
}

// MessagesOutput is a list of messages.
type MessagesOutput struct {
	Messages   []MessageOutput `json:"messages"`
	Count      int             `json:"count"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// LabelOutput is one mailbox label.
type LabelOutput struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Total  int64  `json:"total"`
	Unread int64  `json:"unread"`
}

// LabelsOutput is the mailbox label list.
type LabelsOutput struct {
	Labels []LabelOutput `json:"labels"`
}

// ContactsOutput is a list of contacts.
type ContactsOutput struct {
	Contacts   []ContactOutput `json:"contacts"`
	Count      int             `json:"count"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// ProfileOutput is the signed-in user's profile.
type ProfileOutput struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// TaskListOutput is one task list.
type TaskListOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TaskListsOutput is the list of task lists.
type TaskListsOutput struct {
	TaskLists []TaskListOutput `json:"task_lists"`
}

// TasksOutput is a list of tasks.
type TasksOutput struct {
	Tasks      []TaskOutput `json:"tasks"`
	Count      int          `json:"count"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// registerTools registers a tool handler for every configured service.
func (s *Server) registerTools() {
	if s.ports.Drive != nil {
		mcp.AddTool(s.server, &mcp.Tool{Name: "drive_list", Description: "List Drive files, most recently modified first"}, s.handleDriveList)
		mcp.AddTool(s.server, &mcp.Tool{Name: "drive_get", Description: "Get Drive file metadata"}, s.handleDriveGet)
		mcp.AddTool(s.server, &mcp.Tool{Name: "drive_search", Description: "Find Drive files whose name contains text"}, s.handleDriveSearch)
		mcp.AddTool(s.server, &mcp.Tool{Name: "drive_batch_get", Description: "Resolve many Drive files in one request"}, s.handleDriveBatch)
		mcp.AddTool(s.server, &mcp.Tool{Name: "drive_content", Description: "Download a Drive file as text"}, s.handleDriveContent)
	}
	if s.ports.Calendar != nil {
		mcp.AddTool(s.server, &mcp.Tool{Name: "calendar_list_events", Description: "List calendar events in a time window"}, s.handleCalendarList)
		mcp.AddTool(s.server, &mcp.Tool{Name: "calendar_get_event", Description: "Get one calendar event"}, s.handleCalendarGet)
		mcp.AddTool(s.server, &mcp.Tool{Name: "calendar_search", Description: "Search events in the next 90 days"}, s.handleCalendarSearch)
		mcp.AddTool(s.server, &mcp.Tool{Name: "calendar_history", Description: "Fetch every event instance in a time window"}, s.handleCalendarHistory)
		mcp.AddTool(s.server, &mcp.Tool{Name: "calendar_list_calendars", Description: "List the user's calendars"}, s.handleCalendarCalendars)
	}
	if s.ports.Mail != nil {
		mcp.AddTool(s.server, &mcp.Tool{Name: "mail_list", Description: "List mail messages matching a Gmail query"}, s.handleMailList)
		mcp.AddTool(s.server, &mcp.Tool{Name: "mail_get", Description: "Get one mail message"}, s.handleMailGet)
		mcp.AddTool(s.server, &mcp.Tool{Name: "mail_search", Description: "Search mail with a Gmail query"}, s.handleMailSearch)
		mcp.AddTool(s.server, &mcp.Tool{Name: "mail_labels", Description: "List mailbox labels"}, s.handleMailLabels)
	}
	if s.ports.Contacts != nil {
		mcp.AddTool(s.server, &mcp.Tool{Name: "contacts_list", Description: "List contacts"}, s.handleContactsList)
		mcp.AddTool(s.server, &mcp.Tool{Name: "contacts_get", Description: "Get one contact"}, s.handleContactsGet)
		mcp.AddTool(s.server, &mcp.Tool{Name: "contacts_search", Description: "Search contacts by name, email or phone"}, s.handleContactsSearch)
		mcp.AddTool(s.server, &mcp.Tool{Name: "profile", Description: "Get the signed-in user's profile"}, s.handleProfile)
	}
	if s.ports.Tasks != nil {
		mcp.AddTool(s.server, &mcp.Tool{Name: "tasks_lists", Description: "List task lists"}, s.handleTaskLists)
		mcp.AddTool(s.server, &mcp.Tool{Name: "tasks_list", Description: "List tasks in a task list"}, s.handleTasksList)
		mcp.AddTool(s.server, &mcp.Tool{Name: "tasks_get", Description: "Get one task"}, s.handleTasksGet)
		mcp.AddTool(s.server, &mcp.Tool{Name: "tasks_search", Description: "Find tasks whose title or notes contain text"}, s.handleTasksSearch)
	}
}

func (s *Server) handleDriveList(
	ctx context.Context, _ *mcp.CallToolRequest, input DriveListInput,
) (*mcp.CallToolResult, FilesOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, FilesOutput{}, err
	}
	page, err := s.ports.Drive.List(ctx, domain.DriveFilter{Query: input.Query}, input.PageSize, input.Cursor)
	if err != nil {
		return nil, FilesOutput{}, err
	}
	return nil, filesOutput(page.Items, page.NextCursor), nil
}

func (s *Server) handleDriveGet(
	ctx context.Context, _ *mcp.CallToolRequest, input IDInput,
) (*mcp.CallToolResult, FileOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, FileOutput{}, err
	}
	file, err := s.ports.Drive.Get(ctx, input.ID, false)
	if err != nil {
		return nil, FileOutput{}, err
	}
	return nil, toFileOutput(file), nil
}

func (s *Server) handleDriveSearch(
	ctx context.Context, _ *mcp.CallToolRequest, input SearchInput,
) (*mcp.CallToolResult, FilesOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, FilesOutput{}, err
	}
	files, err := s.ports.Drive.Search(ctx, input.Text)
	if err != nil {
		return nil, FilesOutput{}, err
	}
	return nil, filesOutput(files, ""), nil
}

func (s *Server) handleDriveBatch(
	ctx context.Context, _ *mcp.CallToolRequest, input DriveBatchInput,
) (*mcp.CallToolResult, FilesOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, FilesOutput{}, err
	}
	files, err := s.ports.Drive.BatchGet(ctx, input.IDs)
	if err != nil {
		return nil, FilesOutput{}, err
	}
	return nil, filesOutput(files, ""), nil
}

func (s *Server) handleDriveContent(
	ctx context.Context, _ *mcp.CallToolRequest, input IDInput,
) (*mcp.CallToolResult, ContentOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, ContentOutput{}, err
	}
	data, err := s.ports.Drive.Content(ctx, input.ID)
	if err != nil {
		return nil, ContentOutput{}, err
	}
	out := ContentOutput{ID: input.ID, Bytes: len(data)}
	if utf8.Valid(data) {
		out.Content = string(data)
	} else {
		out.Binary = true
	}
	return nil, out, nil
}

func (s *Server) handleCalendarList(
	ctx context.Context, _ *mcp.CallToolRequest, input CalendarListInput,
) (*mcp.CallToolResult, EventsOutput, error) {
	from, to, err := parseWindow(input.TimeMin, input.TimeMax)
	if err != nil {
		return nil, EventsOutput{}, err
	}
	if err := s.ready(ctx); err != nil {
		return nil, EventsOutput{}, err
	}
	filter := domain.EventFilter{CalendarID: input.CalendarID, TimeMin: from, TimeMax: to, Query: input.Query}
	page, err := s.ports.Calendar.List(ctx, filter, input.PageSize, input.Cursor)
	if err != nil {
		return nil, EventsOutput{}, err
	}
	return nil, eventsOutput(page.Items, page.NextCursor), nil
}

func (s *Server) handleCalendarGet(
	ctx context.Context, _ *mcp.CallToolRequest, input CalendarGetInput,
) (*mcp.CallToolResult, EventOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, EventOutput{}, err
	}
	event, err := s.ports.Calendar.Get(ctx, input.CalendarID, input.EventID, false)
	if err != nil {
		return nil, EventOutput{}, err
	}
	return nil, toEventOutput(event), nil
}

func (s *Server) handleCalendarSearch(
	ctx context.Context, _ *mcp.CallToolRequest, input SearchInput,
) (*mcp.CallToolResult, EventsOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, EventsOutput{}, err
	}
	events, err := s.ports.Calendar.Search(ctx, input.Text)
	if err != nil {
		return nil, EventsOutput{}, err
	}
	return nil, eventsOutput(events, ""), nil
}

func (s *Server) handleCalendarHistory(
	ctx context.Context, _ *mcp.CallToolRequest, input CalendarHistoryInput,
) (*mcp.CallToolResult, EventsOutput, error) {
	from, to, err := parseWindow(input.TimeMin, input.TimeMax)
	if err != nil {
		return nil, EventsOutput{}, err
	}
	if err := s.ready(ctx); err != nil {
		return nil, EventsOutput{}, err
	}
	events, err := s.ports.Calendar.FullHistory(ctx, input.CalendarID, from, to)
	if err != nil {
		return nil, EventsOutput{}, err
	}
	return nil, eventsOutput(events, ""), nil
}

func (s *Server) handleCalendarCalendars(
	ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, CalendarsOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, CalendarsOutput{}, err
	}
	calendars, err := s.ports.Calendar.Calendars(ctx)
	if err != nil {
		return nil, CalendarsOutput{}, err
	}
	return nil, CalendarsOutput{Calendars: mapAll(calendars, func(c domain.Calendar) CalendarOutput {
		return CalendarOutput{ID: c.ID, Summary: c.Summary, Primary: c.Primary}
	})}, nil
}

func (s *Server) handleMailList(
	ctx context.Context, _ *mcp.CallToolRequest, input MailListInput,
) (*mcp.CallToolResult, MessagesOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, MessagesOutput{}, err
	}
	filter := domain.MailFilter{Query: input.Query, LabelIDs: input.LabelIDs, IncludeBody: input.IncludeBody}
	page, err := s.ports.Mail.List(ctx, filter, input.PageSize, input.Cursor)
	if err != nil {
		return nil, MessagesOutput{}, err
	}
	return nil, messagesOutput(page.Items, page.NextCursor), nil
}

func (s *Server) handleMailGet(
	ctx context.Context, _ *mcp.CallToolRequest, input MailGetInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, MessageOutput{}, err
	}
	msg, err := s.ports.Mail.Get(ctx, input.ID, domain.MailGetOptions{IncludeBody: input.IncludeBody})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, toMessageOutput(msg), nil
}

func (s *Server) handleMailSearch(
	ctx context.Context, _ *mcp.CallToolRequest, input SearchInput,
) (*mcp.CallToolResult, MessagesOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, MessagesOutput{}, err
	}
	messages, err := s.ports.Mail.Search(ctx, input.Text)
	if err != nil {
		return nil, MessagesOutput{}, err
	}
	return nil, messagesOutput(messages, ""), nil
}

func (s *Server) handleMailLabels(
	ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, LabelsOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, LabelsOutput{}, err
	}
	labels, err := s.ports.Mail.Labels(ctx)
	if err != nil {
		return nil, LabelsOutput{}, err
	}
	return nil, LabelsOutput{Labels: mapAll(labels, func(l domain.MailLabel) LabelOutput {
		return LabelOutput{ID: l.ID, Name: l.Name, Type: l.Type, Total: l.MessagesTotal, Unread: l.MessagesUnread}
	})}, nil
}

func (s *Server) handleContactsList(
	ctx context.Context, _ *mcp.CallToolRequest, input ContactsListInput,
) (*mcp.CallToolResult, ContactsOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, ContactsOutput{}, err
	}
	page, err := s.ports.Contacts.List(ctx, input.PageSize, input.Cursor)
	if err != nil {
		return nil, ContactsOutput{}, err
	}
	return nil, contactsOutput(page.Items, page.NextCursor), nil
}

func (s *Server) handleContactsGet(
	ctx context.Context, _ *mcp.CallToolRequest, input ContactGetInput,
) (*mcp.CallToolResult, ContactOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, ContactOutput{}, err
	}
	contact, err := s.ports.Contacts.Get(ctx, input.ResourceName)
	if err != nil {
		return nil, ContactOutput{}, err
	}
	return nil, toContactOutput(contact), nil
}

func (s *Server) handleContactsSearch(
	ctx context.Context, _ *mcp.CallToolRequest, input SearchInput,
) (*mcp.CallToolResult, ContactsOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, ContactsOutput{}, err
	}
	contacts, err := s.ports.Contacts.Search(ctx, input.Text)
	if err != nil {
		return nil, ContactsOutput{}, err
	}
	return nil, contactsOutput(contacts, ""), nil
}

func (s *Server) handleProfile(
	ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, ProfileOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, ProfileOutput{}, err
	}
	profile, err := s.ports.Contacts.Profile(ctx)
	if err != nil {
		return nil, ProfileOutput{}, err
	}
	return nil, ProfileOutput{DisplayName: profile.DisplayName, Email: profile.Email, PhotoURL: profile.PhotoURL}, nil
}

func (s *Server) handleTaskLists(
	ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, TaskListsOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, TaskListsOutput{}, err
	}
	lists, err := s.ports.Tasks.TaskLists(ctx)
	if err != nil {
		return nil, TaskListsOutput{}, err
	}
	return nil, TaskListsOutput{TaskLists: mapAll(lists, func(l domain.TaskList) TaskListOutput {
		return TaskListOutput{ID: l.ID, Title: l.Title}
	})}, nil
}

func (s *Server) handleTasksList(
	ctx context.Context, _ *mcp.CallToolRequest, input TasksListInput,
) (*mcp.CallToolResult, TasksOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, TasksOutput{}, err
	}
	filter := domain.TaskFilter{TaskListID: input.TaskListID, ShowCompleted: input.ShowCompleted}
	page, err := s.ports.Tasks.List(ctx, filter, input.PageSize, input.Cursor)
	if err != nil {
		return nil, TasksOutput{}, err
	}
	return nil, tasksOutput(page.Items, page.NextCursor), nil
}

func (s *Server) handleTasksGet(
	ctx context.Context, _ *mcp.CallToolRequest, input TaskGetInput,
) (*mcp.CallToolResult, TaskOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, TaskOutput{}, err
	}
	task, err := s.ports.Tasks.Get(ctx, input.TaskListID, input.TaskID)
	if err != nil {
		return nil, TaskOutput{}, err
	}
	return nil, toTaskOutput(task), nil
}

func (s *Server) handleTasksSearch(
	ctx context.Context, _ *mcp.CallToolRequest, input TaskSearchInput,
) (*mcp.CallToolResult, TasksOutput, error) {
	if err := s.ready(ctx); err != nil {
		return nil, TasksOutput{}, err
	}
	filter := domain.TaskFilter{TaskListID: input.TaskListID, ShowCompleted: input.ShowCompleted}
	tasks, err := s.ports.Tasks.Search(ctx, filter, input.Text)
	if err != nil {
		return nil, TasksOutput{}, err
	}
	return nil, tasksOutput(tasks, ""), nil
}

func filesOutput(files []domain.DriveFile, cursor string) FilesOutput {
	return FilesOutput{Files: mapAll(files, toFileOutput), Count: len(files), NextCursor: cursor}
}

func eventsOutput(events []domain.CalendarEvent, cursor string) EventsOutput {
	return EventsOutput{Events: mapAll(events, toEventOutput), Count: len(events), NextCursor: cursor}
}

func messagesOutput(messages []domain.MailMessage, cursor string) MessagesOutput {
	return MessagesOutput{Messages: mapAll(messages, toMessageOutput), Count: len(messages), NextCursor: cursor}
}

func contactsOutput(contacts []domain.Contact, cursor string) ContactsOutput {
	return ContactsOutput{Contacts: mapAll(contacts, toContactOutput), Count: len(contacts), NextCursor: cursor}
}

func tasksOutput(tasks []domain.Task, cursor string) TasksOutput {
	return TasksOutput{Tasks: mapAll(tasks, toTaskOutput), Count: len(tasks), NextCursor: cursor}
}

// parseWindow parses optional RFC 3339 bounds.
func parseWindow(from, to string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = time.Parse(time.RFC3339, from); err != nil {
			return start, end, fmt.Errorf("%w: time_min: %v", domain.ErrInvalidInput, err)
		}
	}
	if to != "" {
		if end, err = time.Parse(time.RFC3339, to); err != nil {
			return start, end, fmt.Errorf("%w: time_max: %v", domain.ErrInvalidInput, err)
		}
	}
	return start, end, nil
}
