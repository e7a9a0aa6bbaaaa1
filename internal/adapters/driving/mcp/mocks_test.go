package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// mockLifecycle is a mock implementation of driving.Lifecycle.
type mockLifecycle struct {
	initErr error
	inits   int
}

func (m *mockLifecycle) Init(_ context.Context) error {
	m.inits++
	return m.initErr
}

func (m *mockLifecycle) Ready() error {
	if m.inits == 0 || m.initErr != nil {
		return domain.ErrNotInitialized
	}
	return nil
}

// mockDriveService is a mock implementation of driving.DriveService.
type mockDriveService struct {
	files   []domain.DriveFile
	cursor  string
	content []byte
	err     error

	lastFilter domain.DriveFilter
	lastIDs    []string
}

func (m *mockDriveService) List(
	_ context.Context, filter domain.DriveFilter, _ int, _ string,
) (domain.Page[domain.DriveFile], error) {
	m.lastFilter = filter
	return domain.Page[domain.DriveFile]{Items: m.files, NextCursor: m.cursor}, m.err
}

func (m *mockDriveService) ListAll(_ context.Context, _ domain.DriveFilter) ([]domain.DriveFile, error) {
	return m.files, m.err
}

func (m *mockDriveService) Get(_ context.Context, id string, _ bool) (domain.DriveFile, error) {
	if m.err != nil {
		return domain.DriveFile{}, m.err
	}
	for _, f := range m.files {
		if f.ID == id {
			return f, nil
		}
	}
	return domain.DriveFile{}, domain.ErrNotFound
}

func (m *mockDriveService) Search(_ context.Context, _ string) ([]domain.DriveFile, error) {
	return m.files, m.err
}

func (m *mockDriveService) BatchGet(_ context.Context, ids []string) ([]domain.DriveFile, error) {
	m.lastIDs = ids
	return m.files, m.err
}

func (m *mockDriveService) Content(_ context.Context, _ string) ([]byte, error) {
	return m.content, m.err
}

// mockCalendarService is a mock implementation of driving.CalendarService.
type mockCalendarService struct {
	events    []domain.CalendarEvent
	calendars []domain.Calendar
	err       error

	lastFilter   domain.EventFilter
	lastFrom     time.Time
	lastTo       time.Time
	lastCalendar string
}

func (m *mockCalendarService) List(
	_ context.Context, filter domain.EventFilter, _ int, _ string,
) (domain.Page[domain.CalendarEvent], error) {
	m.lastFilter = filter
	return domain.Page[domain.CalendarEvent]{Items: m.events}, m.err
}

func (m *mockCalendarService) ListAll(_ context.Context, _ domain.EventFilter) ([]domain.CalendarEvent, error) {
	return m.events, m.err
}

func (m *mockCalendarService) Get(_ context.Context, calendarID, _ string, _ bool) (domain.CalendarEvent, error) {
	m.lastCalendar = calendarID
	if m.err != nil || len(m.events) == 0 {
		return domain.CalendarEvent{}, m.err
	}
	return m.events[0], nil
}

func (m *mockCalendarService) Search(_ context.Context, _ string) ([]domain.CalendarEvent, error) {
	return m.events, m.err
}

func (m *mockCalendarService) FullHistory(
	_ context.Context, calendarID string, from, to time.Time,
) ([]domain.CalendarEvent, error) {
	m.lastCalendar, m.lastFrom, m.lastTo = calendarID, from, to
	return m.events, m.err
}

func (m *mockCalendarService) Calendars(_ context.Context) ([]domain.Calendar, error) {
	return m.calendars, m.err
}

// mockMailService is a mock implementation of driving.MailService.
type mockMailService struct {
	messages []domain.MailMessage
	labels   []domain.MailLabel
	err      error

	lastOpts domain.MailGetOptions
}

func (m *mockMailService) List(
	_ context.Context, _ domain.MailFilter, _ int, _ string,
) (domain.Page[domain.MailMessage], error) {
	return domain.Page[domain.MailMessage]{Items: m.messages}, m.err
}

func (m *mockMailService) ListAll(_ context.Context, _ domain.MailFilter) ([]domain.MailMessage, error) {
	return m.messages, m.err
}

func (m *mockMailService) Get(_ context.Context, _ string, opts domain.MailGetOptions) (domain.MailMessage, error) {
	m.lastOpts = opts
	if m.err != nil || len(m.messages) == 0 {
		return domain.MailMessage{}, m.err
	}
	return m.messages[0], nil
}

func (m *mockMailService) Search(_ context.Context, _ string) ([]domain.MailMessage, error) {
	return m.messages, m.err
}

func (m *mockMailService) Labels(_ context.Context) ([]domain.MailLabel, error) {
	return m.labels, m.err
}

// mockContactsService is a mock implementation of driving.ContactsService.
type mockContactsService struct {
	contacts []domain.Contact
	profile  domain.UserProfile
	err      error
}

func (m *mockContactsService) List(_ context.Context, _ int, _ string) (domain.Page[domain.Contact], error) {
	return domain.Page[domain.Contact]{Items: m.contacts}, m.err
}

func (m *mockContactsService) ListAll(_ context.Context) ([]domain.Contact, error) {
	return m.contacts, m.err
}

func (m *mockContactsService) Get(_ context.Context, _ string) (domain.Contact, error) {
	if m.err != nil || len(m.contacts) == 0 {
		return domain.Contact{}, m.err
	}
	return m.contacts[0], nil
}

func (m *mockContactsService) Search(_ context.Context, _ string) ([]domain.Contact, error) {
	return m.contacts, m.err
}

func (m *mockContactsService) Profile(_ context.Context) (domain.UserProfile, error) {
	return m.profile, m.err
}

// mockTasksService is a mock implementation of driving.TasksService.
type mockTasksService struct {
	lists []domain.TaskList
	tasks []domain.Task
	err   error

	lastFilter domain.TaskFilter
	lastText   string
}

func (m *mockTasksService) TaskLists(_ context.Context) ([]domain.TaskList, error) {
	return m.lists, m.err
}

func (m *mockTasksService) List(
	_ context.Context, filter domain.TaskFilter, _ int, _ string,
) (domain.Page[domain.Task], error) {
	m.lastFilter = filter
	return domain.Page[domain.Task]{Items: m.tasks}, m.err
}

func (m *mockTasksService) ListAll(_ context.Context, _ domain.TaskFilter) ([]domain.Task, error) {
	return m.tasks, m.err
}

func (m *mockTasksService) Get(_ context.Context, _, _ string) (domain.Task, error) {
	if m.err != nil || len(m.tasks) == 0 {
		return domain.Task{}, m.err
	}
	return m.tasks[0], nil
}

func (m *mockTasksService) Search(_ context.Context, filter domain.TaskFilter, text string) ([]domain.Task, error) {
	m.lastFilter, m.lastText = filter, text
	return m.tasks, m.err
}
