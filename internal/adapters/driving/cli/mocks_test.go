package cli

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

type mockLifecycle struct {
	err error
}

func (m *mockLifecycle) Init(_ context.Context) error { return m.err }

func (m *mockLifecycle) Ready() error { return m.err }

type mockSession struct {
	mu   sync.Mutex
	cred domain.Credential
}

func (m *mockSession) Set(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = domain.Credential{Token: token, InstalledAt: time.Now()}
}

func (m *mockSession) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = domain.Credential{}
}

func (m *mockSession) IsActive() bool { return !m.Credential().IsZero() }

func (m *mockSession) Credential() domain.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred
}

type mockSettings struct {
	settings domain.Settings
	err      error
}

func (m *mockSettings) Get() (domain.Settings, error) { return m.settings, m.err }

func (m *mockSettings) Save(s domain.Settings) error {
	m.settings = s
	return m.err
}

func (m *mockSettings) SetClientID(clientID string) error {
	m.settings.ClientID = clientID
	return m.err
}

func (m *mockSettings) SetAPIKey(apiKey string) error {
	m.settings.APIKey = apiKey
	return m.err
}

type mockDrive struct {
	files   []domain.DriveFile
	content []byte
	cursor  string

	lastFilter domain.DriveFilter
	lastIDs    []string
	listedAll  bool
}

func (m *mockDrive) List(_ context.Context, f domain.DriveFilter, _ int, _ string) (domain.Page[domain.DriveFile], error) {
	m.lastFilter = f
	return domain.Page[domain.DriveFile]{Items: m.files, NextCursor: m.cursor}, nil
}

func (m *mockDrive) ListAll(_ context.Context, f domain.DriveFilter) ([]domain.DriveFile, error) {
	m.lastFilter, m.listedAll = f, true
	return m.files, nil
}

func (m *mockDrive) Get(_ context.Context, id string, _ bool) (domain.DriveFile, error) {
	for _, f := range m.files {
		if f.ID == id {
			return f, nil
		}
	}
	return domain.DriveFile{}, &domain.ProviderError{Op: "drive.files.get", StatusCode: 404, Message: "File not found"}
}

func (m *mockDrive) Search(_ context.Context, _ string) ([]domain.DriveFile, error) {
	return m.files, nil
}

func (m *mockDrive) BatchGet(_ context.Context, ids []string) ([]domain.DriveFile, error) {
	m.lastIDs = ids
	return m.files, nil
}

func (m *mockDrive) Content(_ context.Context, _ string) ([]byte, error) { return m.content, nil }

type mockCalendar struct {
	events    []domain.CalendarEvent
	calendars []domain.Calendar

	lastFilter domain.EventFilter
	lastFrom   time.Time
}

func (m *mockCalendar) List(
	_ context.Context, f domain.EventFilter, _ int, _ string,
) (domain.Page[domain.CalendarEvent], error) {
	m.lastFilter = f
	return domain.Page[domain.CalendarEvent]{Items: m.events}, nil
}

func (m *mockCalendar) ListAll(_ context.Context, f domain.EventFilter) ([]domain.CalendarEvent, error) {
	m.lastFilter = f
	return m.events, nil
}

func (m *mockCalendar) Get(_ context.Context, _, _ string, _ bool) (domain.CalendarEvent, error) {
	return m.events[0], nil
}

func (m *mockCalendar) Search(_ context.Context, _ string) ([]domain.CalendarEvent, error) {
	return m.events, nil
}

func (m *mockCalendar) FullHistory(_ context.Context, _ string, from, _ time.Time) ([]domain.CalendarEvent, error) {
	m.lastFrom = from
	return m.events, nil
}

func (m *mockCalendar) Calendars(_ context.Context) ([]domain.Calendar, error) {
	return m.calendars, nil
}

type mockMail struct {
	messages []domain.MailMessage
	labels   []domain.MailLabel
	lastOpts domain.MailGetOptions
}

func (m *mockMail) List(_ context.Context, _ domain.MailFilter, _ int, _ string) (domain.Page[domain.MailMessage], error) {
	return domain.Page[domain.MailMessage]{Items: m.messages}, nil
}

func (m *mockMail) ListAll(_ context.Context, _ domain.MailFilter) ([]domain.MailMessage, error) {
	return m.messages, nil
}

func (m *mockMail) Get(_ context.Context, _ string, opts domain.MailGetOptions) (domain.MailMessage, error) {
	m.lastOpts = opts
	return m.messages[0], nil
}

func (m *mockMail) Search(_ context.Context, _ string) ([]domain.MailMessage, error) {
	return m.messages, nil
}

func (m *mockMail) Labels(_ context.Context) ([]domain.MailLabel, error) { return m.labels, nil }

type mockContacts struct {
	contacts []domain.Contact
	profile  domain.UserProfile
}

func (m *mockContacts) List(_ context.Context, _ int, _ string) (domain.Page[domain.Contact], error) {
	return domain.Page[domain.Contact]{Items: m.contacts}, nil
}

func (m *mockContacts) ListAll(_ context.Context) ([]domain.Contact, error) { return m.contacts, nil }

func (m *mockContacts) Get(_ context.Context, _ string) (domain.Contact, error) {
	return m.contacts[0], nil
}

func (m *mockContacts) Search(_ context.Context, _ string) ([]domain.Contact, error) {
	return m.contacts, nil
}

func (m *mockContacts) Profile(_ context.Context) (domain.UserProfile, error) { return m.profile, nil }

type mockTasks struct {
	lists      []domain.TaskList
	tasks      []domain.Task
	lastFilter domain.TaskFilter
}

func (m *mockTasks) TaskLists(_ context.Context) ([]domain.TaskList, error) { return m.lists, nil }

func (m *mockTasks) List(_ context.Context, f domain.TaskFilter, _ int, _ string) (domain.Page[domain.Task], error) {
	m.lastFilter = f
	return domain.Page[domain.Task]{Items: m.tasks}, nil
}

func (m *mockTasks) ListAll(_ context.Context, f domain.TaskFilter) ([]domain.Task, error) {
	m.lastFilter = f
	return m.tasks, nil
}

func (m *mockTasks) Get(_ context.Context, _, _ string) (domain.Task, error) { return m.tasks[0], nil }

func (m *mockTasks) Search(_ context.Context, f domain.TaskFilter, _ string) ([]domain.Task, error) {
	m.lastFilter = f
	return m.tasks, nil
}

// testMocks holds the mocks installed by setupTestServices.
type testMocks struct {
	lifecycle *mockLifecycle
	session   *mockSession
	settings  *mockSettings
	drive     *mockDrive
	calendar  *mockCalendar
	mail      *mockMail
	contacts  *mockContacts
	tasks     *mockTasks
}

var mocks *testMocks

// setupTestServices installs mock services and returns a cleanup function.
func setupTestServices() func() {
	modified := time.Now().Add(-2 * time.Hour)
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mocks = &testMocks{
		lifecycle: &mockLifecycle{},
		session:   &mockSession{},
		settings: &mockSettings{settings: domain.Settings{
			ClientID:    "client-123.apps.googleusercontent.com",
			APIKey:      "AIzaSyExampleKey1234",
			Scopes:      domain.DefaultScopes(),
			MinInterval: domain.DefaultMinInterval,
			HTTPTimeout: domain.DefaultHTTPTimeout,
		}},
		drive: &mockDrive{
			files: []domain.DriveFile{
				{ID: "file-1", Name: "Quarterly Report.pdf", MimeType: "application/pdf", Size: 1536, ModifiedTime: modified},
				{ID: "folder-1", Name: "Projects", MimeType: domain.MimeTypeFolder},
			},
			content: []byte("file body"),
		},
		calendar: &mockCalendar{
			events: []domain.CalendarEvent{{
				ID:         "event-1",
				CalendarID: domain.PrimaryCalendar,
				Summary:    "Team Standup",
				Start:      domain.EventTime{DateTime: time.Now().Add(time.Hour)},
				End:        domain.EventTime{DateTime: time.Now().Add(90 * time.Minute)},
				Attendees:  []domain.Attendee{{Email: "ada@example.com", ResponseStatus: "accepted"}},
			}},
			calendars: []domain.Calendar{{ID: "primary", Summary: "Ada Lovelace", Primary: true}},
		},
		mail: &mockMail{
			messages: []domain.MailMessage{{
				ID:       "msg-1",
				From:     "Bob <bob@example.com>",
				Subject:  "Lunch?",
				Snippet:  "Are you free",
				Unread:   true,
				LabelIDs: []string{domain.LabelUnread, domain.LabelInbox},
			}},
			labels: []domain.MailLabel{{ID: "INBOX", Name: "INBOX", Type: "system", MessagesTotal: 1200, MessagesUnread: 3}},
		},
		contacts: &mockContacts{
			contacts: []domain.Contact{{
				ResourceName: "people/c1",
				DisplayName:  "Ada Lovelace",
				Emails:       []domain.ContactValue{{Value: "ada@example.com", Type: "work"}},
			}},
			profile: domain.UserProfile{DisplayName: "Ada Lovelace", Email: "ada@example.com"},
		},
		tasks: &mockTasks{
			lists: []domain.TaskList{{ID: "list-1", Title: "My Tasks"}},
			tasks: []domain.Task{{ID: "task-1", TaskListID: "list-1", Title: "Pay rent", Status: domain.TaskNeedsAction, Due: &due}},
		},
	}

	oldFactory := factory
	factory = nil
	SetServices(&Services{
		Lifecycle: mocks.lifecycle,
		Session:   mocks.session,
		Settings:  mocks.settings,
		Drive:     mocks.drive,
		Calendar:  mocks.calendar,
		Mail:      mocks.mail,
		Contacts:  mocks.contacts,
		Tasks:     mocks.tasks,
	})

	return func() {
		factory = oldFactory
		SetServices(&Services{})
		resetFlags()
		mocks = nil
	}
}

// resetFlags restores flag variables that earlier executions may have set.
func resetFlags() {
	outputJSON = false
	driveQuery, driveOrderBy, driveCursor, driveOutput = "", "", "", ""
	drivePageSize, driveAll, driveRefresh = 0, false, false
	calendarID, calendarFrom, calendarTo, calendarQuery, calendarCursor = domain.PrimaryCalendar, "", "", "", ""
	calendarCollapse, calendarPageSize, calendarAll, calendarRefresh = false, 0, false, false
	mailQuery, mailLabels, mailCursor = "", nil, ""
	mailBody, mailPageSize, mailAll, mailRefresh = false, 0, false, false
	contactsPageSize, contactsCursor, contactsAll = 0, "", false
	tasksListID, tasksShowCompleted, tasksPageSize, tasksCursor, tasksAll = domain.DefaultTaskList, false, 0, "", false
}
