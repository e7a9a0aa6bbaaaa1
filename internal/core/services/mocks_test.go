package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// mockDriveProvider serves files from a map and counts calls.
type mockDriveProvider struct {
	mu         sync.Mutex
	files      map[string]domain.DriveFile
	pages      map[string]domain.Page[domain.DriveFile]
	getCalls   int
	listCalls  int
	batchCalls [][]string
	batchFail  map[string]bool
	err        error
	content    []byte
}

func newMockDriveProvider(files ...domain.DriveFile) *mockDriveProvider {
	m := &mockDriveProvider{
		files:     make(map[string]domain.DriveFile),
		pages:     make(map[string]domain.Page[domain.DriveFile]),
		batchFail: make(map[string]bool),
	}
	for _, f := range files {
		m.files[f.ID] = f
	}
	return m
}

func (m *mockDriveProvider) ListFiles(_ context.Context, _ domain.DriveFilter, _ int, cursor string) (domain.Page[domain.DriveFile], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.err != nil {
		return domain.Page[domain.DriveFile]{}, m.err
	}
	return m.pages[cursor], nil
}

func (m *mockDriveProvider) GetFile(_ context.Context, id string) (domain.DriveFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.err != nil {
		return domain.DriveFile{}, m.err
	}
	f, ok := m.files[id]
	if !ok {
		return domain.DriveFile{}, &domain.ProviderError{Op: "drive.files.get", StatusCode: 404, Message: "File not found"}
	}
	return f, nil
}

func (m *mockDriveProvider) SearchFiles(_ context.Context, text string) ([]domain.DriveFile, error) {
	var out []domain.DriveFile
	for _, f := range m.files {
		if f.Name == text {
			out = append(out, f)
		}
	}
	return out, m.err
}

func (m *mockDriveProvider) BatchGetFiles(_ context.Context, ids []string) (map[string]domain.DriveFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchCalls = append(m.batchCalls, append([]string(nil), ids...))
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]domain.DriveFile)
	for _, id := range ids {
		if m.batchFail[id] {
			continue
		}
		if f, ok := m.files[id]; ok {
			out[id] = f
		}
	}
	return out, nil
}

func (m *mockDriveProvider) FileContent(_ context.Context, _ string) ([]byte, error) {
	return m.content, m.err
}

// mockCalendarProvider records the filters it was asked for.
type mockCalendarProvider struct {
	mu        sync.Mutex
	events    map[string]domain.CalendarEvent
	pages     map[string]domain.Page[domain.CalendarEvent]
	filters   []domain.EventFilter
	pageSizes []int
	getCalls  int

	calendarPages   map[string]domain.Page[domain.Calendar]
	calendarCursors []string
}

func newMockCalendarProvider() *mockCalendarProvider {
	return &mockCalendarProvider{
		events: make(map[string]domain.CalendarEvent),
		pages:  make(map[string]domain.Page[domain.CalendarEvent]),
	}
}

func (m *mockCalendarProvider) ListEvents(
	_ context.Context, filter domain.EventFilter, pageSize int, cursor string,
) (domain.Page[domain.CalendarEvent], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters = append(m.filters, filter)
	m.pageSizes = append(m.pageSizes, pageSize)
	return m.pages[cursor], nil
}

func (m *mockCalendarProvider) GetEvent(_ context.Context, calendarID, eventID string) (domain.CalendarEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	ev, ok := m.events[domain.EventKey(calendarID, eventID)]
	if !ok {
		return domain.CalendarEvent{}, &domain.ProviderError{Op: "calendar.events.get", StatusCode: 404, Message: "Not Found"}
	}
	return ev, nil
}

func (m *mockCalendarProvider) ListCalendars(_ context.Context, _ int, cursor string) (domain.Page[domain.Calendar], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calendarCursors = append(m.calendarCursors, cursor)
	return m.calendarPages[cursor], nil
}

// mockMailProvider serves message pages and details.
type mockMailProvider struct {
	mu        sync.Mutex
	pages     map[string]domain.Page[domain.MailSummary]
	messages  map[string]domain.MailMessage
	filters   []domain.MailFilter
	listCalls int
	getCalls  map[string]int
	bodyCalls int
	labels    []domain.MailLabel
	failID    string
}

func newMockMailProvider() *mockMailProvider {
	return &mockMailProvider{
		pages:    make(map[string]domain.Page[domain.MailSummary]),
		messages: make(map[string]domain.MailMessage),
		getCalls: make(map[string]int),
	}
}

func (m *mockMailProvider) ListMessages(
	_ context.Context, filter domain.MailFilter, _ int, cursor string,
) (domain.Page[domain.MailSummary], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.filters = append(m.filters, filter)
	return m.pages[cursor], nil
}

func (m *mockMailProvider) GetMessage(_ context.Context, id string, includeBody bool) (domain.MailMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls[id]++
	if id == m.failID {
		return domain.MailMessage{}, &domain.ProviderError{Op: "gmail.messages.get", StatusCode: 500, Message: "Backend Error"}
	}
	msg := m.messages[id]
	msg.ID = id
	if includeBody {
		m.bodyCalls++
		msg.HasBody = true
		msg.Body = "body of " + id
	}
	return msg, nil
}

func (m *mockMailProvider) ListLabels(_ context.Context) ([]domain.MailLabel, error) {
	return m.labels, nil
}

func (m *mockMailProvider) totalGets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.getCalls {
		n += c
	}
	return n
}

// mockContactsProvider serves contacts pages.
type mockContactsProvider struct {
	pages      map[string]domain.Page[domain.Contact]
	contacts   map[string]domain.Contact
	searchText string
	profile    domain.UserProfile
}

func (m *mockContactsProvider) ListContacts(_ context.Context, _ int, cursor string) (domain.Page[domain.Contact], error) {
	return m.pages[cursor], nil
}

func (m *mockContactsProvider) GetContact(_ context.Context, resourceName string) (domain.Contact, error) {
	c, ok := m.contacts[resourceName]
	if !ok {
		return domain.Contact{}, &domain.ProviderError{Op: "people.get", StatusCode: 404, Message: "Requested entity was not found."}
	}
	return c, nil
}

func (m *mockContactsProvider) SearchContacts(_ context.Context, text string) ([]domain.Contact, error) {
	m.searchText = text
	return []domain.Contact{{ResourceName: "people/c1", DisplayName: text}}, nil
}

func (m *mockContactsProvider) GetProfile(_ context.Context) (domain.UserProfile, error) {
	return m.profile, nil
}

// mockTasksProvider serves task pages keyed by cursor.
type mockTasksProvider struct {
	lists   []domain.TaskList
	pages   map[string]domain.Page[domain.Task]
	filters []domain.TaskFilter
	gets    []string
}

func (m *mockTasksProvider) ListTaskLists(_ context.Context, _ int, _ string) (domain.Page[domain.TaskList], error) {
	return domain.Page[domain.TaskList]{Items: m.lists}, nil
}

func (m *mockTasksProvider) ListTasks(
	_ context.Context, filter domain.TaskFilter, _ int, cursor string,
) (domain.Page[domain.Task], error) {
	m.filters = append(m.filters, filter)
	return m.pages[cursor], nil
}

func (m *mockTasksProvider) GetTask(_ context.Context, taskListID, taskID string) (domain.Task, error) {
	m.gets = append(m.gets, taskListID+"/"+taskID)
	return domain.Task{ID: taskID, TaskListID: taskListID}, nil
}

// mockInitializer counts Init calls.
type mockInitializer struct {
	calls int
	err   error
}

func (m *mockInitializer) Init(_ context.Context) error {
	m.calls++
	return m.err
}

// countingMetrics records cache counters.
type countingMetrics struct {
	mu      sync.Mutex
	hits    int
	misses  int
	clears  int
	skipped int
}

func (c *countingMetrics) RecordCacheHit(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits++
}

func (c *countingMetrics) RecordCacheMiss(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
}

func (c *countingMetrics) RecordCacheClear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clears++
}

func (c *countingMetrics) RecordThrottleWait(time.Duration) {}

func (c *countingMetrics) RecordAPICall(string, error, time.Duration) {}

func (c *countingMetrics) RecordBatchSkipped(_ string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped += n
}
