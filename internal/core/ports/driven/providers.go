package driven

import (
	"context"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// Provider ports. Each implementation passes every network call through
// the shared throttle gate and returns errors already normalised to the
// domain error kinds. Implementations hold no cache.

// DriveProvider reads the document-storage API.
type DriveProvider interface {
	// ListFiles fetches one page of files.
	ListFiles(ctx context.Context, filter domain.DriveFilter, pageSize int, cursor string) (domain.Page[domain.DriveFile], error)

	// GetFile fetches one file's metadata.
	GetFile(ctx context.Context, id string) (domain.DriveFile, error)

	// SearchFiles finds files whose name contains text.
	SearchFiles(ctx context.Context, text string) ([]domain.DriveFile, error)

	// BatchGetFiles resolves ids in one multiplexed request. Ids that fail
	// individually are absent from the result; the error is reserved for
	// failure of the request as a whole.
	BatchGetFiles(ctx context.Context, ids []string) (map[string]domain.DriveFile, error)

	// FileContent downloads a file's bytes.
	FileContent(ctx context.Context, id string) ([]byte, error)
}

// CalendarProvider reads the calendar API.
type CalendarProvider interface {
	// ListEvents fetches one page of events.
	ListEvents(ctx context.Context, filter domain.EventFilter, pageSize int, cursor string) (domain.Page[domain.CalendarEvent], error)

	// GetEvent fetches one event.
	GetEvent(ctx context.Context, calendarID, eventID string) (domain.CalendarEvent, error)

	// ListCalendars fetches one page of the user's calendar list.
	ListCalendars(ctx context.Context, pageSize int, cursor string) (domain.Page[domain.Calendar], error)
}

// MailProvider reads the mail API.
type MailProvider interface {
	// ListMessages fetches one page of message ids and snippets.
	ListMessages(ctx context.Context, filter domain.MailFilter, pageSize int, cursor string) (domain.Page[domain.MailSummary], error)

	// GetMessage fetches one message, with its decoded body when includeBody is set.
	GetMessage(ctx context.Context, id string, includeBody bool) (domain.MailMessage, error)

	// ListLabels returns the mailbox labels.
	ListLabels(ctx context.Context) ([]domain.MailLabel, error)
}

// ContactsProvider reads the contacts API.
type ContactsProvider interface {
	// ListContacts fetches one page of connections.
	ListContacts(ctx context.Context, pageSize int, cursor string) (domain.Page[domain.Contact], error)

	// GetContact fetches one person by resource name.
	GetContact(ctx context.Context, resourceName string) (domain.Contact, error)

	// SearchContacts runs a provider-side prefix search.
	SearchContacts(ctx context.Context, text string) ([]domain.Contact, error)

	// GetProfile returns the signed-in user's profile.
	GetProfile(ctx context.Context) (domain.UserProfile, error)
}

// TasksProvider reads the task-list API.
type TasksProvider interface {
	// ListTaskLists fetches one page of task lists.
	ListTaskLists(ctx context.Context, pageSize int, cursor string) (domain.Page[domain.TaskList], error)

	// ListTasks fetches one page of tasks from a list.
	ListTasks(ctx context.Context, filter domain.TaskFilter, pageSize int, cursor string) (domain.Page[domain.Task], error)

	// GetTask fetches one task.
	GetTask(ctx context.Context, taskListID, taskID string) (domain.Task, error)
}

// Initializer prepares provider clients before the first resource call,
// e.g. by fetching API discovery documents.
type Initializer interface {
	Init(ctx context.Context) error
}

// Providers bundles one implementation of every provider port.
type Providers struct {
	Drive       DriveProvider
	Calendar    CalendarProvider
	Mail        MailProvider
	Contacts    ContactsProvider
	Tasks       TasksProvider
	Initializer Initializer
}
