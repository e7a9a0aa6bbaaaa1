package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// DriveService exposes the document-storage adapter.
type DriveService interface {
	// List fetches one page of files. Listed files are cached.
	List(ctx context.Context, filter domain.DriveFilter, pageSize int, cursor string) (domain.Page[domain.DriveFile], error)

	// ListAll follows cursors until the listing is exhausted.
	ListAll(ctx context.Context, filter domain.DriveFilter) ([]domain.DriveFile, error)

	// Get returns a file's metadata, from cache unless forceRefresh is set.
	Get(ctx context.Context, id string, forceRefresh bool) (domain.DriveFile, error)

	// Search finds files whose name contains text.
	Search(ctx context.Context, text string) ([]domain.DriveFile, error)

	// BatchGet resolves many ids with at most one multiplexed request.
	// Ids the provider fails individually are omitted.
	BatchGet(ctx context.Context, ids []string) ([]domain.DriveFile, error)

	// Content downloads a file's bytes.
	Content(ctx context.Context, id string) ([]byte, error)
}

// CalendarService exposes the calendar adapter.
type CalendarService interface {
	// List fetches one page of events. Listed events are cached.
	List(ctx context.Context, filter domain.EventFilter, pageSize int, cursor string) (domain.Page[domain.CalendarEvent], error)

	// ListAll follows cursors until the listing is exhausted.
	ListAll(ctx context.Context, filter domain.EventFilter) ([]domain.CalendarEvent, error)

	// Get returns one event, from cache unless forceRefresh is set.
	Get(ctx context.Context, calendarID, eventID string, forceRefresh bool) (domain.CalendarEvent, error)

	// Search matches text against events in the default window.
	Search(ctx context.Context, text string) ([]domain.CalendarEvent, error)

	// FullHistory returns every event instance between from and to,
	// with recurring events expanded.
	FullHistory(ctx context.Context, calendarID string, from, to time.Time) ([]domain.CalendarEvent, error)

	// Calendars returns the user's calendar list.
	Calendars(ctx context.Context) ([]domain.Calendar, error)
}

// MailService exposes the mail adapter.
type MailService interface {
	// List fetches one page of message ids and resolves each to a full
	// message through Get.
	List(ctx context.Context, filter domain.MailFilter, pageSize int, cursor string) (domain.Page[domain.MailMessage], error)

	// ListAll follows cursors until the listing is exhausted.
	ListAll(ctx context.Context, filter domain.MailFilter) ([]domain.MailMessage, error)

	// Get returns one message. The cache is bypassed when a body is requested.
	Get(ctx context.Context, id string, opts domain.MailGetOptions) (domain.MailMessage, error)

	// Search runs a provider query expression.
	Search(ctx context.Context, query string) ([]domain.MailMessage, error)

	// Labels returns the mailbox labels.
	Labels(ctx context.Context) ([]domain.MailLabel, error)
}

// ContactsService exposes the contacts adapter. Contacts are never cached.
type ContactsService interface {
	List(ctx context.Context, pageSize int, cursor string) (domain.Page[domain.Contact], error)
	ListAll(ctx context.Context) ([]domain.Contact, error)
	Get(ctx context.Context, resourceName string) (domain.Contact, error)
	Search(ctx context.Context, text string) ([]domain.Contact, error)

	// Profile returns the signed-in user's profile.
	Profile(ctx context.Context) (domain.UserProfile, error)
}

// TasksService exposes the task-list adapter. Tasks are never cached.
type TasksService interface {
	TaskLists(ctx context.Context) ([]domain.TaskList, error)
	List(ctx context.Context, filter domain.TaskFilter, pageSize int, cursor string) (domain.Page[domain.Task], error)
	ListAll(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	Get(ctx context.Context, taskListID, taskID string) (domain.Task, error)

	// Search matches text against titles and notes, case-insensitively.
	Search(ctx context.Context, filter domain.TaskFilter, text string) ([]domain.Task, error)
}

// SessionService manages the active credential.
type SessionService interface {
	// Set installs a credential. A different credential replacing an
	// active one invalidates every cache.
	Set(token string)

	// Clear removes the credential and empties every cache.
	Clear()

	// IsActive returns true if a credential is installed.
	IsActive() bool

	// Credential returns the installed credential, or a zero value.
	Credential() domain.Credential
}

// Lifecycle gates resource calls behind initialisation.
type Lifecycle interface {
	// Init validates configuration and prepares provider clients. It is
	// idempotent and may be retried after a failure.
	Init(ctx context.Context) error

	// Ready returns domain.ErrNotInitialized until Init has succeeded.
	Ready() error
}
