package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driving"
	"github.com/custodia-labs/wsbridge/internal/logger"
)

// Ensure Workspace implements the interface.
var _ driving.Lifecycle = (*Workspace)(nil)

// Caches holds the per-kind record caches. Contacts and tasks have none.
type Caches struct {
	Files    driven.Cache[domain.DriveFile]
	Events   driven.Cache[domain.CalendarEvent]
	Messages driven.Cache[domain.MailMessage]
}

// Clearables returns the caches as a list the session can empty together.
func (c Caches) Clearables() []driven.Clearable {
	return []driven.Clearable{c.Files, c.Events, c.Messages}
}

// Workspace owns every piece of shared state (credential, caches, provider
// clients) and exposes one service per resource kind. It is constructed
// explicitly and must be initialised before any resource call.
type Workspace struct {
	Session  *Session
	Drive    *DriveService
	Calendar *CalendarService
	Mail     *MailService
	Contacts *ContactsService
	Tasks    *TasksService

	settings    domain.Settings
	initializer driven.Initializer

	initMu sync.Mutex
	ready  atomic.Bool
}

// NewWorkspace wires the resource services around the given providers.
// The session should have been created with caches.Clearables().
func NewWorkspace(
	settings domain.Settings,
	session *Session,
	providers driven.Providers,
	caches Caches,
	metrics driven.Metrics,
) *Workspace {
	w := &Workspace{
		Session:     session,
		settings:    settings,
		initializer: providers.Initializer,
	}

	opts := ServiceOptions{
		Metrics:               metrics,
		Ready:                 w.Ready,
		MailDetailConcurrency: settings.MailDetailConcurrency,
	}
	w.Drive = NewDriveService(providers.Drive, caches.Files, opts)
	w.Calendar = NewCalendarService(providers.Calendar, caches.Events, opts)
	w.Mail = NewMailService(providers.Mail, caches.Messages, opts)
	w.Contacts = NewContactsService(providers.Contacts, opts)
	w.Tasks = NewTasksService(providers.Tasks, opts)
	return w
}

// Init validates the settings and prepares the provider clients. It runs
// once; later calls return nil. A failed Init can be retried.
func (w *Workspace) Init(ctx context.Context) error {
	w.initMu.Lock()
	defer w.initMu.Unlock()

	if w.ready.Load() {
		return nil
	}

	logger.Section("Workspace Init")
	if err := w.settings.Validate(); err != nil {
		return err
	}

	if w.initializer != nil && !w.settings.SkipDiscovery {
		if err := w.initializer.Init(ctx); err != nil {
			return fmt.Errorf("initialise provider clients: %w", err)
		}
	} else {
		logger.Debug("discovery check skipped")
	}

	w.ready.Store(true)
	logger.Info("workspace ready (%d scopes)", len(w.settings.Scopes))
	return nil
}

// Ready returns domain.ErrNotInitialized until Init has succeeded.
func (w *Workspace) Ready() error {
	if !w.ready.Load() {
		return domain.ErrNotInitialized
	}
	return nil
}

// Settings returns the settings the workspace was built with.
func (w *Workspace) Settings() domain.Settings {
	return w.settings
}
