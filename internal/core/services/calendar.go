package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driving"
)

// Ensure CalendarService implements the interface.
var _ driving.CalendarService = (*CalendarService)(nil)

// CalendarService serves calendar events through the event cache.
// Events are cached under domain.EventKey.
type CalendarService struct {
	provider driven.CalendarProvider
	events   recordCache[domain.CalendarEvent]
	opts     ServiceOptions
}

// NewCalendarService creates a new calendar service.
func NewCalendarService(
	provider driven.CalendarProvider, cache driven.Cache[domain.CalendarEvent], opts ServiceOptions,
) *CalendarService {
	opts = opts.withDefaults()
	return &CalendarService{
		provider: provider,
		events:   recordCache[domain.CalendarEvent]{kind: domain.KindCalendarEvents, store: cache, metrics: opts.Metrics},
		opts:     opts,
	}
}

// List fetches one page of events and caches them. A zero window
// defaults to the next 30 days of the primary calendar.
func (s *CalendarService) List(
	ctx context.Context, filter domain.EventFilter, pageSize int, cursor string,
) (domain.Page[domain.CalendarEvent], error) {
	if err := s.opts.Ready(); err != nil {
		return domain.Page[domain.CalendarEvent]{}, err
	}

	filter = s.withDefaults(filter, domain.DefaultCalendarWindowDays)
	if filter.TimeMax.Before(filter.TimeMin) {
		return domain.Page[domain.CalendarEvent]{}, fmt.Errorf("%w: time window ends before it starts", domain.ErrInvalidInput)
	}

	gen := s.events.store.Generation()
	page, err := s.provider.ListEvents(ctx, filter, domain.PageSizeOr(pageSize, domain.DefaultEventPageSize), cursor)
	if err != nil {
		return domain.Page[domain.CalendarEvent]{}, err
	}
	s.events.putAll(gen, page.Items, eventKey)
	return page, nil
}

// ListAll follows cursors until every event in the window is listed.
func (s *CalendarService) ListAll(ctx context.Context, filter domain.EventFilter) ([]domain.CalendarEvent, error) {
	filter = s.withDefaults(filter, domain.DefaultCalendarWindowDays)
	return CollectPages(ctx, "calendar.events.list", func(ctx context.Context, cursor string) (domain.Page[domain.CalendarEvent], error) {
		return s.List(ctx, filter, domain.DefaultEventPageSize, cursor)
	}, eventKey)
}

// Get returns one event.
func (s *CalendarService) Get(
	ctx context.Context, calendarID, eventID string, forceRefresh bool,
) (domain.CalendarEvent, error) {
	if err := s.opts.Ready(); err != nil {
		return domain.CalendarEvent{}, err
	}
	if strings.TrimSpace(eventID) == "" {
		return domain.CalendarEvent{}, fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	if calendarID == "" {
		calendarID = domain.PrimaryCalendar
	}
	return s.events.readThrough(ctx, domain.EventKey(calendarID, eventID), forceRefresh,
		func(ctx context.Context) (domain.CalendarEvent, error) {
			return s.provider.GetEvent(ctx, calendarID, eventID)
		})
}

// Search matches text against primary-calendar events over the history window.
func (s *CalendarService) Search(ctx context.Context, text string) ([]domain.CalendarEvent, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: search text is required", domain.ErrInvalidInput)
	}
	filter := s.withDefaults(domain.EventFilter{Query: text}, domain.DefaultHistoryWindowDays)
	return s.ListAll(ctx, filter)
}

// FullHistory returns every event instance in [from, to). Recurring
// events are always expanded and the largest page size is used.
// A zero window defaults to the next 90 days.
func (s *CalendarService) FullHistory(
	ctx context.Context, calendarID string, from, to time.Time,
) ([]domain.CalendarEvent, error) {
	filter := s.withDefaults(domain.EventFilter{
		CalendarID: calendarID,
		TimeMin:    from,
		TimeMax:    to,
	}, domain.DefaultHistoryWindowDays)
	filter.CollapseRecurring = false

	return CollectPages(ctx, "calendar.events.list", func(ctx context.Context, cursor string) (domain.Page[domain.CalendarEvent], error) {
		return s.List(ctx, filter, domain.DefaultEventBulkPageSize, cursor)
	}, eventKey)
}

// Calendars returns the user's calendar list.
func (s *CalendarService) Calendars(ctx context.Context) ([]domain.Calendar, error) {
	if err := s.opts.Ready(); err != nil {
		return nil, err
	}
	return CollectPages(ctx, "calendar.calendarList.list", func(ctx context.Context, cursor string) (domain.Page[domain.Calendar], error) {
		return s.provider.ListCalendars(ctx, domain.DefaultCalendarPageSize, cursor)
	}, func(c domain.Calendar) string { return c.ID })
}

// withDefaults fills the calendar id and time window. Both ends are fixed
// once so every page of a walk sees the same window.
func (s *CalendarService) withDefaults(filter domain.EventFilter, windowDays int) domain.EventFilter {
	if filter.CalendarID == "" {
		filter.CalendarID = domain.PrimaryCalendar
	}
	if filter.TimeMin.IsZero() {
		filter.TimeMin = s.opts.Now()
	}
	if filter.TimeMax.IsZero() {
		filter.TimeMax = filter.TimeMin.AddDate(0, 0, windowDays)
	}
	if filter.OrderBy == "" && !filter.CollapseRecurring {
		filter.OrderBy = "startTime"
	}
	return filter
}

func eventKey(e domain.CalendarEvent) string { return domain.EventKey(e.CalendarID, e.ID) }
