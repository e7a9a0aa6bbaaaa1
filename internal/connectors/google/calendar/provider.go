// Package calendar adapts the Google Calendar API to the calendar port.
package calendar

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.CalendarProvider = (*Provider)(nil)

// Provider reads events through the Calendar API.
type Provider struct {
	client *google.Client
	svc    *calendar.Service
}

// New creates a Calendar provider on client.
func New(ctx context.Context, client *google.Client) (*Provider, error) {
	svc, err := google.NewCalendarService(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &Provider{client: client, svc: svc}, nil
}

// ListEvents fetches one page of events.
func (p *Provider) ListEvents(
	ctx context.Context, filter domain.EventFilter, pageSize int, cursor string,
) (domain.Page[domain.CalendarEvent], error) {
	const op = "calendar.events.list"
	calendarID := calendarOrPrimary(filter.CalendarID)

	resp, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*calendar.Events, error) {
		call := p.svc.Events.List(calendarID).
			MaxResults(int64(domain.PageSizeOr(pageSize, domain.DefaultEventPageSize))).
			Context(ctx)
		call = applyFilter(call, filter)
		if cursor != "" {
			call = call.PageToken(cursor)
		}
		return call.Do()
	})
	if err != nil {
		return domain.Page[domain.CalendarEvent]{}, err
	}

	events, err := toEvents(op, calendarID, resp.Items)
	if err != nil {
		return domain.Page[domain.CalendarEvent]{}, err
	}
	return domain.Page[domain.CalendarEvent]{Items: events, NextCursor: resp.NextPageToken}, nil
}

// GetEvent fetches one event.
func (p *Provider) GetEvent(ctx context.Context, calendarID, eventID string) (domain.CalendarEvent, error) {
	const op = "calendar.events.get"
	calendarID = calendarOrPrimary(calendarID)

	e, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*calendar.Event, error) {
		return p.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	})
	if err != nil {
		return domain.CalendarEvent{}, err
	}
	return toEvent(op, calendarID, e)
}

// ListCalendars fetches one page of the user's calendar list.
func (p *Provider) ListCalendars(ctx context.Context, pageSize int, cursor string) (domain.Page[domain.Calendar], error) {
	const op = "calendar.calendarList.list"

	resp, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*calendar.CalendarList, error) {
		call := p.svc.CalendarList.List().
			MaxResults(int64(domain.PageSizeOr(pageSize, domain.DefaultCalendarPageSize))).
			Context(ctx)
		if cursor != "" {
			call = call.PageToken(cursor)
		}
		return call.Do()
	})
	if err != nil {
		return domain.Page[domain.Calendar]{}, err
	}

	cals := make([]domain.Calendar, 0, len(resp.Items))
	for _, e := range resp.Items {
		if e == nil || e.Id == "" {
			return domain.Page[domain.Calendar]{}, google.MalformedResponse(op, "calendar without id")
		}
		cals = append(cals, toCalendar(e))
	}
	return domain.Page[domain.Calendar]{Items: cals, NextCursor: resp.NextPageToken}, nil
}
