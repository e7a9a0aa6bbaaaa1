package calendar

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// toEvent converts an API event to the domain record.
func toEvent(op, calendarID string, e *calendar.Event) (domain.CalendarEvent, error) {
	if e == nil || e.Id == "" {
		return domain.CalendarEvent{}, google.MalformedResponse(op, "event without id")
	}

	out := domain.CalendarEvent{
		ID:               e.Id,
		CalendarID:       calendarID,
		Summary:          e.Summary,
		Description:      e.Description,
		Location:         e.Location,
		Start:            toEventTime(e.Start),
		End:              toEventTime(e.End),
		Recurrence:       e.Recurrence,
		RecurringEventID: e.RecurringEventId,
		Status:           e.Status,
		Transparency:     e.Transparency,
		Visibility:       e.Visibility,
		HTMLLink:         e.HtmlLink,
		Created:          parseTime(e.Created),
		Updated:          parseTime(e.Updated),
		Conference:       toConference(e.ConferenceData),
		Reminders:        toReminders(e.Reminders),
	}
	if e.Organizer != nil { //nolint:misspell // Google API field name
		out.Organizer = e.Organizer.Email //nolint:misspell // Google API field name
	}
	for _, a := range e.Attendees {
		if a == nil {
			continue
		}
		out.Attendees = append(out.Attendees, domain.Attendee{
			Email:          a.Email,
			DisplayName:    a.DisplayName,
			ResponseStatus: a.ResponseStatus,
		})
	}
	return out, nil
}

func toEvents(op, calendarID string, items []*calendar.Event) ([]domain.CalendarEvent, error) {
	out := make([]domain.CalendarEvent, 0, len(items))
	for _, e := range items {
		ev, err := toEvent(op, calendarID, e)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// toEventTime keeps all-day dates as dates and parses timed instants.
func toEventTime(t *calendar.EventDateTime) domain.EventTime {
	if t == nil {
		return domain.EventTime{}
	}
	if t.DateTime != "" {
		return domain.EventTime{DateTime: parseTime(t.DateTime)}
	}
	return domain.EventTime{Date: t.Date}
}

func toConference(c *calendar.ConferenceData) *domain.Conference {
	if c == nil {
		return nil
	}
	out := &domain.Conference{}
	if s := c.ConferenceSolution; s != nil {
		out.Name = s.Name
		out.IconURI = s.IconUri
		if s.Key != nil {
			out.Type = s.Key.Type
		}
	}
	for _, ep := range c.EntryPoints {
		if ep == nil {
			continue
		}
		out.EntryPoints = append(out.EntryPoints, domain.EntryPoint{
			URI:   ep.Uri,
			Type:  ep.EntryPointType,
			Label: ep.Label,
		})
	}
	return out
}

func toReminders(r *calendar.EventReminders) *domain.Reminders {
	if r == nil {
		return nil
	}
	out := &domain.Reminders{UseDefault: r.UseDefault}
	for _, o := range r.Overrides {
		if o == nil {
			continue
		}
		out.Overrides = append(out.Overrides, domain.ReminderOverride{Method: o.Method, Minutes: o.Minutes})
	}
	return out
}

func toCalendar(e *calendar.CalendarListEntry) domain.Calendar {
	return domain.Calendar{
		ID:              e.Id,
		Summary:         e.Summary,
		Description:     e.Description,
		BackgroundColor: e.BackgroundColor,
		ForegroundColor: e.ForegroundColor,
		Primary:         e.Primary,
	}
}

// parseTime parses an RFC 3339 timestamp, returning zero on failure.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
