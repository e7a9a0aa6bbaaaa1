package domain

import "time"

// PrimaryCalendar is the alias for the signed-in user's main calendar.
const PrimaryCalendar = "primary"

// CalendarEvent is a normalised calendar record.
type CalendarEvent struct {
	ID               string
	CalendarID       string
	Summary          string
	Description      string
	Location         string
	Start            EventTime
	End              EventTime
	Attendees        []Attendee
	Conference       *Conference
	Recurrence       []string
	RecurringEventID string
	Reminders        *Reminders
	Status           string
	Transparency     string
	Visibility       string
	HTMLLink         string
	Organizer        string
	Created          time.Time
	Updated          time.Time
}

// EventTime is either a timed instant or an all-day date.
type EventTime struct {
	DateTime time.Time
	// Date is set (yyyy-mm-dd) for all-day events.
	Date string
}

// AllDay returns true if the time is a date without a time of day.
func (t EventTime) AllDay() bool {
	return t.Date != "" && t.DateTime.IsZero()
}

// String renders the time in its provider form.
func (t EventTime) String() string {
	if t.AllDay() {
		return t.Date
	}
	if t.DateTime.IsZero() {
		return ""
	}
	return t.DateTime.Format(time.RFC3339)
}

// Attendee is one invited participant.
type Attendee struct {
	Email          string
	DisplayName    string
	ResponseStatus string
}

// Conference describes attached conferencing.
type Conference struct {
	Name        string
	IconURI     string
	Type        string
	EntryPoints []EntryPoint
}

// EntryPoint is one way to join a conference.
type EntryPoint struct {
	URI   string
	Type  string
	Label string
}

// Reminders holds the reminder configuration of an event.
type Reminders struct {
	UseDefault bool
	Overrides  []ReminderOverride
}

// ReminderOverride is a non-default reminder.
type ReminderOverride struct {
	Method  string
	Minutes int64
}

// Calendar is an entry from the user's calendar list.
type Calendar struct {
	ID              string
	Summary         string
	Description     string
	BackgroundColor string
	ForegroundColor string
	Primary         bool
}

// EventFilter narrows an event listing.
type EventFilter struct {
	// CalendarID defaults to "primary".
	CalendarID string
	// TimeMin defaults to now.
	TimeMin time.Time
	// TimeMax defaults to TimeMin plus 30 days.
	TimeMax time.Time
	// Query is free text matched by the provider.
	Query string
	// CollapseRecurring returns recurring series instead of expanding
	// them into single instances. Instances are the default.
	CollapseRecurring bool
	// OrderBy defaults to "startTime" for expanded listings.
	OrderBy string
}

// EventKey is the cache key of an event. Event ids are only unique
// within their calendar.
func EventKey(calendarID, eventID string) string {
	if calendarID == "" {
		calendarID = PrimaryCalendar
	}
	return calendarID + "/" + eventID
}
