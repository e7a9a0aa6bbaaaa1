package calendar

import (
	"encoding/base64"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// ResolveWebURL returns the browser URL of an event.
// The provider's htmlLink wins; otherwise the eid is derived from the
// event and calendar ids the same way the web client encodes it.
func ResolveWebURL(e domain.CalendarEvent) string {
	if e.HTMLLink != "" {
		return e.HTMLLink
	}
	if e.ID == "" {
		return ""
	}
	raw := e.ID
	if e.CalendarID != "" && e.CalendarID != domain.PrimaryCalendar {
		raw += " " + e.CalendarID
	}
	return "https://www.google.com/calendar/event?eid=" + base64.RawURLEncoding.EncodeToString([]byte(raw))
}
