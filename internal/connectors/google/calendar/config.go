package calendar

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// OrderByStartTime orders expanded instances by start. The API accepts it
// only together with singleEvents.
const OrderByStartTime = "startTime"

// applyFilter sets the listing parameters of filter on call.
func applyFilter(call *calendar.EventsListCall, filter domain.EventFilter) *calendar.EventsListCall {
	single := !filter.CollapseRecurring
	call = call.SingleEvents(single)
	if !filter.TimeMin.IsZero() {
		call = call.TimeMin(filter.TimeMin.Format(time.RFC3339))
	}
	if !filter.TimeMax.IsZero() {
		call = call.TimeMax(filter.TimeMax.Format(time.RFC3339))
	}
	if filter.Query != "" {
		call = call.Q(filter.Query)
	}
	switch {
	case filter.OrderBy != "":
		call = call.OrderBy(filter.OrderBy)
	case single:
		call = call.OrderBy(OrderByStartTime)
	}
	return call
}

// calendarOrPrimary returns id, or the primary calendar alias when empty.
func calendarOrPrimary(id string) string {
	if id == "" {
		return domain.PrimaryCalendar
	}
	return id
}
