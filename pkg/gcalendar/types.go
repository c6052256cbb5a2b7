package gcalendar

import "time"

// EventRequest describes a recurring event that mirrors one habit.
type EventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	Duration    time.Duration // defaults to 30 minutes
	Timezone    string        // e.g. "America/New_York"
	// Recurrence holds RFC 5545 lines such as "RRULE:FREQ=DAILY".
	Recurrence []string
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
	Recurrence  []string
}
