// Package gcalendar mirrors active tasks as recurring Google Calendar events.
package gcalendar

import (
	"context"
	"strings"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/pkg/datemath"
	"habit-streak-bot/pkg/gcalendar"
)

// Client is the part of pkg/gcalendar the mirror uses.
type Client interface {
	CreateEvent(ctx context.Context, req gcalendar.EventRequest) (*gcalendar.Event, error)
	UpdateEvent(ctx context.Context, eventID string, req gcalendar.EventRequest) (*gcalendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

type Mirror struct {
	client     Client
	calendarID string
	now        func() time.Time
}

func New(client Client, calendarID string) *Mirror {
	return &Mirror{client: client, calendarID: calendarID, now: time.Now}
}

// Upsert creates the event on first sight and updates it afterwards.
func (m *Mirror) Upsert(ctx context.Context, t model.Task) (string, error) {
	req, err := m.request(t)
	if err != nil {
		return "", err
	}
	if t.CalendarEventID != "" {
		ev, err := m.client.UpdateEvent(ctx, t.CalendarEventID, req)
		if err != nil {
			return "", err
		}
		return ev.ID, nil
	}
	ev, err := m.client.CreateEvent(ctx, req)
	if err != nil {
		return "", err
	}
	return ev.ID, nil
}

func (m *Mirror) Remove(ctx context.Context, t model.Task) error {
	if t.CalendarEventID == "" {
		return nil
	}
	return m.client.DeleteEvent(ctx, m.calendarID, t.CalendarEventID)
}

func (m *Mirror) request(t model.Task) (gcalendar.EventRequest, error) {
	loc, err := datemath.LoadLocation(t.Timezone)
	if err != nil {
		return gcalendar.EventRequest{}, err
	}
	return gcalendar.EventRequest{
		CalendarID:  m.calendarID,
		Summary:     "🎯 " + t.Name,
		Description: t.Description,
		StartTime:   firstOccurrence(t, m.now().In(loc), loc),
		Timezone:    loc.String(),
		Recurrence:  []string{Rule(t)},
	}, nil
}

// Rule renders the task's cadence as an RRULE.
func Rule(t model.Task) string {
	if t.RecurrencePattern == model.RecurrenceWeekly && !t.DaysOfWeek.IsEmpty() {
		days := t.DaysOfWeek.Days()
		codes := make([]string, len(days))
		for i, d := range days {
			codes[i] = strings.ToUpper(d.String()[:2])
		}
		return gcalendar.WeeklyRule(codes)
	}
	return gcalendar.DailyRule(t.RecurrenceInterval)
}

// firstOccurrence is the first due day from today (or the anchor) at the reminder time.
func firstOccurrence(t model.Task, now time.Time, loc *time.Location) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if t.IsInterval() && !t.AnchorDate.IsZero() {
		day = time.Date(t.AnchorDate.Year(), t.AnchorDate.Month(), t.AnchorDate.Day(), 0, 0, 0, 0, loc)
	}
	for i := 0; i < 7 && !t.OccursOn(day); i++ {
		day = day.AddDate(0, 0, 1)
	}
	return t.ReminderTime.On(day, loc)
}
