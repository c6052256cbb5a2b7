package gcalendar

import (
	"context"
	"testing"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/pkg/gcalendar"
)

type fakeClient struct {
	created []gcalendar.EventRequest
	updated map[string]gcalendar.EventRequest
	deleted []string
}

func (f *fakeClient) CreateEvent(_ context.Context, req gcalendar.EventRequest) (*gcalendar.Event, error) {
	f.created = append(f.created, req)
	return &gcalendar.Event{ID: "new-event"}, nil
}

func (f *fakeClient) UpdateEvent(_ context.Context, id string, req gcalendar.EventRequest) (*gcalendar.Event, error) {
	if f.updated == nil {
		f.updated = make(map[string]gcalendar.EventRequest)
	}
	f.updated[id] = req
	return &gcalendar.Event{ID: id}, nil
}

func (f *fakeClient) DeleteEvent(_ context.Context, _, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestRule(t *testing.T) {
	tests := []struct {
		name string
		task model.Task
		want string
	}{
		{"daily", model.Task{RecurrencePattern: model.RecurrenceDaily, RecurrenceInterval: 1}, "RRULE:FREQ=DAILY"},
		{"interval", model.Task{RecurrencePattern: model.RecurrenceDaily, RecurrenceInterval: 3}, "RRULE:FREQ=DAILY;INTERVAL=3"},
		{"weekly", model.Task{RecurrencePattern: model.RecurrenceWeekly,
			DaysOfWeek: model.NewWeekdaySet(model.Monday, model.Wednesday, model.Sunday)}, "RRULE:FREQ=WEEKLY;BYDAY=MO,WE,SU"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Rule(tc.task); got != tc.want {
				t.Errorf("Rule = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}
	m := New(client, "habits")
	// Wednesday 2026-03-04
	m.now = func() time.Time { return time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) }

	task := model.Task{
		ID:                1,
		Name:              "work out",
		ReminderTime:      model.Clock(7, 0),
		Timezone:          "America/New_York",
		RecurrencePattern: model.RecurrenceWeekly,
		DaysOfWeek:        model.NewWeekdaySet(model.Friday),
	}

	id, err := m.Upsert(ctx, task)
	if err != nil || id != "new-event" {
		t.Fatalf("Upsert = %q, %v", id, err)
	}
	req := client.created[0]
	if req.CalendarID != "habits" || req.Timezone != "America/New_York" {
		t.Errorf("request = %+v", req)
	}
	if got := req.StartTime.Format("2006-01-02 15:04 MST"); got != "2026-03-06 07:00 EST" {
		t.Errorf("first occurrence = %s", got)
	}

	task.CalendarEventID = id
	if _, err := m.Upsert(ctx, task); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if _, ok := client.updated["new-event"]; !ok || len(client.created) != 1 {
		t.Errorf("second upsert did not update: %+v", client)
	}

	if err := m.Remove(ctx, task); err != nil || len(client.deleted) != 1 {
		t.Errorf("Remove = %v, deleted %v", err, client.deleted)
	}
	if err := m.Remove(ctx, model.Task{}); err != nil || len(client.deleted) != 1 {
		t.Error("Remove without an event called the API")
	}
}

func TestUpsertRejectsBadZone(t *testing.T) {
	m := New(&fakeClient{}, "")
	if _, err := m.Upsert(context.Background(), model.Task{Timezone: "Mars/Olympus"}); err == nil {
		t.Error("expected timezone error")
	}
}
