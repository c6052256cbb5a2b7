package task

import (
	"errors"
	"testing"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/schedule"
)

func TestMergePlan(t *testing.T) {
	// Wednesday
	today := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	at := model.Clock(7, 0)
	monday := model.Monday
	engine := schedule.New()

	tests := []struct {
		name     string
		tasks    []schedule.GeneratedTask
		pattern  model.RecurrencePattern
		interval int
		days     model.WeekdaySet
		anchor   string
	}{
		{
			name:     "weekly count unions the days",
			tasks:    engine.Generate(schedule.Pattern{Type: schedule.TypeWeeklyCount, WeeklyCount: 3, TimeOfDay: &at}, "work out", ""),
			pattern:  model.RecurrenceWeekly,
			interval: 1,
			days:     model.NewWeekdaySet(model.Monday, model.Wednesday, model.Friday),
		},
		{
			name:     "seven days become daily",
			tasks:    engine.Generate(schedule.Pattern{Type: schedule.TypeWeeklyCount, WeeklyCount: 7, TimeOfDay: &at}, "read", ""),
			pattern:  model.RecurrenceDaily,
			interval: 1,
		},
		{
			name:     "daily",
			tasks:    engine.Generate(schedule.Pattern{Type: schedule.TypeDaily, TimeOfDay: &at}, "read", ""),
			pattern:  model.RecurrenceDaily,
			interval: 1,
		},
		{
			name:     "interval anchors today",
			tasks:    []schedule.GeneratedTask{{DisplayName: "stretch", ReminderTime: at, IntervalDays: 3}},
			pattern:  model.RecurrenceDaily,
			interval: 3,
			anchor:   "2026-03-04",
		},
		{
			name:     "bi-weekly anchors on the next monday",
			tasks:    []schedule.GeneratedTask{{DisplayName: "clean", ReminderTime: at, IntervalDays: 14, AnchorWeekday: &monday}},
			pattern:  model.RecurrenceDaily,
			interval: 14,
			anchor:   "2026-03-09",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := MergePlan("", tc.tasks, today)
			if err != nil {
				t.Fatalf("MergePlan: %v", err)
			}
			if p.RecurrencePattern != tc.pattern || p.RecurrenceInterval != tc.interval || p.DaysOfWeek != tc.days {
				t.Errorf("plan = %+v", p)
			}
			if p.ReminderTime != at {
				t.Errorf("time = %s", p.ReminderTime)
			}
			gotAnchor := ""
			if !p.AnchorDate.IsZero() {
				gotAnchor = p.AnchorDate.Format("2006-01-02")
			}
			if gotAnchor != tc.anchor {
				t.Errorf("anchor = %q, want %q", gotAnchor, tc.anchor)
			}
			if p.Name == "" || p.Name != BaseName(p.Name) {
				t.Errorf("name = %q", p.Name)
			}
		})
	}
}

func TestMergePlanEmpty(t *testing.T) {
	if _, err := MergePlan("x", nil, time.Now()); !errors.Is(err, ErrEmptyPlan) {
		t.Errorf("err = %v, want ErrEmptyPlan", err)
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"work out (Monday)": "work out",
		"read (Sunday)":     "read",
		"read":              "read",
		"trip (Paris)":      "trip (Paris)",
	}
	for in, want := range tests {
		if got := BaseName(in); got != want {
			t.Errorf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDescribe(t *testing.T) {
	at := model.Clock(7, 0)
	tests := []struct {
		name string
		task model.Task
		want string
	}{
		{"daily", model.Task{ReminderTime: at, RecurrencePattern: model.RecurrenceDaily, RecurrenceInterval: 1}, "Daily at 07:00"},
		{"weekly", model.Task{ReminderTime: at, RecurrencePattern: model.RecurrenceWeekly,
			DaysOfWeek: model.NewWeekdaySet(model.Monday, model.Wednesday, model.Friday)}, "Mon, Wed, Fri at 07:00"},
		{"every other day", model.Task{ReminderTime: at, RecurrencePattern: model.RecurrenceDaily, RecurrenceInterval: 2}, "Every other day at 07:00"},
		{"every n days", model.Task{ReminderTime: at, RecurrencePattern: model.RecurrenceDaily, RecurrenceInterval: 5}, "Every 5 days at 07:00"},
		{"bi-weekly", model.Task{ReminderTime: at, RecurrencePattern: model.RecurrenceDaily, RecurrenceInterval: 14,
			AnchorDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}, "Every other Monday at 07:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Describe(tc.task); got != tc.want {
				t.Errorf("Describe = %q, want %q", got, tc.want)
			}
		})
	}
}
