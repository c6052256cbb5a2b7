package task

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/schedule"
)

// daySuffix matches the " (Monday)" tag the engine puts on per-day tasks.
var daySuffix = regexp.MustCompile(`\s*\((Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\)$`)

// Plan is the single recurring task a confirmed schedule collapses into.
type Plan struct {
	Name               string
	ReminderTime       model.ClockTime
	RecurrencePattern  model.RecurrencePattern
	RecurrenceInterval int
	DaysOfWeek         model.WeekdaySet
	AnchorDate         time.Time
}

// MergePlan folds generated tasks into one task. Per-day tasks become one
// weekly task over the union of their days; all seven days become daily.
// An interval task becomes daily with an interval, anchored today or on the
// first matching anchor weekday from today.
func MergePlan(name string, tasks []schedule.GeneratedTask, today time.Time) (Plan, error) {
	if len(tasks) == 0 {
		return Plan{}, ErrEmptyPlan
	}

	first := tasks[0]
	if name == "" {
		name = BaseName(first.DisplayName)
	}
	p := Plan{Name: name, ReminderTime: first.ReminderTime, RecurrenceInterval: 1}

	for _, t := range tasks {
		if !t.IsInterval() {
			continue
		}
		p.RecurrencePattern = model.RecurrenceDaily
		p.RecurrenceInterval = t.IntervalDays
		p.ReminderTime = t.ReminderTime
		p.AnchorDate = dateOnly(today)
		if t.AnchorWeekday != nil {
			p.AnchorDate = nextWeekday(p.AnchorDate, *t.AnchorWeekday)
		}
		return p, nil
	}

	var days model.WeekdaySet
	for _, t := range tasks {
		days = days.Union(t.DaysOfWeek)
	}
	switch days.Len() {
	case 0:
		return Plan{}, fmt.Errorf("%w: tasks carry neither days nor interval", ErrEmptyPlan)
	case 7:
		p.RecurrencePattern = model.RecurrenceDaily
	default:
		p.RecurrencePattern = model.RecurrenceWeekly
		p.DaysOfWeek = days
	}
	return p, nil
}

// BaseName drops the per-day suffix from a generated display name.
func BaseName(display string) string {
	return strings.TrimSpace(daySuffix.ReplaceAllString(display, ""))
}

// Describe renders a task's cadence, e.g. "Mon, Wed, Fri at 07:00".
func Describe(t model.Task) string {
	at := t.ReminderTime.String()
	switch {
	case t.IsInterval() && t.RecurrenceInterval == 2:
		return "Every other day at " + at
	case t.IsInterval() && t.RecurrenceInterval == 14 && !t.AnchorDate.IsZero():
		return fmt.Sprintf("Every other %s at %s", model.WeekdayOf(t.AnchorDate), at)
	case t.IsInterval():
		return fmt.Sprintf("Every %d days at %s", t.RecurrenceInterval, at)
	case t.RecurrencePattern == model.RecurrenceWeekly && !t.DaysOfWeek.IsEmpty():
		days := t.DaysOfWeek.Days()
		short := make([]string, len(days))
		for i, d := range days {
			short[i] = d.Short()
		}
		return strings.Join(short, ", ") + " at " + at
	}
	return "Daily at " + at
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nextWeekday(from time.Time, d model.Weekday) time.Time {
	diff := (int(d) - int(model.WeekdayOf(from)) + 7) % 7
	return from.AddDate(0, 0, diff)
}
