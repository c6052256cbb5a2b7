package reminder

import (
	"fmt"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/pkg/datemath"
)

// horizonDays bounds the search for the next occurrence. The longest cadence
// is a 30 day interval, so a year always finds one if any exists.
const horizonDays = 366

// Trigger is the firing rule derived from a task row.
//
// Weekly tasks fire on their weekdays, daily tasks every day and interval
// tasks every RecurrenceInterval days from the anchor date. A non-recurring
// task fires once.
type Trigger struct {
	task model.Task
	loc  *time.Location
}

// TriggerFor derives the trigger of a task.
func TriggerFor(t model.Task) (Trigger, error) {
	loc, err := datemath.LoadLocation(t.Timezone)
	if err != nil {
		return Trigger{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, t.Timezone)
	}
	return Trigger{task: t, loc: loc}, nil
}

// Recurring reports whether the trigger fires more than once.
func (tr Trigger) Recurring() bool {
	return tr.task.IsRecurring
}

func (tr Trigger) Location() *time.Location {
	return tr.loc
}

// Next returns the first fire time strictly after after, in the trigger's zone.
// A non-recurring task only fires at its first occurrence after creation.
func (tr Trigger) Next(after time.Time) (time.Time, bool) {
	if tr.task.IsRecurring || tr.task.CreatedAt.IsZero() {
		return tr.scan(after)
	}
	at, ok := tr.scan(tr.task.CreatedAt)
	if !ok || !at.After(after) {
		return time.Time{}, false
	}
	return at, true
}

func (tr Trigger) scan(after time.Time) (time.Time, bool) {
	local := after.In(tr.loc)
	y, m, d := local.Date()
	for i := 0; i <= horizonDays; i++ {
		day := time.Date(y, m, d+i, 0, 0, 0, 0, tr.loc)
		if !tr.task.OccursOn(day) {
			continue
		}
		if at := tr.task.ReminderTime.On(day, tr.loc); at.After(after) {
			return at, true
		}
	}
	return time.Time{}, false
}

// Matches reports whether at is a fire time of the trigger, to the minute.
func (tr Trigger) Matches(at time.Time) bool {
	local := at.In(tr.loc)
	if !tr.task.OccursOn(local) {
		return false
	}
	return local.Hour() == tr.task.ReminderTime.Hour && local.Minute() == tr.task.ReminderTime.Minute
}

// Same reports whether two triggers would fire at the same instants.
func (tr Trigger) Same(o Trigger) bool {
	a, b := tr.task, o.task
	return tr.loc.String() == o.loc.String() &&
		a.ReminderTime == b.ReminderTime &&
		a.IsRecurring == b.IsRecurring &&
		a.RecurrencePattern == b.RecurrencePattern &&
		a.RecurrenceInterval == b.RecurrenceInterval &&
		a.DaysOfWeek == b.DaysOfWeek &&
		a.AnchorDate.Equal(b.AnchorDate)
}
