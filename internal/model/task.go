package model

import "time"

// RecurrencePattern is the persisted recurrence family of a task.
type RecurrencePattern string

const (
	RecurrenceDaily  RecurrencePattern = "daily"
	RecurrenceWeekly RecurrencePattern = "weekly"
)

// GenerationMethod records how a task came to exist.
type GenerationMethod string

const (
	GenerationManual          GenerationMethod = "manual"
	GenerationNaturalLanguage GenerationMethod = "natural_language"
)

// Task is a persisted recurring reminder owned by one user.
//
// RecurrenceInterval > 1 together with RecurrenceDaily means "every N days"
// counted from AnchorDate. DaysOfWeek is only meaningful for RecurrenceWeekly.
type Task struct {
	ID                 int64
	UserID             int64
	Name               string
	Description        string
	ReminderTime       ClockTime
	Timezone           string
	IsActive           bool
	IsRecurring        bool
	RecurrencePattern  RecurrencePattern
	RecurrenceInterval int
	DaysOfWeek         WeekdaySet
	AnchorDate         time.Time
	GenerationMethod   GenerationMethod
	ParentRequestID    string
	CalendarEventID    string
	CreatedAt          time.Time
}

// IsInterval reports whether the task repeats every N>1 days.
func (t Task) IsInterval() bool {
	return t.RecurrencePattern == RecurrenceDaily && t.RecurrenceInterval > 1
}

// OccursOn reports whether the task is due on the calendar date day.
// Interval tasks count from AnchorDate, or from the creation date when no
// anchor was stored.
func (t Task) OccursOn(day time.Time) bool {
	switch {
	case t.IsInterval():
		anchor := t.AnchorDate
		if anchor.IsZero() {
			anchor = t.CreatedAt
		}
		a := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
		d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		diff := int(d.Sub(a).Hours() / 24)
		return diff >= 0 && diff%t.RecurrenceInterval == 0
	case t.RecurrencePattern == RecurrenceWeekly && !t.DaysOfWeek.IsEmpty():
		return t.DaysOfWeek.Has(WeekdayOf(day))
	default:
		return true
	}
}
