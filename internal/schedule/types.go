package schedule

import (
	"fmt"

	"habit-streak-bot/internal/model"
)

// Type is the resolved recurrence family.
type Type string

const (
	TypeDaily        Type = "daily"
	TypeWeeklyCount  Type = "weekly_count"
	TypeSpecificDays Type = "specific_days"
	TypeInterval     Type = "interval"
	TypeBiWeekly     Type = "bi_weekly"
)

// DefaultReminderTime is used when the pattern carries no time of day.
var DefaultReminderTime = model.Clock(8, 0)

// FallbackDays is used when a schedule cannot be derived.
var FallbackDays = model.NewWeekdaySet(model.Monday, model.Wednesday, model.Friday)

// Pattern is a resolved recurrence rule. Exactly one of WeeklyCount,
// SpecificDays and IntervalDays is populated, consistent with Type. Daily
// populates none of them.
type Pattern struct {
	Type         Type
	WeeklyCount  int
	SpecificDays model.WeekdaySet
	IntervalDays int
	TimeOfDay    *model.ClockTime
}

// Validate checks that the populated field matches Type.
func (p Pattern) Validate() error {
	populated := 0
	if p.WeeklyCount != 0 {
		populated++
	}
	if !p.SpecificDays.IsEmpty() {
		populated++
	}
	if p.IntervalDays != 0 {
		populated++
	}

	switch p.Type {
	case TypeDaily:
		if populated != 0 {
			return fmt.Errorf("daily pattern must not carry a count, days or interval")
		}
		return nil
	case TypeWeeklyCount:
		if p.WeeklyCount < 1 {
			return fmt.Errorf("weekly_count pattern needs a positive count")
		}
	case TypeSpecificDays:
		if p.SpecificDays.IsEmpty() {
			return fmt.Errorf("specific_days pattern needs at least one day")
		}
	case TypeInterval, TypeBiWeekly:
		if p.IntervalDays < 1 {
			return fmt.Errorf("%s pattern needs a positive interval", p.Type)
		}
	default:
		return fmt.Errorf("unknown schedule type %q", p.Type)
	}
	if populated != 1 {
		return fmt.Errorf("%s pattern must populate exactly one of count, days, interval", p.Type)
	}
	return nil
}

// GeneratedTask is one concrete schedulable unit. Exactly one of DaysOfWeek
// (non-empty) and IntervalDays (> 0) is set.
type GeneratedTask struct {
	DisplayName  string           `json:"display_name"`
	Description  string           `json:"description,omitempty"`
	ReminderTime model.ClockTime  `json:"reminder_time"`
	DaysOfWeek   model.WeekdaySet `json:"days_of_week"`
	IntervalDays int              `json:"interval_days,omitempty"`
	// AnchorWeekday pins the first occurrence of an interval task.
	AnchorWeekday *model.Weekday `json:"anchor_weekday,omitempty"`
}

// IsInterval reports whether the task repeats every IntervalDays days.
func (t GeneratedTask) IsInterval() bool {
	return t.IntervalDays > 0
}

// Valid checks the days/interval exclusivity.
func (t GeneratedTask) Valid() bool {
	return t.DaysOfWeek.IsEmpty() != (t.IntervalDays == 0)
}

// WeeklyOccurrences is the average number of reminders per week.
func (t GeneratedTask) WeeklyOccurrences() float64 {
	if t.IntervalDays > 0 {
		return 7 / float64(t.IntervalDays)
	}
	return float64(t.DaysOfWeek.Len())
}

// Preferences are user constraints applied by Optimize.
type Preferences struct {
	BusyDays model.WeekdaySet
	// Window bounds reminder times, inclusive. Nil means unconstrained.
	Window *TimeWindow
}

// TimeWindow is an inclusive clock-time range within one day.
type TimeWindow struct {
	Start model.ClockTime
	End   model.ClockTime
}

// Contains reports whether c falls inside the window.
func (w TimeWindow) Contains(c model.ClockTime) bool {
	return !c.Before(w.Start) && !w.End.Before(c)
}

// Summary describes a set of generated tasks.
type Summary struct {
	TotalTasks       int            `json:"total_tasks"`
	WeeklyFrequency  float64        `json:"weekly_frequency"`
	TimeDistribution map[string]int `json:"time_distribution"`
	DayDistribution  [7]int         `json:"day_distribution"`
	BusiestDay       *model.Weekday `json:"busiest_day,omitempty"`
	AverageDaily     float64        `json:"average_daily_tasks"`
}
