package streak

import (
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/pkg/datemath"
)

// Advance applies one completion on date to s. Gaps of one or two days extend
// the streak, longer gaps restart it at 1. A date already counted, or one
// before the last completion, leaves s unchanged and reports false.
func Advance(s model.Streak, date time.Time) (model.Streak, bool) {
	day := datemath.DateOf(date, time.UTC)

	if s.LastCompletionDate == nil {
		s.CurrentStreak = 1
		s.LongestStreak = max(s.LongestStreak, 1)
		s.LastCompletionDate = &day
		return s, true
	}

	gap := datemath.DaysBetween(*s.LastCompletionDate, day)
	switch {
	case gap <= 0:
		return s, false
	case gap <= GraceDays:
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}
	s.LongestStreak = max(s.LongestStreak, s.CurrentStreak)
	s.LastCompletionDate = &day
	return s, true
}

// IsNewRecord is true when the current run equals the best one and is
// longer than a single day.
func IsNewRecord(s model.Streak) bool {
	return s.CurrentStreak == s.LongestStreak && s.CurrentStreak > 1
}

// DaysSince counts calendar days from the last completion to today.
func DaysSince(s model.Streak, today time.Time) (int, bool) {
	if s.LastCompletionDate == nil {
		return 0, false
	}
	return datemath.DaysBetween(*s.LastCompletionDate, today), true
}

// IsActive reports whether the streak is still inside the grace window.
func IsActive(s model.Streak, today time.Time) bool {
	days, ok := DaysSince(s, today)
	return ok && days <= GraceDays
}

// ViewOf evaluates s lazily against today.
func ViewOf(s model.Streak, task model.Task, today time.Time) View {
	v := View{
		TaskID:         s.TaskID,
		TaskName:       task.Name,
		TaskActive:     task.IsActive,
		LongestStreak:  s.LongestStreak,
		LastCompletion: s.LastCompletionDate,
		IsActive:       IsActive(s, today),
	}
	if v.TaskName == "" {
		v.TaskName = "Unknown Task"
	}
	if v.IsActive {
		v.CurrentStreak = s.CurrentStreak
	}
	if days, ok := DaysSince(s, today); ok {
		v.DaysSinceCompletion = &days
	}
	return v
}

// RiskOf grades an active streak by days since the last completion.
func RiskOf(daysSince int) (Risk, int) {
	remaining := max(0, GraceDays-daysSince)
	switch {
	case daysSince >= 2:
		return RiskHigh, remaining
	case daysSince >= 1:
		return RiskMedium, remaining
	default:
		return RiskLow, remaining
	}
}
