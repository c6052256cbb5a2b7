package schedule

import (
	"fmt"
	"math"
	"sort"

	"habit-streak-bot/internal/model"
)

// Engine turns schedule patterns into concrete reminder units.
// Every method is deterministic and free of I/O.
type Engine interface {
	// Generate builds the tasks for a pattern. Invalid patterns fall back to
	// Monday/Wednesday/Friday at the pattern's time.
	Generate(p Pattern, name, description string) []GeneratedTask

	// Optimize applies busy days and a preferred window, then separates tasks
	// that collide on the same weekday and time.
	Optimize(tasks []GeneratedTask, prefs Preferences) []GeneratedTask

	// Validate reports collisions and load problems. It never fails.
	Validate(tasks []GeneratedTask) []string

	// SuggestImprovements returns balance hints for a schedule.
	SuggestImprovements(tasks []GeneratedTask) []string

	// Summarize describes the load of a schedule.
	Summarize(tasks []GeneratedTask) Summary
}

// optimalDistributions spread n sessions per week as evenly as possible.
var optimalDistributions = map[int][]model.Weekday{
	1: {model.Monday},
	2: {model.Monday, model.Thursday},
	3: {model.Monday, model.Wednesday, model.Friday},
	4: {model.Monday, model.Tuesday, model.Thursday, model.Friday},
	5: {model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday},
	6: {model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday, model.Saturday},
	7: {model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday, model.Saturday, model.Sunday},
}

const (
	conflictStepMinutes = 30
	conflictMaxSteps    = 24 * 60 / conflictStepMinutes
	maxWeeklyLoad       = 14
	maxTasksPerDay      = 3
	earlyMorningHour    = 7
)

type engine struct{}

// New returns the schedule engine.
func New() Engine {
	return engine{}
}

func (e engine) Generate(p Pattern, name, description string) []GeneratedTask {
	at := DefaultReminderTime
	if p.TimeOfDay != nil {
		at = *p.TimeOfDay
	}

	tasks, err := generate(p, name, description, at)
	if err != nil {
		return fallback(name, description, at)
	}
	return tasks
}

func generate(p Pattern, name, description string, at model.ClockTime) ([]GeneratedTask, error) {
	base := GeneratedTask{DisplayName: name, Description: description, ReminderTime: at}

	switch p.Type {
	case TypeDaily:
		base.DaysOfWeek = model.AllWeekdays()
		return []GeneratedTask{base}, nil

	case TypeWeeklyCount:
		if p.WeeklyCount < 1 {
			return nil, fmt.Errorf("weekly count must be positive, got %d", p.WeeklyCount)
		}
		days, ok := optimalDistributions[p.WeeklyCount]
		if !ok {
			days = distributeEvenly(p.WeeklyCount)
		}
		return perDay(base, days), nil

	case TypeSpecificDays:
		days := p.SpecificDays.Days()
		switch {
		case len(days) == 0:
			return nil, fmt.Errorf("specific days pattern without days")
		case len(days) == 1:
			base.DaysOfWeek = p.SpecificDays
			return []GeneratedTask{base}, nil
		case len(days) <= 3:
			return perDay(base, days), nil
		default:
			base.DaysOfWeek = p.SpecificDays
			return []GeneratedTask{base}, nil
		}

	case TypeInterval:
		if p.IntervalDays < 1 {
			return nil, fmt.Errorf("interval must be positive, got %d", p.IntervalDays)
		}
		base.IntervalDays = p.IntervalDays
		return []GeneratedTask{base}, nil

	case TypeBiWeekly:
		anchor := model.Monday
		base.IntervalDays = 14
		base.AnchorWeekday = &anchor
		return []GeneratedTask{base}, nil
	}

	return nil, fmt.Errorf("unsupported schedule type %q", p.Type)
}

// perDay emits one task per weekday, suffixing the name when there is more than one.
func perDay(base GeneratedTask, days []model.Weekday) []GeneratedTask {
	tasks := make([]GeneratedTask, 0, len(days))
	for _, d := range days {
		t := base
		t.DaysOfWeek = model.NewWeekdaySet(d)
		if len(days) > 1 {
			t.DisplayName = fmt.Sprintf("%s (%s)", base.DisplayName, d)
		}
		tasks = append(tasks, t)
	}
	return tasks
}

func fallback(name, description string, at model.ClockTime) []GeneratedTask {
	base := GeneratedTask{DisplayName: name, Description: description, ReminderTime: at}
	return perDay(base, FallbackDays.Days())
}

// distributeEvenly walks the week in 7/n steps and de-duplicates.
func distributeEvenly(n int) []model.Weekday {
	spacing := 7 / float64(n)
	var set model.WeekdaySet
	for i := 0; i < n; i++ {
		set = set.Add(model.Weekday(int(math.Round(float64(i)*spacing)) % 7))
	}
	return set.Days()
}

func (e engine) Optimize(tasks []GeneratedTask, prefs Preferences) []GeneratedTask {
	out := make([]GeneratedTask, len(tasks))
	copy(out, tasks)

	if !prefs.BusyDays.IsEmpty() {
		for i := range out {
			if out[i].IsInterval() {
				continue
			}
			kept := out[i].DaysOfWeek
			for _, d := range prefs.BusyDays.Days() {
				kept = kept.Remove(d)
			}
			if kept.IsEmpty() {
				for _, d := range model.AllWeekdays().Days() {
					if !prefs.BusyDays.Has(d) {
						kept = model.NewWeekdaySet(d)
						break
					}
				}
			}
			// every day busy: leave the task as it was
			if !kept.IsEmpty() {
				out[i].DaysOfWeek = kept
			}
		}
	}

	if prefs.Window != nil {
		for i := range out {
			if !prefs.Window.Contains(out[i].ReminderTime) {
				out[i].ReminderTime = prefs.Window.Start
			}
		}
	}

	return resolveConflicts(out)
}

type slot struct {
	day     model.Weekday
	minutes int
}

// resolveConflicts pushes a colliding task forward in 30 minute steps until
// its time is free on all of its days. The search covers one full day; if it
// finds nothing the original time is kept.
func resolveConflicts(tasks []GeneratedTask) []GeneratedTask {
	taken := make(map[slot]bool)

	free := func(days []model.Weekday, at model.ClockTime) bool {
		for _, d := range days {
			if taken[slot{d, at.Minutes()}] {
				return false
			}
		}
		return true
	}

	for i := range tasks {
		days := tasks[i].DaysOfWeek.Days()
		if len(days) == 0 {
			continue
		}

		if !free(days, tasks[i].ReminderTime) {
			candidate := tasks[i].ReminderTime
			for step := 0; step < conflictMaxSteps; step++ {
				candidate = candidate.AddMinutes(conflictStepMinutes)
				if free(days, candidate) {
					tasks[i].ReminderTime = candidate
					break
				}
			}
		}

		for _, d := range days {
			taken[slot{d, tasks[i].ReminderTime.Minutes()}] = true
		}
	}
	return tasks
}

func (e engine) Validate(tasks []GeneratedTask) []string {
	var issues []string

	for i := 0; i < len(tasks); i++ {
		for j := i + 1; j < len(tasks); j++ {
			common := tasks[i].DaysOfWeek & tasks[j].DaysOfWeek
			if !common.IsEmpty() && tasks[i].ReminderTime == tasks[j].ReminderTime {
				issues = append(issues, fmt.Sprintf("Time conflict: '%s' and '%s' both scheduled at %s",
					tasks[i].DisplayName, tasks[j].DisplayName, tasks[i].ReminderTime))
			}
		}
	}

	weekly := 0.0
	for _, t := range tasks {
		weekly += t.WeeklyOccurrences()
	}
	if weekly > maxWeeklyLoad {
		issues = append(issues, fmt.Sprintf("High frequency detected: %.1f tasks per week. Consider reducing frequency for better sustainability.", weekly))
	}

	counts := dayCounts(tasks)
	var overloaded model.WeekdaySet
	for d, n := range counts {
		if n > maxTasksPerDay {
			overloaded = overloaded.Add(model.Weekday(d))
		}
	}
	if !overloaded.IsEmpty() {
		issues = append(issues, fmt.Sprintf("Heavy load on %s. Consider redistributing tasks for better balance.", overloaded.Names()))
	}

	return issues
}

func (e engine) SuggestImprovements(tasks []GeneratedTask) []string {
	var suggestions []string

	counts := dayCounts(tasks)
	sorted := counts
	sort.Ints(sorted[:])
	if sorted[6]-sorted[0] > 2 {
		suggestions = append(suggestions, "Consider spreading tasks more evenly across the week")
	}

	weekday, weekend := 0, 0
	for d, n := range counts {
		if model.Weekday(d) >= model.Saturday {
			weekend += n
		} else {
			weekday += n
		}
	}
	if weekday > 0 && weekend == 0 {
		suggestions = append(suggestions, "Consider adding some weekend activities for better work-life balance")
	}

	early := 0
	for _, t := range tasks {
		if t.ReminderTime.Hour < earlyMorningHour {
			early++
		}
	}
	if early > 2 {
		suggestions = append(suggestions, "Multiple early morning tasks detected - ensure this is sustainable")
	}

	return suggestions
}

func (e engine) Summarize(tasks []GeneratedTask) Summary {
	s := Summary{
		TotalTasks:       len(tasks),
		TimeDistribution: make(map[string]int),
		DayDistribution:  dayCounts(tasks),
	}

	for _, t := range tasks {
		s.WeeklyFrequency += t.WeeklyOccurrences()
		s.TimeDistribution[periodOf(t.ReminderTime)]++
	}

	best := -1
	for d, n := range s.DayDistribution {
		if n > 0 && (best < 0 || n > s.DayDistribution[best]) {
			best = d
		}
	}
	if best >= 0 {
		wd := model.Weekday(best)
		s.BusiestDay = &wd
	}

	s.AverageDaily = round1(s.WeeklyFrequency / 7)
	s.WeeklyFrequency = round1(s.WeeklyFrequency)
	return s
}

func dayCounts(tasks []GeneratedTask) [7]int {
	var counts [7]int
	for _, t := range tasks {
		for _, d := range t.DaysOfWeek.Days() {
			counts[d]++
		}
	}
	return counts
}

func periodOf(c model.ClockTime) string {
	switch {
	case c.Hour < 12:
		return "Morning"
	case c.Hour < 17:
		return "Afternoon"
	default:
		return "Evening"
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
