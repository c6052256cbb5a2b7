package intent

import (
	"fmt"
	"strings"

	"habit-streak-bot/internal/schedule"
)

const (
	maxWeeklyCount  = 14
	maxIntervalDays = 30
)

// Validate returns the problems found in i; an empty result means valid.
func (p *parser) Validate(i Intent) []string {
	return Validate(i)
}

// Validate checks name length and frequency bounds.
func Validate(i Intent) []string {
	var errs []string
	if len(strings.TrimSpace(i.ActivityName)) < 2 {
		errs = append(errs, "Task name is too short or missing")
	}

	switch i.Frequency {
	case FrequencyWeeklyCount:
		switch {
		case i.Count > maxWeeklyCount:
			errs = append(errs, fmt.Sprintf("Frequency too high: %d times per week", i.Count))
		case i.Count < 0:
			errs = append(errs, fmt.Sprintf("Invalid frequency: %d", i.Count))
		}
	case FrequencyInterval:
		switch {
		case i.Count > maxIntervalDays:
			errs = append(errs, fmt.Sprintf("Interval too long: every %d days", i.Count))
		case i.Count < 0:
			errs = append(errs, fmt.Sprintf("Invalid interval: %d", i.Count))
		}
	}
	return errs
}

func (p *parser) Pattern(i Intent) schedule.Pattern {
	return CreateSchedulePattern(i)
}

// CreateSchedulePattern resolves an Intent into a schedule pattern, filling
// defaults for values the user left out.
func CreateSchedulePattern(i Intent) schedule.Pattern {
	var pat schedule.Pattern
	switch i.Frequency {
	case FrequencyDaily:
		pat.Type = schedule.TypeDaily
	case FrequencyWeeklyCount:
		pat.Type = schedule.TypeWeeklyCount
		pat.WeeklyCount = positiveOr(i.Count, 3)
	case FrequencySpecificDays:
		pat.Type = schedule.TypeSpecificDays
		pat.SpecificDays = i.Days
		if pat.SpecificDays.IsEmpty() {
			pat.SpecificDays = schedule.FallbackDays
		}
	case FrequencyInterval:
		pat.Type = schedule.TypeInterval
		pat.IntervalDays = positiveOr(i.Count, 2)
	case FrequencyBiWeekly:
		pat.Type = schedule.TypeBiWeekly
		pat.IntervalDays = 14
	default:
		pat.Type = schedule.TypeWeeklyCount
		pat.WeeklyCount = 3
	}

	if c, ok := ParseTimeExpression(i.TimePreference); ok {
		pat.TimeOfDay = &c
	}
	return pat
}

func positiveOr(n, def int) int {
	if n > 0 {
		return n
	}
	return def
}

// SuggestTimeAlternatives lists example time formats for a clarification prompt.
func SuggestTimeAlternatives() []string {
	return append([]string(nil), timeSuggestions...)
}

// SuggestFrequencyAlternatives lists example frequencies for a clarification prompt.
func SuggestFrequencyAlternatives() []string {
	return append([]string(nil), frequencySuggestions...)
}
