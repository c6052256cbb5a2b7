package gcalendar

import (
	"fmt"
	"strings"
)

// DailyRule repeats every interval days; interval < 2 means every day.
func DailyRule(interval int) string {
	if interval < 2 {
		return "RRULE:FREQ=DAILY"
	}
	return fmt.Sprintf("RRULE:FREQ=DAILY;INTERVAL=%d", interval)
}

// WeeklyRule repeats on the given two-letter weekday codes (MO, TU, ...).
func WeeklyRule(days []string) string {
	return "RRULE:FREQ=WEEKLY;BYDAY=" + strings.Join(days, ",")
}
