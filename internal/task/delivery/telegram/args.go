package telegram

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"habit-streak-bot/internal/intent"
	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/task"
	"habit-streak-bot/pkg/datemath"
)

var (
	errUsage      = errors.New("bad command arguments")
	errBadTaskID  = errors.New("task id must be a positive number")
	errBadDays    = errors.New("history covers 1 to 90 days: give a number or a start like yesterday or 2 weeks ago")
	errNoEditArgs = errors.New("nothing to change")
)

var reEditField = regexp.MustCompile(`(?i)\b(name|time|description|desc)=`)

// usageError carries the usage line to show for malformed arguments.
type usageError struct {
	usage string
}

func (e *usageError) Error() string { return e.usage }

func (e *usageError) Unwrap() error { return errUsage }

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadTaskID
	}
	return id, nil
}

// parseClock accepts "07:30", "7:30 pm", "7am" and phrases like "morning".
func parseClock(s string) (model.ClockTime, error) {
	c, ok := intent.ParseTimeExpression(s)
	if !ok {
		return model.ClockTime{}, task.ErrInvalidTime
	}
	return c, nil
}

// parseCreate reads "<name> | <time> | [description]".
func parseCreate(args string) (task.CreateInput, error) {
	parts := strings.Split(args, "|")
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		return task.CreateInput{}, &usageError{usageCreateTask}
	}
	at, err := parseClock(parts[1])
	if err != nil {
		return task.CreateInput{}, err
	}
	in := task.CreateInput{
		Name:         strings.TrimSpace(parts[0]),
		ReminderTime: at,
	}
	if len(parts) > 2 {
		in.Description = strings.TrimSpace(strings.Join(parts[2:], "|"))
	}
	return in, nil
}

// parseEdit reads "<id> name=... time=... description=...". A value runs
// until the next key, so names may contain spaces.
func parseEdit(args string) (task.UpdateInput, error) {
	head, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	if head == "" {
		return task.UpdateInput{}, &usageError{usageEditTask}
	}
	id, err := parseTaskID(head)
	if err != nil {
		return task.UpdateInput{}, err
	}
	in := task.UpdateInput{TaskID: id}

	locs := reEditField.FindAllStringSubmatchIndex(rest, -1)
	for i, loc := range locs {
		end := len(rest)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		value := strings.TrimSpace(rest[loc[1]:end])
		switch strings.ToLower(rest[loc[2]:loc[3]]) {
		case "name":
			in.Name = &value
		case "description", "desc":
			in.Description = &value
		case "time":
			at, err := parseClock(value)
			if err != nil {
				return task.UpdateInput{}, err
			}
			in.ReminderTime = &at
		}
	}
	if in.IsEmpty() {
		return task.UpdateInput{}, errNoEditArgs
	}
	return in, nil
}

// parseDays reads the optional /history window.
// parseDays accepts a day count or a start date such as "yesterday",
// "2 weeks ago" or "2026-03-01", counted inclusively up to today in tz.
func parseDays(s, tz string, now time.Time) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultHistoryDays, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		cal, calErr := datemath.NewCalendar(tz)
		if calErr != nil {
			return 0, errBadDays
		}
		since, parseErr := cal.Parse(strings.TrimPrefix(s, "since "), now)
		if parseErr != nil {
			return 0, errBadDays
		}
		n = datemath.DaysBetween(since, cal.Today(now)) + 1
	}
	if n < 1 || n > maxHistoryDays {
		return 0, errBadDays
	}
	return n, nil
}
