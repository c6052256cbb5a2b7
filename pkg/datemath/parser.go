package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the storage and display form of calendar dates.
const DateLayout = "2006-01-02"

// Calendar resolves instants to calendar dates inside one IANA zone.
type Calendar struct {
	location *time.Location
}

// NewCalendar creates a calendar for the given IANA timezone string,
// e.g. "America/Toronto".
func NewCalendar(timezone string) (*Calendar, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Calendar{location: loc}, nil
}

// LoadLocation wraps time.LoadLocation; an empty name means UTC.
func LoadLocation(timezone string) (*time.Location, error) {
	if strings.TrimSpace(timezone) == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

func (c *Calendar) Location() *time.Location {
	return c.location
}

// Today is the calendar date of now in the calendar's zone.
func (c *Calendar) Today(now time.Time) time.Time {
	return DateOf(now, c.location)
}

// Parse resolves "today", "yesterday", "N days ago" or a YYYY-MM-DD literal
// relative to base.
func (c *Calendar) Parse(relative string, base time.Time) (time.Time, error) {
	relative = strings.ToLower(strings.TrimSpace(relative))
	today := c.Today(base)

	switch relative {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if strings.HasSuffix(relative, " ago") {
		return c.parseAgo(relative, today)
	}

	d, err := ParseDate(relative)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q", relative)
	}
	return d, nil
}

var agoPattern = regexp.MustCompile(`^(\d+) (day|days|week|weeks) ago$`)

func (c *Calendar) parseAgo(relative string, today time.Time) (time.Time, error) {
	m := agoPattern.FindStringSubmatch(relative)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid duration format: %q", relative)
	}
	n, _ := strconv.Atoi(m[1])
	if strings.HasPrefix(m[2], "week") {
		n *= 7
	}
	return today.AddDate(0, 0, -n), nil
}

// DateOf returns the calendar date of t as seen in loc, normalised to
// midnight UTC so dates compare and subtract exactly.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from one normalised date to another.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}
