package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// ClockTime is a wall-clock time of day without a date or zone.
type ClockTime struct {
	Hour   int
	Minute int
}

func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("clock time out of range: %d:%d", hour, minute)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// Clock builds a ClockTime from known-good literals.
func Clock(hour, minute int) ClockTime {
	c, err := NewClockTime(hour, minute)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseClock parses the 24-hour "HH:MM" storage form.
func ParseClock(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
	}
	return NewClockTime(h, m)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// AddMinutes shifts the time, wrapping around midnight.
func (c ClockTime) AddMinutes(n int) ClockTime {
	total := ((c.Minutes()+n)%minutesPerDay + minutesPerDay) % minutesPerDay
	return ClockTime{Hour: total / 60, Minute: total % 60}
}

func (c ClockTime) Before(o ClockTime) bool { return c.Minutes() < o.Minutes() }

// On places the clock time on the calendar date of day inside loc.
func (c ClockTime) On(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, loc)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
