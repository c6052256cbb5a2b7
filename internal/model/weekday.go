package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday counts from Monday (0) to Sunday (6).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Short returns the three-letter abbreviation.
func (d Weekday) Short() string {
	return d.String()[:3]
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// TimeWeekday converts to the standard library's Sunday-first numbering.
func (d Weekday) TimeWeekday() time.Weekday {
	return time.Weekday((int(d) + 1) % 7)
}

// WeekdayOf returns the weekday of t in t's own location.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// ParseWeekday accepts full names and three-letter abbreviations, any case.
func ParseWeekday(name string) (Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, full := range weekdayNames {
		lower := strings.ToLower(full)
		if name == lower || name == lower[:3] {
			return Weekday(i), true
		}
	}
	return 0, false
}

// WeekdaySet is a bitmask of weekdays.
type WeekdaySet uint8

const allWeekdaysMask WeekdaySet = 1<<7 - 1

func NewWeekdaySet(days ...Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

func AllWeekdays() WeekdaySet { return allWeekdaysMask }

func WorkWeek() WeekdaySet { return NewWeekdaySet(Monday, Tuesday, Wednesday, Thursday, Friday) }

func Weekend() WeekdaySet { return NewWeekdaySet(Saturday, Sunday) }

func (s WeekdaySet) Add(d Weekday) WeekdaySet {
	if !d.Valid() {
		return s
	}
	return s | 1<<uint(d)
}

func (s WeekdaySet) Remove(d Weekday) WeekdaySet {
	if !d.Valid() {
		return s
	}
	return s &^ (1 << uint(d))
}

func (s WeekdaySet) Has(d Weekday) bool {
	return d.Valid() && s&(1<<uint(d)) != 0
}

func (s WeekdaySet) Union(o WeekdaySet) WeekdaySet { return (s | o) & allWeekdaysMask }

func (s WeekdaySet) IsEmpty() bool { return s&allWeekdaysMask == 0 }

func (s WeekdaySet) Len() int {
	n := 0
	for d := Monday; d <= Sunday; d++ {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Days lists members in Monday..Sunday order.
func (s WeekdaySet) Days() []Weekday {
	days := make([]Weekday, 0, 7)
	for d := Monday; d <= Sunday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Encode renders the storage form, e.g. "0,2,4". Empty sets encode to "".
func (s WeekdaySet) Encode() string {
	days := s.Days()
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

// ParseWeekdaySet decodes the storage form produced by Encode.
func ParseWeekdaySet(raw string) (WeekdaySet, error) {
	var s WeekdaySet
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s, nil
	}
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || !Weekday(n).Valid() {
			return 0, fmt.Errorf("invalid weekday %q", part)
		}
		s = s.Add(Weekday(n))
	}
	return s, nil
}

// Names joins the full weekday names, e.g. "Monday, Wednesday".
func (s WeekdaySet) Names() string {
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}

func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	days := s.Days()
	ints := make([]int, len(days))
	for i, d := range days {
		ints[i] = int(d)
	}
	return json.Marshal(ints)
}

func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	var out WeekdaySet
	for _, n := range ints {
		if !Weekday(n).Valid() {
			return fmt.Errorf("invalid weekday %d", n)
		}
		out = out.Add(Weekday(n))
	}
	*s = out
	return nil
}
