package datemath_test

import (
	"testing"
	"time"

	"habit-streak-bot/pkg/datemath"
)

func TestCalendarToday(t *testing.T) {
	cal, err := datemath.NewCalendar("Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}
	// 2024-03-10 20:00 UTC is already 2024-03-11 in Tokyo.
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	got := cal.Today(now)
	if datemath.FormatDate(got) != "2024-03-11" {
		t.Errorf("Today = %s, want 2024-03-11", datemath.FormatDate(got))
	}
	if got.Location() != time.UTC || got.Hour() != 0 {
		t.Errorf("Today should be normalised to UTC midnight, got %v", got)
	}
}

func TestCalendarParse(t *testing.T) {
	cal, _ := datemath.NewCalendar("UTC")
	base := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{"today", "2024-05-15"},
		{"yesterday", "2024-05-14"},
		{"3 days ago", "2024-05-12"},
		{"1 week ago", "2024-05-08"},
		{"2024-01-31", "2024-01-31"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := cal.Parse(tt.in, base)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if datemath.FormatDate(got) != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, datemath.FormatDate(got), tt.want)
			}
		})
	}

	if _, err := cal.Parse("next blue moon", base); err == nil {
		t.Error("expected error for unknown phrase")
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC) // crosses a leap day
	if got := datemath.DaysBetween(a, b); got != 4 {
		t.Errorf("DaysBetween = %d, want 4", got)
	}
	if got := datemath.DaysBetween(b, a); got != -4 {
		t.Errorf("DaysBetween reversed = %d, want -4", got)
	}
}

func TestInvalidTimezone(t *testing.T) {
	if _, err := datemath.NewCalendar("Mars/Olympus"); err == nil {
		t.Error("expected error for invalid timezone")
	}
	loc, err := datemath.LoadLocation("")
	if err != nil || loc != time.UTC {
		t.Errorf("empty timezone should be UTC, got %v, %v", loc, err)
	}
}
