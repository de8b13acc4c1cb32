package calendar

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidWeekday = errors.New("weekday must be between 0 (Monday) and 6 (Sunday)")

// WeekdayNames is indexed by weekday index (Monday=0).
var WeekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayIndex converts a time.Weekday to a Monday-based index.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// ParseWeekday accepts a full weekday name, case-sensitive, and returns its index.
func ParseWeekday(name string) (int, error) {
	for i, n := range WeekdayNames {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
}

// NextWeekday returns the next date after from that falls on weekday.
// If from is already on weekday the result is one week later.
func NextWeekday(from time.Time, weekday int) (time.Time, error) {
	if weekday < 0 || weekday > 6 {
		return time.Time{}, fmt.Errorf("%w: %d", ErrInvalidWeekday, weekday)
	}

	daysAhead := weekday - WeekdayIndex(from.Weekday())
	if daysAhead <= 0 {
		daysAhead += 7
	}
	return from.AddDate(0, 0, daysAhead), nil
}

// DateOf truncates t to midnight of its calendar day in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate reports whether a and b fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
