package service

import (
	"time"

	"github.com/maheshrc27/postcal/internal/calendar"
)

const dateLayout = "2006-01-02"

// naiveDate returns t's calendar date as a timezone-naive (UTC) midnight.
func naiveDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, validationError("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

// parseClock accepts HH:MM or HH:MM:SS.
func parseClock(s string) (hour, minute, second int, err error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, perr := time.Parse(layout, s); perr == nil {
			return t.Hour(), t.Minute(), t.Second(), nil
		}
	}
	return 0, 0, 0, validationError("invalid time %q, want HH:MM or HH:MM:SS", s)
}

func clockLayout(second int) string {
	if second != 0 {
		return "15:04:05"
	}
	return "15:04"
}

func combine(date time.Time, hour, minute, second int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, second, 0, time.UTC)
}

func nextWeekday(today time.Time, weekday int) (time.Time, error) {
	d, err := calendar.NextWeekday(today, weekday)
	if err != nil {
		return time.Time{}, validationError("%v", err)
	}
	return d, nil
}
