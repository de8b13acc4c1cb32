package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// Week holds day-of-month numbers from Sunday to Saturday. Zero marks a day outside the month.
type Week [7]int

// Month is one month of a year grid.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Name  string     `json:"name"`
	Weeks []Week     `json:"weeks"`
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthGrid lays the month out as Sunday-first weeks.
func MonthGrid(year int, month time.Month) ([]Week, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}

	offset := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	days := DaysIn(year, month)

	weeks := make([]Week, 0, 6)
	var week Week
	col := offset
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = Week{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks, nil
}

// YearGrid returns the grids of all twelve months of year.
func YearGrid(year int) []Month {
	months := make([]Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		weeks, _ := MonthGrid(year, m)
		months = append(months, Month{
			Year:  year,
			Month: m,
			Name:  m.String(),
			Weeks: weeks,
		})
	}
	return months
}

// RenderMarkdown renders every month of year as a markdown table.
func RenderMarkdown(year int) string {
	header := "|Sun|Mon|Tue|Wed|Thu|Fri|Sat|\n|" + strings.Repeat("---|", 7) + "\n"

	tables := make([]string, 0, 12)
	for _, m := range YearGrid(year) {
		var b strings.Builder
		fmt.Fprintf(&b, "### %s %d\n", m.Name, m.Year)
		b.WriteString(header)
		for _, w := range m.Weeks {
			b.WriteString("|")
			for _, day := range w {
				if day == 0 {
					b.WriteString("  |")
					continue
				}
				fmt.Fprintf(&b, "%2d|", day)
			}
			b.WriteString("\n")
		}
		tables = append(tables, b.String())
	}
	return strings.Join(tables, "\n\n")
}
