// Package calgrid lays out calendar months as rows of seven days for the
// date picker. Pure date math, no TUI types.
package calgrid

import "time"

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// Of returns the month containing t.
func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// First returns midnight on the first day of the month, local time.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.Local)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	// Day zero of the next month is the last day of this one.
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	return Of(m.First().AddDate(0, 0, -1))
}

// Next returns the following month.
func (m Month) Next() Month {
	return Of(m.First().AddDate(0, 0, m.Days()))
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Column returns the grid column (0-6) of a weekday given the week's
// first column.
func Column(d, weekStart time.Weekday) int {
	return (int(d) - int(weekStart) + 7) % 7
}

// Weeks returns the month's days as rows of 7 cells. Cells outside the
// month are the zero time.Time and render as blanks.
func Weeks(m Month, weekStart time.Weekday) [][7]time.Time {
	first := m.First()
	offset := Column(first.Weekday(), weekStart)
	days := m.Days()

	rows := (offset + days + 6) / 7
	weeks := make([][7]time.Time, rows)
	for day := 1; day <= days; day++ {
		cell := offset + day - 1
		weeks[cell/7][cell%7] = first.AddDate(0, 0, day-1)
	}
	return weeks
}

// Headers returns the two-letter column headers starting at weekStart.
func Headers(weekStart time.Weekday) []string {
	headers := make([]string, 7)
	for i := range 7 {
		d := time.Weekday((int(weekStart) + i) % 7)
		headers[i] = d.String()[:2]
	}
	return headers
}
