// Package period holds the business-month arithmetic: a month runs from the
// 16th of one calendar month to the 15th of the next. Every date-ranged query
// and report goes through here.
package period

import (
	"fmt"
	"time"
)

// StartDay is the calendar day a business month begins on.
const StartDay = 16

// DateLayout is the storage and query format for dates.
const DateLayout = "2006-01-02"

// Month identifies a business month by the calendar month it starts in.
type Month struct {
	Year  int
	Month time.Month
}

// Of returns the business month starting on the 16th of year/month. The month
// is normalised, so Of(2024, 13) is January 2025.
func Of(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Containing returns the business month that date falls in.
func Containing(date time.Time) Month {
	if date.Day() >= StartDay {
		return Of(date.Year(), date.Month())
	}
	return Of(date.Year(), date.Month()-1)
}

// Start is the 16th of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, StartDay, 0, 0, 0, 0, time.UTC)
}

// End is the 15th of the following calendar month.
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, -1)
}

// Window returns Start and End.
func (m Month) Window() (time.Time, time.Time) {
	return m.Start(), m.End()
}

// Days enumerates the month's dates in ascending order, both ends included.
func (m Month) Days() []time.Time {
	start, end := m.Window()
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Len is the number of days in the month.
func (m Month) Len() int {
	return int(m.End().Sub(m.Start()).Hours()/24) + 1
}

// Contains reports whether date (compared by calendar day) is inside the month.
func (m Month) Contains(date time.Time) bool {
	d := Day(date)
	return !d.Before(m.Start()) && !d.After(m.End())
}

// Halves splits the month at the calendar month boundary: the 16th to the end
// of the starting month, then the 1st to the 15th.
func (m Month) Halves() [2][2]time.Time {
	start, end := m.Window()
	next := time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return [2][2]time.Time{
		{start, next.AddDate(0, 0, -1)},
		{next, end},
	}
}

// Next returns the following business month.
func (m Month) Next() Month { return Of(m.Year, m.Month+1) }

// Prev returns the preceding business month.
func (m Month) Prev() Month { return Of(m.Year, m.Month-1) }

// Clamp moves date into the month, used as the editor's default date.
func (m Month) Clamp(date time.Time) time.Time {
	d := Day(date)
	if d.Before(m.Start()) {
		return m.Start()
	}
	if d.After(m.End()) {
		return m.End()
	}
	return d
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// Parse reads a business month from year and month numbers as given in query
// strings.
func Parse(year, month int) (Month, error) {
	if year < 1 || month < 1 || month > 12 {
		return Month{}, fmt.Errorf("invalid business month %d-%d", year, month)
	}
	return Of(year, time.Month(month)), nil
}
