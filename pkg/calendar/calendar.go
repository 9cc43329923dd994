package calendar

import (
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/period"
)

// HolidayLookup answers whether a date is a public holiday.
type HolidayLookup interface {
	IsHoliday(date time.Time) bool
}

// DayClass is the row classification of a date.
type DayClass int

const (
	Weekday DayClass = iota
	Saturday
	Sunday
	PublicHoliday
)

func (c DayClass) String() string {
	switch c {
	case Saturday:
		return "saturday"
	case Sunday:
		return "sunday"
	case PublicHoliday:
		return "holiday"
	}
	return "weekday"
}

// RowBucket is the row highlight shared by every table and report.
type RowBucket string

const (
	RowPlain    RowBucket = ""
	RowSaturday RowBucket = "saturday"
	RowHoliday  RowBucket = "holiday"
)

// RowBucket maps the class to its highlight. Sundays and public holidays
// share one.
func (c DayClass) RowBucket() RowBucket {
	switch c {
	case Sunday, PublicHoliday:
		return RowHoliday
	case Saturday:
		return RowSaturday
	}
	return RowPlain
}

// Classify returns the class of date. A holiday falling on a Saturday is a
// holiday.
func Classify(date time.Time, holidays HolidayLookup) DayClass {
	switch {
	case date.Weekday() == time.Sunday:
		return Sunday
	case holidays != nil && holidays.IsHoliday(date):
		return PublicHoliday
	case date.Weekday() == time.Saturday:
		return Saturday
	}
	return Weekday
}

var weekdayJA = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// WeekdayJA returns the one-character Japanese weekday label.
func WeekdayJA(date time.Time) string {
	return weekdayJA[date.Weekday()]
}

// Day is a date with its classification computed once for all renderers.
type Day struct {
	Date    time.Time
	Weekday string
	Class   DayClass
}

// Row returns the row bucket of the day.
func (d Day) Row() RowBucket { return d.Class.RowBucket() }

// Label formats the date as YYYY-MM-DD.
func (d Day) Label() string { return d.Date.Format(period.DateLayout) }

// Days classifies every day of the business month.
func Days(m period.Month, holidays HolidayLookup) []Day {
	dates := m.Days()
	out := make([]Day, len(dates))
	for i, d := range dates {
		out[i] = Day{Date: d, Weekday: WeekdayJA(d), Class: Classify(d, holidays)}
	}
	return out
}
