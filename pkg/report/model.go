// Package report builds the printable views of a business month: the help
// table, the per-employee schedule and the per-store schedule as PDF, and the
// help table as a spreadsheet. Table models are computed first and drawn
// second so the layout rules can be tested without fonts.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/calendar"
	"github.com/arnavshah/help-scheduler-go/pkg/grid"
	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
)

const titleDate = "2006年01月02日"

// HelpRow is one day of the help table.
type HelpRow struct {
	Day   calendar.Day
	Cells []shiftcode.Cell
}

// HelpTable is one page of the help table.
type HelpTable struct {
	Title     string
	Employees []string
	Rows      []HelpRow
}

// HelpTables splits the month into its two calendar halves, one table each.
// area only prefixes the titles; the caller picks the employees.
func HelpTables(g *grid.Grid, days []calendar.Day, employees []string, area string) []HelpTable {
	prefix := ""
	if area != "" {
		prefix = area + " "
	}

	var out []HelpTable
	for _, half := range g.Month.Halves() {
		t := HelpTable{
			Title:     fmt.Sprintf("%s%s～%s ヘルプ表", prefix, half[0].Format(titleDate), half[1].Format(titleDate)),
			Employees: employees,
		}
		for _, d := range days {
			if d.Date.Before(half[0]) || d.Date.After(half[1]) {
				continue
			}
			row := HelpRow{Day: d, Cells: make([]shiftcode.Cell, len(employees))}
			for i, c := range g.Row(d.Date, employees) {
				row.Cells[i] = shiftcode.Render(c)
			}
			t.Rows = append(t.Rows, row)
		}
		out = append(out, t)
	}
	return out
}

// EmployeeRow is one day of an employee's schedule.
type EmployeeRow struct {
	Day  calendar.Day
	Cell shiftcode.Cell
}

// EmployeeTable is an employee's month, one column per rendered line.
type EmployeeTable struct {
	Title    string
	Employee string
	Columns  int
	Rows     []EmployeeRow
}

// Employee builds the schedule of one employee.
func Employee(g *grid.Grid, days []calendar.Day, employee string) EmployeeTable {
	t := EmployeeTable{
		Title:    fmt.Sprintf("%sさん %d年%d月 シフト表", employee, g.Month.Year, int(g.Month.Month)),
		Employee: employee,
		Columns:  1,
	}
	for _, d := range days {
		cell := shiftcode.Render(g.Get(d.Date, employee))
		if n := len(cell.Lines); n > t.Columns {
			t.Columns = n
		}
		t.Rows = append(t.Rows, EmployeeRow{Day: d, Cell: cell})
	}
	return t
}

// Helper is an employee sent to a store on some day.
type Helper struct {
	Time     string
	Employee string
	Note     string
	start    int
}

// Label is the helper column text: the employee and, for その他 shifts, the
// description in parentheses.
func (h Helper) Label() string {
	if h.Note == "" {
		return h.Employee
	}
	return fmt.Sprintf("%s (%s)", h.Employee, h.Note)
}

// StoreRow is one day of a store's schedule.
type StoreRow struct {
	Day     calendar.Day
	Helpers []Helper
	Request string
}

// StoreTable lists, per day, who helps at a store and when.
type StoreTable struct {
	Title string
	Store string
	Rows  []StoreRow
}

// Store builds the schedule of one store. Helpers are ordered by the start
// of their time range; unreadable times go last and ties keep roster order.
func Store(g *grid.Grid, days []calendar.Day, store string, requests map[grid.HelpKey]string) StoreTable {
	t := StoreTable{
		Title: fmt.Sprintf("%d年%d月 %s", g.Month.Year, int(g.Month.Month), store),
		Store: store,
	}
	for _, d := range days {
		row := StoreRow{Day: d, Request: requests[grid.HelpKeyOf(d.Date, store)]}
		for _, e := range g.Employees {
			c := g.Get(d.Date, e)
			for _, a := range c.Assignments {
				if a.Store != store {
					continue
				}
				h := Helper{Time: a.Time, Employee: e, start: shiftcode.StartMinutes(a.Time)}
				if c.Kind == shiftcode.KindOther {
					h.Note = c.Text
				}
				row.Helpers = append(row.Helpers, h)
			}
		}
		sort.SliceStable(row.Helpers, func(i, j int) bool { return row.Helpers[i].start < row.Helpers[j].start })
		t.Rows = append(t.Rows, row)
	}
	return t
}

// HelpPDFName is the download name of the help table.
func HelpPDFName(m period.Month) string {
	return fmt.Sprintf("全ヘルプスタッフ_%d_%d.pdf", m.Year, int(m.Month))
}

// EmployeePDFName is the download name of an employee's schedule.
func EmployeePDFName(m period.Month, employee string) string {
	return fmt.Sprintf("%sさん_%s～%s_シフト.pdf", employee, m.Start().Format(titleDate), m.End().Format(titleDate))
}

// StorePDFName is the download name of a store's schedule.
func StorePDFName(m period.Month, store string) string {
	return fmt.Sprintf("%d月_%s.pdf", int(m.Month), store)
}

// HelpXLSXName is the download name of the spreadsheet export.
func HelpXLSXName(m period.Month) string {
	return fmt.Sprintf("ヘルプ表_%d年%d月.xlsx", m.Year, int(m.Month))
}

func shortDate(d time.Time) string { return d.Format("01/02") }

func storeDate(d calendar.Day) string { return d.Date.Format("01月02日") + " " + d.Weekday }
