// Package grid holds the in-memory (date × employee) shift table of one
// business month and the computations made over it.
package grid

import (
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
)

// Key addresses one cell.
type Key struct {
	Date     string // YYYY-MM-DD
	Employee string
}

// KeyOf builds a key from a date and an employee.
func KeyOf(date time.Time, employee string) Key {
	return Key{Date: date.Format(period.DateLayout), Employee: employee}
}

// Grid is a dense table over exactly the days of one business month for a
// fixed roster. Cells that were never set read as Unset. A Grid belongs to a
// single editing session and is not safe for concurrent writers.
type Grid struct {
	Month     period.Month
	Employees []string
	cells     map[Key]shiftcode.Code
}

// New returns an empty grid.
func New(m period.Month, employees []string) *Grid {
	return &Grid{Month: m, Employees: employees, cells: make(map[Key]shiftcode.Code)}
}

// FromRaw hydrates a grid from persisted strings. Entries outside the month
// or for employees not on the roster are dropped; every string goes through
// the decoder.
func FromRaw(m period.Month, employees []string, raw map[Key]string) *Grid {
	g := New(m, employees)
	known := make(map[string]bool, len(employees))
	for _, e := range employees {
		known[e] = true
	}
	for k, v := range raw {
		d, err := period.ParseDate(k.Date)
		if err != nil || !m.Contains(d) || !known[k.Employee] {
			continue
		}
		code := shiftcode.Decode(v)
		if !code.IsUnset() {
			g.cells[k] = code
		}
	}
	return g
}

// Get returns the cell at date/employee.
func (g *Grid) Get(date time.Time, employee string) shiftcode.Code {
	return g.cells[KeyOf(date, employee)]
}

// Set replaces one cell. Dates outside the month are ignored and reported
// as false.
func (g *Grid) Set(date time.Time, employee string, code shiftcode.Code) bool {
	if !g.Month.Contains(date) {
		return false
	}
	k := KeyOf(date, employee)
	if code.IsUnset() {
		delete(g.cells, k)
		return true
	}
	g.cells[k] = code
	return true
}

// SetMany writes the same value into each listed date.
func (g *Grid) SetMany(dates []time.Time, employee string, code shiftcode.Code) int {
	n := 0
	for _, d := range dates {
		if g.Set(d, employee, code) {
			n++
		}
	}
	return n
}

// Column returns one employee's codes for every day of the month.
func (g *Grid) Column(employee string) []shiftcode.Code {
	days := g.Month.Days()
	out := make([]shiftcode.Code, len(days))
	for i, d := range days {
		out[i] = g.Get(d, employee)
	}
	return out
}

// Row returns the codes of the given employees on one date.
func (g *Grid) Row(date time.Time, employees []string) []shiftcode.Code {
	out := make([]shiftcode.Code, len(employees))
	for i, e := range employees {
		out[i] = g.Get(date, e)
	}
	return out
}

// Raw returns the encoded form of every set cell.
func (g *Grid) Raw() map[Key]string {
	out := make(map[Key]string, len(g.cells))
	for k, c := range g.cells {
		out[k] = shiftcode.Encode(c)
	}
	return out
}
