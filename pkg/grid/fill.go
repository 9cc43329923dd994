package grid

import (
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/period"
)

// HelpKey addresses one store's help request on one date.
type HelpKey struct {
	Date  string // YYYY-MM-DD
	Store string
}

// HelpKeyOf builds a help key from a date and a store.
func HelpKeyOf(date time.Time, store string) HelpKey {
	return HelpKey{Date: date.Format(period.DateLayout), Store: store}
}

// Filled reports whether any employee on the grid is assigned to store on
// date. Only the store name is compared: an assignment at 13-18 fills a
// request for 9-12.
func (g *Grid) Filled(date time.Time, store string) bool {
	for _, e := range g.Employees {
		if g.Get(date, e).HasStore(store) {
			return true
		}
	}
	return false
}

// FillIndex computes the filled flag of every request.
func FillIndex(g *Grid, requests map[HelpKey]string) map[HelpKey]bool {
	out := make(map[HelpKey]bool, len(requests))
	for k := range requests {
		d, err := period.ParseDate(k.Date)
		if err != nil {
			out[k] = false
			continue
		}
		out[k] = g.Filled(d, k.Store)
	}
	return out
}
