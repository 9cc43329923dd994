package grid

import "github.com/arnavshah/help-scheduler-go/pkg/shiftcode"

// Counts sums each employee's day values over the month. Every total is a
// non-negative multiple of 0.5 no larger than the number of days.
func (g *Grid) Counts(employees []string) map[string]float64 {
	out := make(map[string]float64, len(employees))
	days := g.Month.Days()
	for _, e := range employees {
		var sum float64
		for _, d := range days {
			sum += shiftcode.DayValue(g.Get(d, e))
		}
		out[e] = sum
	}
	return out
}
