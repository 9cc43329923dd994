// Package scheduler proposes helpers for store help requests nobody covers
// yet. It never writes to the schedule: the editor decides.
package scheduler

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/grid"
	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
)

// Noon splits morning from afternoon availability.
const Noon = 12 * 60

// Span is a time range in minutes after midnight.
type Span struct {
	Start, End int
}

// SpanOf reads a range such as "9-12" or "9半-13:30". A range without an end
// lasts one hour. ok is false when the start cannot be read.
func SpanOf(timeRange string) (Span, bool) {
	start := shiftcode.StartMinutes(timeRange)
	if start == shiftcode.EndOfDay {
		return Span{}, false
	}
	end := start + 60
	if _, rest, found := strings.Cut(timeRange, "-"); found {
		if e := shiftcode.StartMinutes(rest); e != shiftcode.EndOfDay && e > start {
			end = e
		}
	}
	return Span{Start: start, End: end}, true
}

// Overlap checks if two spans overlap
func (s Span) Overlap(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Scheduler handles the logic of suggesting helpers for help requests
type Scheduler struct {
	Grid      *grid.Grid
	Helpers   []*Helper
	Requests  []Request
	Conflicts []ConflictReason

	daySpans map[string]map[string][]Span // employee -> date -> busy spans
}

// NewScheduler prepares a run over the unfilled requests of g. employees are
// the candidates in preference order for equal loads.
func NewScheduler(g *grid.Grid, employees []string, requests map[grid.HelpKey]string) *Scheduler {
	s := &Scheduler{Grid: g, daySpans: make(map[string]map[string][]Span)}

	counts := g.Counts(employees)
	for _, e := range employees {
		h := &Helper{Name: e, Days: counts[e]}
		s.daySpans[e] = make(map[string][]Span)
		for _, d := range g.Month.Days() {
			date := dateKey(d)
			for _, a := range g.Get(d, e).Assignments {
				if a.Store != "" {
					h.Load++
				}
				if sp, ok := SpanOf(a.Time); ok {
					s.daySpans[e][date] = append(s.daySpans[e][date], sp)
				}
			}
		}
		s.Helpers = append(s.Helpers, h)
	}

	filled := grid.FillIndex(g, requests)
	for k, tr := range requests {
		if filled[k] {
			continue
		}
		d, err := period.ParseDate(k.Date)
		if err != nil || !g.Month.Contains(d) {
			continue
		}
		sp, _ := SpanOf(tr)
		s.Requests = append(s.Requests, Request{Date: d, Store: k.Store, TimeRange: tr, Span: sp})
	}
	sort.Slice(s.Requests, func(i, j int) bool {
		a, b := s.Requests[i], s.Requests[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Store < b.Store
	})
	return s
}

// Allows checks if a helper's availability on the request date covers it
func (s *Scheduler) Allows(h *Helper, r Request) (available, inWindow bool) {
	code := s.Grid.Get(r.Date, h.Name)
	if code.Kind != shiftcode.KindAvailable {
		return false, false
	}
	switch code.Window {
	case shiftcode.Morning:
		return true, r.Span.Start < Noon
	case shiftcode.Afternoon:
		return true, r.Span.Start >= Noon
	}
	return true, true
}

// WouldOverlap checks if a helper's assignments that day overlap the request
func (s *Scheduler) WouldOverlap(h *Helper, r Request) bool {
	for _, sp := range s.daySpans[h.Name][dateKey(r.Date)] {
		if sp.Overlap(r.Span) {
			return true
		}
	}
	return false
}

// Assign implements a greedy assignment: every request goes to the allowed,
// free helper with the lowest load.
func (s *Scheduler) Assign() Result {
	var res Result
	for _, r := range s.Requests {
		var best *Helper
		unavailable, outside, overlapping := 0, 0, 0

		for _, h := range s.Helpers {
			available, inWindow := s.Allows(h, r)
			noOverlap := !s.WouldOverlap(h, r)

			if available && inWindow && noOverlap {
				if best == nil || h.Load < best.Load {
					best = h
				}
				continue
			}
			switch {
			case !available:
				unavailable++
			case !inWindow:
				outside++
			default:
				overlapping++
			}
		}

		if best != nil {
			best.Load++
			date := dateKey(r.Date)
			s.daySpans[best.Name][date] = append(s.daySpans[best.Name][date], r.Span)
			res.Suggestions = append(res.Suggestions, Suggestion{
				Date:      date,
				Store:     r.Store,
				TimeRange: r.TimeRange,
				Employee:  best.Name,
			})
			continue
		}

		var reasons []string
		if unavailable > 0 {
			reasons = append(reasons, fmt.Sprintf("%d employees were not available", unavailable))
		}
		if outside > 0 {
			reasons = append(reasons, fmt.Sprintf("%d employees were available outside the requested time", outside))
		}
		if overlapping > 0 {
			reasons = append(reasons, fmt.Sprintf("%d employees had overlapping assignments", overlapping))
		}
		if len(reasons) == 0 {
			reasons = append(reasons, "no employees found in this area")
		}
		s.Conflicts = append(s.Conflicts, ConflictReason{Date: dateKey(r.Date), Store: r.Store, Reasons: reasons})
	}

	res.Conflicts = s.Conflicts
	res.FairnessScore = s.FairnessScore()
	res.Helpers = s.Helpers
	return res
}

// FairnessScore returns a percentage (0-100) representing how evenly store
// assignments are spread. 100% means every helper carries the same load.
func (s *Scheduler) FairnessScore() float64 {
	if len(s.Helpers) == 0 {
		return 100.0
	}

	var sum float64
	for _, h := range s.Helpers {
		sum += float64(h.Load)
	}
	if sum == 0 {
		return 100.0
	}

	mean := sum / float64(len(s.Helpers))
	var varianceSum float64
	for _, h := range s.Helpers {
		diff := float64(h.Load) - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(s.Helpers)))

	// 0% once the deviation reaches the mean
	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}

func dateKey(d time.Time) string { return d.Format(period.DateLayout) }
