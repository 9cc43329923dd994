package scheduler

import (
	"testing"
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/grid"
	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
)

var december = period.Of(2024, time.December)

func day(s string) time.Time {
	d, _ := period.ParseDate(s)
	return d
}

func TestSpanOf(t *testing.T) {
	tests := []struct {
		in   string
		want Span
		ok   bool
	}{
		{"9-12", Span{540, 720}, true},
		{"9半-13:30", Span{570, 810}, true},
		{"13", Span{780, 840}, true},
		{"13-9", Span{780, 840}, true},
		{"夕方", Span{}, false},
	}
	for _, tt := range tests {
		got, ok := SpanOf(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SpanOf(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAssign(t *testing.T) {
	g := grid.New(december, []string{"alice", "bob", "carol"})
	g.Set(day("2024-12-20"), "alice", shiftcode.Available(shiftcode.FullDay, shiftcode.At("9-12", "店舗A")))
	g.Set(day("2024-12-20"), "bob", shiftcode.Available(shiftcode.FullDay))
	g.Set(day("2024-12-20"), "carol", shiftcode.Available(shiftcode.Morning))

	requests := map[grid.HelpKey]string{
		grid.HelpKeyOf(day("2024-12-20"), "店舗A"): "13-17", // filled by alice
		grid.HelpKeyOf(day("2024-12-20"), "店舗B"): "10-12",
		grid.HelpKeyOf(day("2024-12-20"), "店舗C"): "14-18",
	}

	s := NewScheduler(g, g.Employees, requests)
	if len(s.Requests) != 2 {
		t.Fatalf("filled requests must be skipped, got %d", len(s.Requests))
	}
	res := s.Assign()

	if len(res.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %+v (conflicts %+v)", res.Suggestions, res.Conflicts)
	}
	// alice already holds a store assignment, so bob has the lowest load
	if res.Suggestions[0].Store != "店舗B" || res.Suggestions[0].Employee != "bob" {
		t.Errorf("unexpected first suggestion %+v", res.Suggestions[0])
	}
	// bob now carries one; alice is free after noon and tied, carol is morning only
	if res.Suggestions[1].Store != "店舗C" || res.Suggestions[1].Employee != "alice" {
		t.Errorf("unexpected second suggestion %+v", res.Suggestions[1])
	}
}

func TestAssign_Overlap(t *testing.T) {
	g := grid.New(december, []string{"alice"})
	g.Set(day("2024-12-20"), "alice", shiftcode.Available(shiftcode.FullDay))

	requests := map[grid.HelpKey]string{
		grid.HelpKeyOf(day("2024-12-20"), "店舗A"): "9-12",
		grid.HelpKeyOf(day("2024-12-20"), "店舗B"): "11-13",
	}

	res := NewScheduler(g, g.Employees, requests).Assign()

	if len(res.Suggestions) != 1 {
		t.Fatalf("Expected only 1 suggestion due to overlap, got %d", len(res.Suggestions))
	}
	if len(res.Conflicts) != 1 || res.Conflicts[0].Store != "店舗B" {
		t.Fatalf("expected a conflict for 店舗B, got %+v", res.Conflicts)
	}
	if got := res.Conflicts[0].Reasons[0]; got != "1 employees had overlapping assignments" {
		t.Errorf("unexpected reason %q", got)
	}
}

func TestAssign_NoCandidates(t *testing.T) {
	g := grid.New(december, []string{"alice", "bob"})
	g.Set(day("2024-12-20"), "alice", shiftcode.DayOff())
	g.Set(day("2024-12-20"), "bob", shiftcode.Available(shiftcode.Afternoon))

	requests := map[grid.HelpKey]string{
		grid.HelpKeyOf(day("2024-12-20"), "店舗A"): "9-12",
		grid.HelpKeyOf(day("2025-02-01"), "店舗A"): "9-12", // outside the month
	}

	s := NewScheduler(g, g.Employees, requests)
	res := s.Assign()
	if len(res.Suggestions) != 0 || len(res.Conflicts) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	want := []string{"1 employees were not available", "1 employees were available outside the requested time"}
	got := res.Conflicts[0].Reasons
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("reasons = %v, want %v", got, want)
	}

	res = NewScheduler(g, nil, requests).Assign()
	if res.Conflicts[0].Reasons[0] != "no employees found in this area" {
		t.Errorf("unexpected reason %v", res.Conflicts[0].Reasons)
	}
}

func TestFairnessScore(t *testing.T) {
	s := &Scheduler{Helpers: []*Helper{{Name: "a", Load: 2}, {Name: "b", Load: 2}}}
	if got := s.FairnessScore(); got != 100 {
		t.Errorf("equal loads should score 100, got %v", got)
	}
	s.Helpers[1].Load = 0
	if got := s.FairnessScore(); got != 0 {
		t.Errorf("expected 0 when the deviation reaches the mean, got %v", got)
	}
	if got := (&Scheduler{}).FairnessScore(); got != 100 {
		t.Errorf("no helpers should score 100, got %v", got)
	}
}
