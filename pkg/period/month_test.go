package period

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindow(t *testing.T) {
	tests := []struct {
		year       int
		month      time.Month
		start, end time.Time
		days       int
	}{
		{2024, time.December, date(2024, 12, 16), date(2025, 1, 15), 31},
		{2024, time.February, date(2024, 2, 16), date(2024, 3, 15), 29},
		{2023, time.February, date(2023, 2, 16), date(2023, 3, 15), 28},
		{2024, time.January, date(2024, 1, 16), date(2024, 2, 15), 31},
		{2024, time.April, date(2024, 4, 16), date(2024, 5, 15), 30},
	}

	for _, tt := range tests {
		m := Of(tt.year, tt.month)
		start, end := m.Window()
		if !start.Equal(tt.start) || !end.Equal(tt.end) {
			t.Errorf("%s: window = %s..%s, want %s..%s", m, start.Format(DateLayout), end.Format(DateLayout),
				tt.start.Format(DateLayout), tt.end.Format(DateLayout))
		}
		days := m.Days()
		if len(days) != tt.days || m.Len() != tt.days {
			t.Errorf("%s: expected %d days, got %d (Len %d)", m, tt.days, len(days), m.Len())
		}
		if !days[0].Equal(tt.start) || !days[len(days)-1].Equal(tt.end) {
			t.Errorf("%s: days do not span the window", m)
		}
		for i := 1; i < len(days); i++ {
			if days[i].Sub(days[i-1]) != 24*time.Hour {
				t.Fatalf("%s: days not consecutive at %d", m, i)
			}
		}
	}
}

func TestContaining(t *testing.T) {
	tests := []struct {
		d    time.Time
		want Month
	}{
		{date(2024, 12, 20), Month{2024, time.December}},
		{date(2025, 1, 15), Month{2024, time.December}},
		{date(2025, 1, 16), Month{2025, time.January}},
		{date(2024, 3, 1), Month{2024, time.February}},
	}
	for _, tt := range tests {
		if got := Containing(tt.d); got != tt.want {
			t.Errorf("Containing(%s) = %s, want %s", tt.d.Format(DateLayout), got, tt.want)
		}
		if !tt.want.Contains(tt.d) {
			t.Errorf("%s should contain %s", tt.want, tt.d.Format(DateLayout))
		}
	}
}

func TestHalves(t *testing.T) {
	h := Of(2024, time.December).Halves()
	want := [2][2]time.Time{
		{date(2024, 12, 16), date(2024, 12, 31)},
		{date(2025, 1, 1), date(2025, 1, 15)},
	}
	if h != want {
		t.Errorf("Halves = %v, want %v", h, want)
	}
}

func TestClamp(t *testing.T) {
	m := Of(2024, time.June)
	if got := m.Clamp(date(2024, 5, 1)); !got.Equal(m.Start()) {
		t.Errorf("early date clamped to %s", got)
	}
	if got := m.Clamp(date(2024, 8, 1)); !got.Equal(m.End()) {
		t.Errorf("late date clamped to %s", got)
	}
	inside := time.Date(2024, 6, 30, 15, 4, 0, 0, time.UTC)
	if got := m.Clamp(inside); !got.Equal(date(2024, 6, 30)) {
		t.Errorf("inside date clamped to %s", got)
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse(2024, 13); err == nil {
		t.Errorf("expected error for month 13")
	}
	m, err := Parse(2024, 12)
	if err != nil || m.Next() != (Month{2025, time.January}) || m.Prev() != (Month{2024, time.November}) {
		t.Errorf("unexpected month navigation from %v (%v)", m, err)
	}
}
