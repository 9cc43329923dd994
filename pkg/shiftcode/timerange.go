package shiftcode

import (
	"strconv"
	"strings"
)

// EndOfDay is what StartMinutes reports for ranges it cannot read, which
// sorts them after everything else.
const EndOfDay = 24 * 60

// StartMinutes returns the start of a time range such as "9-12", "9:30-12",
// "9半-13" or "13" in minutes after midnight.
func StartMinutes(timeRange string) int {
	start, _, _ := strings.Cut(strings.TrimSpace(timeRange), "-")
	start = strings.TrimSpace(start)

	minute := 0
	switch {
	case strings.HasSuffix(start, "半"):
		start = strings.TrimSuffix(start, "半")
		minute = 30
	case strings.Contains(start, ":"):
		h, m, _ := strings.Cut(start, ":")
		mm, err := strconv.Atoi(m)
		if err != nil || mm < 0 || mm > 59 {
			return EndOfDay
		}
		start, minute = h, mm
	}

	hour, err := strconv.Atoi(start)
	if err != nil || hour < 0 || hour > 23 {
		return EndOfDay
	}
	return hour*60 + minute
}
