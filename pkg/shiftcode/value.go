package shiftcode

// DayValue is the contribution of one cell to an employee's shift-day total:
// fixed locations and full-day availability count 1, half-day availability
// 0.5, everything else 0.
func DayValue(c Code) float64 {
	switch c.Kind {
	case KindFixed:
		return 1
	case KindAvailable:
		if c.Window == FullDay {
			return 1
		}
		return 0.5
	}
	return 0
}
