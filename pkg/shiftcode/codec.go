package shiftcode

import "strings"

const (
	fieldSep = ","
	storeSep = "@"
)

// Decode parses a persisted shift string. It never fails: anything it does not
// recognise comes back as an Other entry carrying the raw string, so legacy or
// hand-edited values still render.
func Decode(raw string) Code {
	if strings.TrimSpace(raw) == "" || raw == TokenUnset {
		return Unset()
	}

	head, rest, hasRest := strings.Cut(raw, fieldSep)

	switch {
	case head == TokenDayOff:
		return DayOff()
	case IsLocation(head):
		// trailing fields after a fixed kind are legacy noise
		return Fixed(head)
	case head == TokenOther:
		if !hasRest {
			return Other("")
		}
		return decodeOther(rest)
	}

	if w, ok := WindowOf(head); ok {
		if !hasRest {
			return Available(w)
		}
		return Available(w, decodeAssignments(strings.Split(rest, fieldSep))...)
	}

	return Other(raw)
}

// decodeOther splits the remainder of an "その他" string. The first segment is
// the description; later segments become assignments only when at least one
// of them uses the time@store form. Otherwise the whole remainder is text.
func decodeOther(rest string) Code {
	segs := strings.Split(rest, fieldSep)
	if len(segs) < 2 {
		return Other(rest)
	}
	tail := segs[1:]
	for _, s := range tail {
		if strings.Contains(s, storeSep) {
			return Other(segs[0], decodeAssignments(tail)...)
		}
	}
	return Other(rest)
}

func decodeAssignments(tokens []string) []Assignment {
	var out []Assignment
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		t, store, _ := strings.Cut(tok, storeSep)
		out = append(out, Assignment{Time: t, Store: store})
	}
	return out
}

// Encode renders the canonical persisted form of c.
func Encode(c Code) string {
	parts := []string{c.Token()}
	switch c.Kind {
	case KindAvailable:
	case KindOther:
		if c.Text == "" && len(c.Assignments) == 0 {
			return TokenOther
		}
		parts = append(parts, c.Text)
	default:
		return parts[0]
	}
	for _, a := range c.Assignments {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, fieldSep)
}

func (c Code) String() string { return Encode(c) }
