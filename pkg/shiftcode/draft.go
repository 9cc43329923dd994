package shiftcode

import (
	"errors"
	"fmt"
	"strings"
)

// MaxRows is the number of time/store rows the editor offers.
const MaxRows = 5

var (
	ErrUnknownKind = errors.New("unknown shift kind")
	ErrTooManyRows = fmt.Errorf("at most %d time rows", MaxRows)
	ErrBadRow      = errors.New("time and store must not contain ',' or '@'")
)

// Draft is what the shift editor submits: the kind token picked in the form,
// the time/store rows and, for その他, a description.
type Draft struct {
	Kind string       `json:"kind"`
	Text string       `json:"text,omitempty"`
	Rows []Assignment `json:"rows,omitempty"`
}

// Build turns a draft into a Code following the editor's rules. Every code it
// returns survives Encode followed by Decode unchanged.
func (d Draft) Build() (Code, error) {
	kind := strings.TrimSpace(d.Kind)
	switch {
	case kind == "" || kind == TokenUnset:
		return Unset(), nil
	case kind == TokenDayOff:
		return DayOff(), nil
	case IsLocation(kind):
		return Fixed(kind), nil
	}

	rows, err := d.rows()
	if err != nil {
		return Code{}, err
	}

	if w, ok := WindowOf(kind); ok {
		return Available(w, rows...), nil
	}
	if kind != TokenOther {
		return Code{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	// Store-less rows only read back as rows when one row names a store.
	// Otherwise they would decode as description text, so they are dropped.
	stored := false
	for _, r := range rows {
		if r.Store != "" {
			stored = true
			break
		}
	}
	if !stored {
		rows = nil
	}
	text := d.Text
	if stored || (strings.Contains(text, fieldSep) && strings.Contains(text, storeSep)) {
		text = strings.ReplaceAll(text, fieldSep, "、")
	}
	return Other(text, rows...), nil
}

func (d Draft) rows() ([]Assignment, error) {
	if len(d.Rows) > MaxRows {
		return nil, ErrTooManyRows
	}
	var out []Assignment
	for _, r := range d.Rows {
		t := strings.TrimSpace(r.Time)
		if t == "" {
			continue
		}
		if strings.ContainsAny(t, fieldSep+storeSep) || strings.ContainsAny(r.Store, fieldSep+storeSep) {
			return nil, ErrBadRow
		}
		out = append(out, Assignment{Time: t, Store: strings.TrimSpace(r.Store)})
	}
	return out, nil
}

// DraftOf is the inverse of Build, used to prefill the editor. An その他 code
// keeps all of its rows, including rows without a store, as long as one of
// them has a store.
func DraftOf(c Code) Draft {
	d := Draft{Kind: c.Token(), Text: c.Text}
	if len(c.Assignments) > 0 {
		d.Rows = append([]Assignment(nil), c.Assignments...)
	}
	return d
}

// EditorKinds lists the kinds offered by the editor, in form order.
var EditorKinds = []string{
	TokenMorning, TokenAfternoon, TokenFullDay, TokenUnset, TokenDayOff,
	LocationKanoya, LocationKagokita, LocationRecruit, TokenOther,
}
