package shiftcode

// Kind is the top-level classification of a shift string.
type Kind int

const (
	KindUnset Kind = iota
	KindDayOff
	KindFixed
	KindAvailable
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindDayOff:
		return "dayoff"
	case KindFixed:
		return "fixed"
	case KindAvailable:
		return "available"
	case KindOther:
		return "other"
	}
	return "unset"
}

// Window is the availability window of an Available shift.
type Window int

const (
	Morning Window = iota + 1
	Afternoon
	FullDay
)

// Tokens as they appear in persisted shift strings.
const (
	TokenUnset     = "-"
	TokenDayOff    = "休み"
	TokenOther     = "その他"
	TokenMorning   = "AM可"
	TokenAfternoon = "PM可"
	TokenFullDay   = "1日可"

	LocationKanoya   = "鹿屋"
	LocationKagokita = "かご北"
	LocationRecruit  = "リクルート"
)

// Locations lists the fixed locations in editor order.
var Locations = []string{LocationKanoya, LocationKagokita, LocationRecruit}

// Token returns the persisted token of the window.
func (w Window) Token() string {
	switch w {
	case Morning:
		return TokenMorning
	case Afternoon:
		return TokenAfternoon
	case FullDay:
		return TokenFullDay
	}
	return ""
}

// WindowOf maps an availability token to its window.
func WindowOf(token string) (Window, bool) {
	switch token {
	case TokenMorning:
		return Morning, true
	case TokenAfternoon:
		return Afternoon, true
	case TokenFullDay:
		return FullDay, true
	}
	return 0, false
}

// IsLocation reports whether name is one of the fixed locations.
func IsLocation(name string) bool {
	for _, l := range Locations {
		if l == name {
			return true
		}
	}
	return false
}

// Assignment binds a time range to an optional store. Store is empty when no
// store was chosen.
type Assignment struct {
	Time  string `json:"time"`
	Store string `json:"store,omitempty"`
}

func (a Assignment) String() string {
	if a.Store == "" {
		return a.Time
	}
	return a.Time + "@" + a.Store
}

// Code is one employee's entry for one day.
type Code struct {
	Kind        Kind
	Location    string // KindFixed only
	Window      Window // KindAvailable only
	Text        string // KindOther only
	Assignments []Assignment
}

// Unset returns the empty cell value.
func Unset() Code { return Code{} }

// DayOff returns a day-off entry.
func DayOff() Code { return Code{Kind: KindDayOff} }

// Fixed returns a fixed-location entry.
func Fixed(location string) Code { return Code{Kind: KindFixed, Location: location} }

// Available returns an availability entry with the given assignments.
func Available(w Window, as ...Assignment) Code {
	return Code{Kind: KindAvailable, Window: w, Assignments: nonEmpty(as)}
}

// Other returns a free-text entry, optionally followed by assignments.
func Other(text string, as ...Assignment) Code {
	return Code{Kind: KindOther, Text: text, Assignments: nonEmpty(as)}
}

// At is shorthand for an assignment with a store.
func At(time, store string) Assignment { return Assignment{Time: time, Store: store} }

func nonEmpty(as []Assignment) []Assignment {
	if len(as) == 0 {
		return nil
	}
	return as
}

// Token returns the leading token of the persisted form.
func (c Code) Token() string {
	switch c.Kind {
	case KindDayOff:
		return TokenDayOff
	case KindFixed:
		return c.Location
	case KindAvailable:
		return c.Window.Token()
	case KindOther:
		return TokenOther
	}
	return TokenUnset
}

// IsUnset reports whether the cell carries no entry.
func (c Code) IsUnset() bool { return c.Kind == KindUnset }

// HasStore reports whether any assignment names the store.
func (c Code) HasStore(store string) bool {
	for _, a := range c.Assignments {
		if a.Store == store {
			return true
		}
	}
	return false
}

// Equal compares two codes structurally, treating nil and empty assignment
// lists alike.
func (c Code) Equal(o Code) bool {
	if c.Kind != o.Kind || c.Location != o.Location || c.Window != o.Window || c.Text != o.Text {
		return false
	}
	if len(c.Assignments) != len(o.Assignments) {
		return false
	}
	for i := range c.Assignments {
		if c.Assignments[i] != o.Assignments[i] {
			return false
		}
	}
	return true
}
