package shiftcode

// Bucket is the display style of a cell. Renderers translate buckets into
// their own colors; the palette lives in package roster.
type Bucket string

const (
	BucketNormal   Bucket = "normal"
	BucketDayOff   Bucket = "dayoff"
	BucketKanoya   Bucket = "kanoya"
	BucketKagokita Bucket = "kagokita"
	BucketRecruit  Bucket = "recruit"
	BucketOther    Bucket = "other"
)

// Buckets lists every bucket, normal first.
var Buckets = []Bucket{BucketNormal, BucketDayOff, BucketKanoya, BucketKagokita, BucketRecruit, BucketOther}

// BucketOf classifies a code for display.
func BucketOf(c Code) Bucket {
	switch c.Kind {
	case KindDayOff:
		return BucketDayOff
	case KindOther:
		return BucketOther
	case KindFixed:
		switch c.Location {
		case LocationKanoya:
			return BucketKanoya
		case LocationKagokita:
			return BucketKagokita
		case LocationRecruit:
			return BucketRecruit
		}
	}
	return BucketNormal
}

// Line is one rendered line of a cell. Store is set on assignment lines that
// name a store so renderers can color them.
type Line struct {
	Text  string `json:"text"`
	Store string `json:"store,omitempty"`
	Head  bool   `json:"head,omitempty"`
}

// Cell is the renderer-independent view of a code.
type Cell struct {
	Text   string `json:"text"`
	Bucket Bucket `json:"bucket"`
	Lines  []Line `json:"lines"`
}

// Render builds the cell view shared by the HTML table, the PDFs and the
// spreadsheet export.
func Render(c Code) Cell {
	var lines []Line
	switch c.Kind {
	case KindUnset:
		lines = []Line{{Text: TokenUnset}}
	case KindOther:
		head := TokenOther
		if c.Text != "" {
			head += ": " + c.Text
		}
		lines = []Line{{Text: head, Head: true}}
	default:
		lines = []Line{{Text: c.Token(), Head: true}}
	}
	for _, a := range c.Assignments {
		lines = append(lines, Line{Text: a.String(), Store: a.Store})
	}

	text := ""
	for i, l := range lines {
		if i > 0 {
			text += "\n"
		}
		text += l.Text
	}
	return Cell{Text: text, Bucket: BucketOf(c), Lines: lines}
}
