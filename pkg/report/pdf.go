package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arnavshah/help-scheduler-go/pkg/calendar"
	"github.com/arnavshah/help-scheduler-go/pkg/roster"
	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
	"github.com/go-pdf/fpdf"
)

// ErrNoFont is returned when a PDF is requested without a Japanese font.
var ErrNoFont = errors.New("no PDF font configured")

const fontFamily = "jp"

// Fonts holds the TrueType data embedded in every PDF.
type Fonts struct {
	Regular []byte
	Bold    []byte
}

// LoadFonts reads the regular and bold font files. The bold face is
// optional and falls back to the regular one.
func LoadFonts(regular, bold string) (*Fonts, error) {
	if regular == "" {
		return nil, ErrNoFont
	}
	r, err := os.ReadFile(regular)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFont, err)
	}
	f := &Fonts{Regular: r, Bold: r}
	if bold != "" {
		if b, err := os.ReadFile(bold); err == nil {
			f.Bold = b
		}
	}
	return f, nil
}

// PDF draws reports with one palette and font set.
type PDF struct {
	Palette *roster.Palette
	Fonts   *Fonts
}

// NewPDF returns a PDF renderer. fonts may be nil, in which case every
// Write method fails with ErrNoFont.
func NewPDF(p *roster.Palette, fonts *Fonts) *PDF {
	return &PDF{Palette: p, Fonts: fonts}
}

func (r *PDF) document(orientation string, size fpdf.SizeType, margin float64) (*fpdf.Fpdf, error) {
	if r.Fonts == nil || len(r.Fonts.Regular) == 0 {
		return nil, ErrNoFont
	}
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           size,
	})
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(false, margin)
	doc.AddUTF8FontFromBytes(fontFamily, "", r.Fonts.Regular)
	doc.AddUTF8FontFromBytes(fontFamily, "B", r.Fonts.Bold)
	return doc, doc.Error()
}

var a4 = fpdf.SizeType{Wd: 210, Ht: 297}

// WriteHelpTable draws the two-page help table.
func (r *PDF) WriteHelpTable(w io.Writer, tables []HelpTable) error {
	// landscape A4, enlarged so every employee gets a column
	doc, err := r.document("L", fpdf.SizeType{Wd: a4.Wd * 1.1, Ht: a4.Ht * 1.2}, 5)
	if err != nil {
		return err
	}
	for _, t := range tables {
		doc.AddPage()
		r.title(doc, t.Title)

		pageW, _ := doc.GetPageSize()
		left, _, right, _ := doc.GetMargins()
		dateW, weekdayW := 30.0, 12.0
		empW := (pageW - left - right - dateW - weekdayW) / float64(max(len(t.Employees), 1))

		tb := table{widths: []float64{dateW, weekdayW}, header: []string{"日付", "曜日"}, fontSize: 8}
		for _, e := range t.Employees {
			tb.widths = append(tb.widths, empW)
			tb.header = append(tb.header, e)
		}
		for _, row := range t.Rows {
			tr := r.dayRow(row.Day, row.Day.Label(), row.Day.Weekday)
			for _, c := range row.Cells {
				tr.cells = append(tr.cells, r.shiftCell(c))
			}
			tb.rows = append(tb.rows, tr)
		}
		r.draw(doc, tb)
	}
	return output(doc, w)
}

// WriteEmployee draws an employee's schedule.
func (r *PDF) WriteEmployee(w io.Writer, t EmployeeTable) error {
	doc, err := r.document("P", a4, 10)
	if err != nil {
		return err
	}
	doc.AddPage()
	r.title(doc, t.Title)

	tb := table{widths: []float64{20, 15}, header: []string{"日付", "曜日"}, fontSize: 8}
	for i := 0; i < t.Columns; i++ {
		tb.widths = append(tb.widths, 30)
		tb.header = append(tb.header, fmt.Sprintf("シフト%d", i+1))
	}
	for _, row := range t.Rows {
		tr := r.dayRow(row.Day, shortDate(row.Day.Date), row.Day.Weekday)
		fill := r.Palette.BucketColor(row.Cell.Bucket)
		for i := 0; i < t.Columns; i++ {
			c := tableCell{}
			if i < len(row.Cell.Lines) {
				l := row.Cell.Lines[i]
				c.lines = []textLine{{text: l.Text, color: r.Palette.LineColor(l), bold: l.Head || l.Store != ""}}
				if l.Head {
					c.fill = fill
				}
			}
			tr.cells = append(tr.cells, c)
		}
		tb.rows = append(tb.rows, tr)
	}
	r.draw(doc, tb)
	return output(doc, w)
}

// WriteStore draws a store's schedule.
func (r *PDF) WriteStore(w io.Writer, t StoreTable) error {
	doc, err := r.document("P", a4, 7)
	if err != nil {
		return err
	}
	doc.AddPage()
	r.title(doc, t.Title)

	tb := table{
		widths:   []float64{34, 34, 60, 48},
		header:   []string{"日にち", "時間", "ヘルプ担当", "備考"},
		fontSize: 9,
	}
	for _, row := range t.Rows {
		tr := tableRow{fill: r.Palette.RowColor(row.Day.Row())}
		tr.cells = append(tr.cells, plainCell(storeDate(row.Day), r.Palette.Text, false))

		if len(row.Helpers) == 0 {
			tr.cells = append(tr.cells, plainCell("-", r.Palette.Text, false), plainCell("-", r.Palette.Text, false))
		} else {
			var times, names tableCell
			for _, h := range row.Helpers {
				times.lines = append(times.lines, textLine{text: h.Time, color: r.Palette.Text, bold: true})
				names.lines = append(names.lines, textLine{text: h.Label(), color: r.Palette.Text, bold: true})
			}
			tr.cells = append(tr.cells, times, names)
		}

		remark := ""
		if row.Request != "" {
			remark = "依頼 " + row.Request
		}
		tr.cells = append(tr.cells, plainCell(remark, r.Palette.Text, false))
		tb.rows = append(tb.rows, tr)
	}
	r.draw(doc, tb)
	return output(doc, w)
}

func (r *PDF) title(doc *fpdf.Fpdf, title string) {
	doc.SetFont(fontFamily, "B", 16)
	setText(doc, r.Palette.Text)
	doc.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	doc.Ln(3)
}

func (r *PDF) dayRow(d calendar.Day, date, weekday string) tableRow {
	return tableRow{
		fill: r.Palette.RowColor(d.Row()),
		cells: []tableCell{
			plainCell(date, r.Palette.Text, true),
			plainCell(weekday, r.Palette.Text, true),
		},
	}
}

func (r *PDF) shiftCell(c shiftcode.Cell) tableCell {
	out := tableCell{fill: r.Palette.BucketColor(c.Bucket)}
	for _, l := range c.Lines {
		out.lines = append(out.lines, textLine{text: l.Text, color: r.Palette.LineColor(l), bold: true})
	}
	return out
}

type textLine struct {
	text  string
	color string
	bold  bool
}

type tableCell struct {
	lines []textLine
	fill  string
}

func plainCell(text, color string, bold bool) tableCell {
	return tableCell{lines: []textLine{{text: text, color: color, bold: bold}}}
}

type tableRow struct {
	cells []tableCell
	fill  string
}

type table struct {
	widths   []float64
	header   []string
	rows     []tableRow
	fontSize float64
}

const cellPad = 1.0

// draw lays out t from the current position, breaking pages between rows
// and repeating the header on each page.
func (r *PDF) draw(doc *fpdf.Fpdf, t table) {
	lineH := t.fontSize * 0.45
	_, pageH := doc.GetPageSize()
	_, _, _, bottom := doc.GetMargins()
	doc.SetLineWidth(0.2)
	doc.SetDrawColor(0, 0, 0)

	header := func() {
		row := tableRow{fill: r.Palette.Header}
		for _, h := range t.header {
			row.cells = append(row.cells, plainCell(h, "#FFFFFF", true))
		}
		r.drawRow(doc, t, row, lineH+2*cellPad, lineH)
	}

	header()
	for _, row := range t.rows {
		n := 1
		for _, c := range row.cells {
			n = max(n, len(c.lines))
		}
		h := float64(n)*lineH + 2*cellPad
		if doc.GetY()+h > pageH-bottom {
			doc.AddPage()
			header()
		}
		r.drawRow(doc, t, row, h, lineH)
	}
}

func (r *PDF) drawRow(doc *fpdf.Fpdf, t table, row tableRow, h, lineH float64) {
	left, _, _, _ := doc.GetMargins()
	x, y := left, doc.GetY()
	for i, w := range t.widths {
		var c tableCell
		if i < len(row.cells) {
			c = row.cells[i]
		}
		fill := row.fill
		if c.fill != "" {
			fill = c.fill
		}
		if fill != "" {
			setFill(doc, fill)
			doc.Rect(x, y, w, h, "FD")
		} else {
			doc.Rect(x, y, w, h, "D")
		}

		top := y + (h-float64(len(c.lines))*lineH)/2
		for j, l := range c.lines {
			style := ""
			if l.bold {
				style = "B"
			}
			doc.SetFont(fontFamily, style, t.fontSize)
			setText(doc, l.color)
			doc.SetXY(x, top+float64(j)*lineH)
			doc.CellFormat(w, lineH, fit(doc, l.text, w-2*cellPad), "", 0, "C", false, 0, "")
		}
		x += w
	}
	doc.SetXY(left, y+h)
}

// fit shortens s until it fits in w.
func fit(doc *fpdf.Fpdf, s string, w float64) string {
	if doc.GetStringWidth(s) <= w {
		return s
	}
	rs := []rune(s)
	for len(rs) > 0 && doc.GetStringWidth(string(rs)+"…") > w {
		rs = rs[:len(rs)-1]
	}
	return string(rs) + "…"
}

func output(doc *fpdf.Fpdf, w io.Writer) error {
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func setFill(doc *fpdf.Fpdf, hex string) {
	r, g, b := rgb(hex)
	doc.SetFillColor(r, g, b)
}

func setText(doc *fpdf.Fpdf, hex string) {
	r, g, b := rgb(hex)
	doc.SetTextColor(r, g, b)
}

// rgb parses #RRGGBB; anything else is black.
func rgb(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
