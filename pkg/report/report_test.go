package report

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/calendar"
	"github.com/arnavshah/help-scheduler-go/pkg/grid"
	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"github.com/arnavshah/help-scheduler-go/pkg/roster"
	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
	"github.com/xuri/excelize/v2"
)

var december = period.Of(2024, time.December)

func testGrid() (*grid.Grid, []calendar.Day) {
	g := grid.FromRaw(december, []string{"alice", "bob", "carol"}, map[grid.Key]string{
		{Date: "2024-12-20", Employee: "alice"}: "PM可,13-18@店舗A",
		{Date: "2024-12-20", Employee: "bob"}:   "1日可,9半-12@店舗A,13-15@店舗B",
		{Date: "2024-12-20", Employee: "carol"}: "その他,研修,9-11@店舗A",
		{Date: "2024-12-21", Employee: "alice"}: "AM可,xx@店舗A",
		{Date: "2024-12-21", Employee: "bob"}:   "AM可,10-12@店舗A",
		{Date: "2025-01-02", Employee: "alice"}: "休み",
		{Date: "2025-01-03", Employee: "bob"}:   "鹿屋",
	})
	return g, calendar.Days(december, calendar.NewSet("2025-01-01"))
}

func TestHelpTables(t *testing.T) {
	g, days := testGrid()
	tables := HelpTables(g, days, []string{"alice", "bob"}, "鹿児島")
	if len(tables) != 2 {
		t.Fatalf("expected two pages, got %d", len(tables))
	}
	if len(tables[0].Rows) != 16 || len(tables[1].Rows) != 15 {
		t.Errorf("unexpected page sizes %d/%d", len(tables[0].Rows), len(tables[1].Rows))
	}
	if tables[0].Title != "鹿児島 2024年12月16日～2024年12月31日 ヘルプ表" {
		t.Errorf("first title = %q", tables[0].Title)
	}
	if !strings.HasPrefix(tables[1].Title, "鹿児島 2025年01月01日～2025年01月15日") {
		t.Errorf("second title = %q", tables[1].Title)
	}
	first := tables[1].Rows[0]
	if first.Day.Class != calendar.PublicHoliday {
		t.Errorf("2025-01-01 should be a holiday row")
	}
	if len(first.Cells) != 2 {
		t.Errorf("expected one cell per selected employee")
	}
	dayOff := tables[1].Rows[1].Cells[0]
	if dayOff.Bucket != shiftcode.BucketDayOff || dayOff.Text != "休み" {
		t.Errorf("unexpected cell %+v", dayOff)
	}

	noArea := HelpTables(g, days, g.Employees, "")
	if strings.HasPrefix(noArea[0].Title, " ") {
		t.Errorf("title without area should not start with a space: %q", noArea[0].Title)
	}
}

func TestEmployee(t *testing.T) {
	g, days := testGrid()
	tbl := Employee(g, days, "bob")
	if tbl.Columns != 3 {
		t.Errorf("expected 3 columns for head plus two assignments, got %d", tbl.Columns)
	}
	if len(tbl.Rows) != december.Len() {
		t.Errorf("expected a row per day, got %d", len(tbl.Rows))
	}
	if tbl.Title != "bobさん 2024年12月 シフト表" {
		t.Errorf("title = %q", tbl.Title)
	}

	empty := Employee(g, days, "nobody")
	if empty.Columns != 1 {
		t.Errorf("an empty schedule still has one column, got %d", empty.Columns)
	}
}

func TestStore(t *testing.T) {
	g, days := testGrid()
	requests := map[grid.HelpKey]string{{Date: "2024-12-20", Store: "店舗A"}: "9-18"}
	tbl := Store(g, days, "店舗A", requests)

	var row20, row21 StoreRow
	for _, r := range tbl.Rows {
		switch r.Day.Label() {
		case "2024-12-20":
			row20 = r
		case "2024-12-21":
			row21 = r
		}
	}

	var got []string
	for _, h := range row20.Helpers {
		got = append(got, h.Time+" "+h.Label())
	}
	want := []string{"9-11 carol (研修)", "9半-12 bob", "13-18 alice"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("helpers = %v, want %v", got, want)
	}
	if row20.Request != "9-18" {
		t.Errorf("request = %q", row20.Request)
	}

	if len(row21.Helpers) != 2 || row21.Helpers[0].Employee != "bob" || row21.Helpers[1].Time != "xx" {
		t.Errorf("unreadable time should sort last, got %+v", row21.Helpers)
	}
	if tbl.Title != "2024年12月 店舗A" {
		t.Errorf("title = %q", tbl.Title)
	}
}

func TestFileNames(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{HelpPDFName(december), "全ヘルプスタッフ_2024_12.pdf"},
		{EmployeePDFName(december, "田中"), "田中さん_2024年12月16日～2025年01月15日_シフト.pdf"},
		{StorePDFName(december, "谷山店"), "12月_谷山店.pdf"},
		{HelpXLSXName(december), "ヘルプ表_2024年12月.xlsx"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestWriteHelpXLSX(t *testing.T) {
	g, days := testGrid()
	var buf bytes.Buffer
	if err := WriteHelpXLSX(&buf, g, days, g.Employees, roster.DefaultPalette()); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	sheet := SheetName(g)
	if got, _ := f.GetCellValue(sheet, "C3"); got != "alice" {
		t.Errorf("header C3 = %q", got)
	}
	// 2024-12-20 is the fifth day, row 8
	if got, _ := f.GetCellValue(sheet, "A8"); got != "2024-12-20" {
		t.Errorf("A8 = %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "D8"); !strings.Contains(got, "13-15@店舗B") {
		t.Errorf("D8 should list bob's assignments, got %q", got)
	}

	totalRow := firstRow + december.Len()
	if got, _ := f.GetCellValue(sheet, cell(1, totalRow)); got != "合計" {
		t.Errorf("totals label = %q", got)
	}
	if got, _ := f.GetCellValue(sheet, cell(4, totalRow), excelize.Options{RawCellValue: true}); got != "2.5" {
		t.Errorf("bob's total = %q, want 2.5", got)
	}
}

func TestPDFWithoutFont(t *testing.T) {
	g, days := testGrid()
	r := NewPDF(roster.DefaultPalette(), nil)
	if err := r.WriteEmployee(&bytes.Buffer{}, Employee(g, days, "alice")); !errors.Is(err, ErrNoFont) {
		t.Errorf("expected ErrNoFont, got %v", err)
	}
	if _, err := LoadFonts("", ""); !errors.Is(err, ErrNoFont) {
		t.Errorf("expected ErrNoFont for an empty path, got %v", err)
	}
	if _, err := LoadFonts("/does/not/exist.ttf", ""); !errors.Is(err, ErrNoFont) {
		t.Errorf("expected ErrNoFont for a missing file, got %v", err)
	}
}

// TestPDF renders every report when a Japanese font is configured.
func TestPDF(t *testing.T) {
	path := os.Getenv("PDF_FONT_PATH")
	if path == "" {
		t.Skip("PDF_FONT_PATH not set")
	}
	fonts, err := LoadFonts(path, os.Getenv("PDF_BOLD_FONT_PATH"))
	if err != nil {
		t.Fatalf("load fonts: %v", err)
	}
	g, days := testGrid()
	r := NewPDF(roster.DefaultPalette(), fonts)

	outputs := map[string]func(*bytes.Buffer) error{
		"help":     func(b *bytes.Buffer) error { return r.WriteHelpTable(b, HelpTables(g, days, g.Employees, "")) },
		"employee": func(b *bytes.Buffer) error { return r.WriteEmployee(b, Employee(g, days, "bob")) },
		"store":    func(b *bytes.Buffer) error { return r.WriteStore(b, Store(g, days, "店舗A", nil)) },
	}
	for name, write := range outputs {
		var buf bytes.Buffer
		if err := write(&buf); err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
			t.Errorf("%s: output is not a PDF", name)
		}
	}
}

func TestRGB(t *testing.T) {
	r, g, b := rgb("#C00000")
	if r != 192 || g != 0 || b != 0 {
		t.Errorf("rgb(#C00000) = %d,%d,%d", r, g, b)
	}
	if r, g, b := rgb("teal"); r+g+b != 0 {
		t.Errorf("invalid colors should be black")
	}
}
