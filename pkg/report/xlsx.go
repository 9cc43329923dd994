package report

import (
	"fmt"
	"io"
	"log"

	"github.com/arnavshah/help-scheduler-go/pkg/calendar"
	"github.com/arnavshah/help-scheduler-go/pkg/grid"
	"github.com/arnavshah/help-scheduler-go/pkg/roster"
	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
	"github.com/xuri/excelize/v2"
)

const (
	headerRow = 3
	firstRow  = 4
)

// SheetName is the name of the export's only sheet.
func SheetName(g *grid.Grid) string {
	return fmt.Sprintf("%d年%d月", g.Month.Year, int(g.Month.Month))
}

// WriteHelpXLSX writes the month's help table as a spreadsheet: a date and
// weekday column, one column per employee, then a totals row.
func WriteHelpXLSX(w io.Writer, g *grid.Grid, days []calendar.Day, employees []string, p *roster.Palette) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Println(err)
		}
	}()

	sheet := SheetName(g)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	title := fmt.Sprintf("%d年%d月 ヘルプ表 (%s～%s)", g.Month.Year, int(g.Month.Month),
		g.Month.Start().Format(titleDate), g.Month.End().Format(titleDate))
	f.SetCellValue(sheet, "A1", title)
	if titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err == nil {
		f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(employees) + 2)
	f.MergeCell(sheet, "A1", fmt.Sprintf("%s1", lastCol))

	styles := newStyleCache(f, p)

	f.SetCellValue(sheet, cell(1, headerRow), "日付")
	f.SetCellValue(sheet, cell(2, headerRow), "曜日")
	for i, e := range employees {
		f.SetCellValue(sheet, cell(i+3, headerRow), e)
	}
	f.SetCellStyle(sheet, cell(1, headerRow), cell(len(employees)+2, headerRow), styles.header())

	row := firstRow
	for _, d := range days {
		rowFill := p.RowColor(d.Row())
		red := d.Row() == calendar.RowHoliday

		f.SetCellValue(sheet, cell(1, row), d.Label())
		f.SetCellValue(sheet, cell(2, row), d.Weekday)
		f.SetCellStyle(sheet, cell(1, row), cell(2, row), styles.get(rowFill, red))

		for i, c := range g.Row(d.Date, employees) {
			ref := cell(i+3, row)
			rendered := shiftcode.Render(c)
			if err := writeShift(f, sheet, ref, rendered, p); err != nil {
				return err
			}
			fill := p.BucketColor(rendered.Bucket)
			if fill == "" {
				fill = rowFill
			}
			f.SetCellStyle(sheet, ref, ref, styles.get(fill, false))
		}
		row++
	}

	counts := g.Counts(employees)
	f.SetCellValue(sheet, cell(1, row), "合計")
	f.MergeCell(sheet, cell(1, row), cell(2, row))
	for i, e := range employees {
		f.SetCellFloat(sheet, cell(i+3, row), counts[e], 1, 64)
	}
	f.SetCellStyle(sheet, cell(1, row), cell(len(employees)+2, row), styles.total())

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 6)
	if len(employees) > 0 {
		first, _ := excelize.ColumnNumberToName(3)
		f.SetColWidth(sheet, first, lastCol, 16)
	}

	f.SetHeaderFooter(sheet, &excelize.HeaderFooterOptions{
		OddHeader: fmt.Sprintf("&C%s", title),
		OddFooter: "&C&P / &N",
	})

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// writeShift writes a cell as rich text so each assignment line keeps its
// store color.
func writeShift(f *excelize.File, sheet, ref string, c shiftcode.Cell, p *roster.Palette) error {
	if len(c.Lines) == 1 {
		return f.SetCellValue(sheet, ref, c.Text)
	}
	runs := make([]excelize.RichTextRun, len(c.Lines))
	for i, l := range c.Lines {
		text := l.Text
		if i < len(c.Lines)-1 {
			text += "\n"
		}
		runs[i] = excelize.RichTextRun{
			Text: text,
			Font: &excelize.Font{Bold: true, Color: p.LineColor(l)},
		}
	}
	return f.SetCellRichText(sheet, ref, runs)
}

func cell(col, row int) string {
	ref, _ := excelize.CoordinatesToCellName(col, row)
	return ref
}

var thinBorder = []excelize.Border{
	{Type: "top", Color: "#D0D0D0", Style: 1},
	{Type: "bottom", Color: "#D0D0D0", Style: 1},
	{Type: "left", Color: "#D0D0D0", Style: 1},
	{Type: "right", Color: "#D0D0D0", Style: 1},
}

// styleCache creates each (fill, red text) style once.
type styleCache struct {
	f      *excelize.File
	p      *roster.Palette
	styles map[string]int
}

func newStyleCache(f *excelize.File, p *roster.Palette) *styleCache {
	return &styleCache{f: f, p: p, styles: make(map[string]int)}
}

func (s *styleCache) get(fill string, red bool) int {
	key := fmt.Sprintf("%s/%t", fill, red)
	if id, ok := s.styles[key]; ok {
		return id
	}
	st := &excelize.Style{
		Border: thinBorder,
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Font: &excelize.Font{Color: s.p.Text},
	}
	if red {
		st.Font = &excelize.Font{Color: "#FF0000", Bold: true}
	}
	if fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1}
	}
	id, err := s.f.NewStyle(st)
	if err != nil {
		log.Printf("xlsx style %s: %v", key, err)
	}
	s.styles[key] = id
	return id
}

func (s *styleCache) header() int {
	id, _ := s.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{s.p.Header}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 2},
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	return id
}

func (s *styleCache) total() int {
	oneDecimal := "0.0"
	id, _ := s.f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border:       thinBorder,
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		CustomNumFmt: &oneDecimal,
	})
	return id
}
