// Package web renders the read-only HTML pages: the help table per staff area
// and the store help requests per store area.
package web

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/arnavshah/help-scheduler-go/pkg/calendar"
	"github.com/arnavshah/help-scheduler-go/pkg/grid"
	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"github.com/arnavshah/help-scheduler-go/pkg/roster"
	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

const cssStyles = `
body { font-family: sans-serif; color: #373737; margin: 1rem 2rem; }
nav.tabs a, nav.months a, nav.pager a { margin-right: .75rem; }
nav.tabs a.active { font-weight: bold; text-decoration: none; }
table { font-size: 15px; width: 100%; border-collapse: collapse; margin: .5rem 0 1rem; }
th, td { text-align: center; padding: 8px; border: 1px solid #ddd; white-space: pre-line; vertical-align: top; }
th { background-color: #f0f0f0; }
td .head { color: #595959; font-weight: bold; }
.shift-count td { font-weight: bold; background-color: #e6f3ff; }
`

// Row is one day of the help table.
type Row struct {
	Day   calendar.Day
	Cells []shiftcode.Cell
}

// HelpView is everything the help table page shows.
type HelpView struct {
	Month     period.Month
	Areas     []string
	Area      string
	Employees []string
	Rows      []Row
	Pager     Pager
	Totals    []float64
	Palette   *roster.Palette
}

// NewHelpView builds the given page of an area's help table. Totals cover
// the whole month, not only the visible page.
func NewHelpView(gr *grid.Grid, days []calendar.Day, r *roster.Roster, area string, page int) HelpView {
	employees := r.StaffArea(area)
	p := Paginate(len(days), RowsPerPage, page)

	v := HelpView{
		Month:     gr.Month,
		Areas:     r.StaffAreaNames(),
		Area:      area,
		Employees: employees,
		Pager:     p,
		Palette:   r.Palette,
	}
	for _, d := range days[p.Start:p.End] {
		row := Row{Day: d, Cells: make([]shiftcode.Cell, len(employees))}
		for i, code := range gr.Row(d.Date, employees) {
			row.Cells[i] = shiftcode.Render(code)
		}
		v.Rows = append(v.Rows, row)
	}
	counts := gr.Counts(employees)
	for _, e := range employees {
		v.Totals = append(v.Totals, counts[e])
	}
	return v
}

// HelpPage renders the help table.
func HelpPage(v HelpView) g.Node {
	header := []g.Node{h.Th(g.Text("日付")), h.Th(g.Text("曜日"))}
	for _, e := range v.Employees {
		header = append(header, h.Th(g.Text(e)))
	}

	var totals []g.Node
	for _, t := range v.Totals {
		totals = append(totals, h.Td(g.Textf("%.1f", t)))
	}

	return layout("ヘルプ表", v.Month, "/help", v.Area,
		tabs("/help", v.Month, v.Areas, v.Area),
		pager(v),
		h.Table(
			h.THead(h.Tr(header...)),
			h.TBody(g.Map(v.Rows, func(r Row) g.Node { return helpRow(v.Palette, r) })),
		),
		h.H2(g.Textf("%sのシフト日数", v.Area)),
		h.Table(
			h.THead(h.Tr(g.Map(v.Employees, func(e string) g.Node { return h.Th(g.Text(e)) }))),
			h.TBody(h.Tr(h.Class("shift-count"), g.Group(totals))),
		),
	)
}

func helpRow(p *roster.Palette, r Row) g.Node {
	cells := []g.Node{
		h.Td(g.Text(r.Day.Label())),
		h.Td(g.Text(r.Day.Weekday)),
	}
	for _, cell := range r.Cells {
		cells = append(cells, shiftCell(p, cell))
	}
	return h.Tr(background(p.RowColor(r.Day.Row())), g.Group(cells))
}

func shiftCell(p *roster.Palette, cell shiftcode.Cell) g.Node {
	var lines []g.Node
	for i, l := range cell.Lines {
		if i > 0 {
			lines = append(lines, h.Br())
		}
		lines = append(lines, h.Span(
			g.If(l.Head, h.Class("head")),
			h.Style("color: "+p.LineColor(l)),
			g.Text(l.Text),
		))
	}
	return h.Td(background(p.BucketColor(cell.Bucket)), g.Group(lines))
}

func pager(v HelpView) g.Node {
	link := func(nav, label string) g.Node {
		q := monthQuery(v.Month)
		q.Set("area", v.Area)
		q.Set("nav", nav)
		return h.A(h.Href("/help?"+q.Encode()), g.Text(label))
	}
	return h.Nav(h.Class("pager"),
		link("first", "◀◀ 最初"),
		link("prev", "◀ 前へ"),
		h.Span(g.Textf("ページ %d / %d", v.Pager.Page, v.Pager.Pages)),
		link("next", "次へ ▶"),
		link("last", "最後 ▶▶"),
	)
}

// RequestCell is one store's request on one day.
type RequestCell struct {
	TimeRange string
	Filled    bool
}

// RequestRow is one day of the store help request table.
type RequestRow struct {
	Day   calendar.Day
	Cells []RequestCell
}

// RequestsView is everything the store help request page shows.
type RequestsView struct {
	Month   period.Month
	Areas   []string
	Area    string
	Stores  []string
	Rows    []RequestRow
	Empty   bool
	Palette *roster.Palette
}

// NewRequestsView lays out the month's requests for the stores of one store
// area. A request is filled when some employee is assigned to the store that
// day.
func NewRequestsView(gr *grid.Grid, days []calendar.Day, r *roster.Roster, area string, requests map[grid.HelpKey]string) RequestsView {
	areas := r.StoreAreaNames()
	if area == "" && len(areas) > 0 {
		area = areas[0]
	}
	stores := r.StoreArea(area)
	filled := grid.FillIndex(gr, requests)

	v := RequestsView{
		Month:   gr.Month,
		Areas:   areas,
		Area:    area,
		Stores:  stores,
		Empty:   len(requests) == 0,
		Palette: r.Palette,
	}
	for _, d := range days {
		row := RequestRow{Day: d, Cells: make([]RequestCell, len(stores))}
		for i, s := range stores {
			k := grid.HelpKeyOf(d.Date, s)
			if tr, ok := requests[k]; ok {
				row.Cells[i] = RequestCell{TimeRange: tr, Filled: filled[k]}
			}
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// RequestsPage renders the store help requests.
func RequestsPage(v RequestsView) g.Node {
	if v.Empty {
		return layout("店舗ヘルプ希望", v.Month, "/requests", v.Area,
			h.P(g.Text("ヘルプ希望はありません。")),
		)
	}

	header := []g.Node{h.Th(g.Text("日付")), h.Th(g.Text("曜日"))}
	for _, s := range v.Stores {
		header = append(header, h.Th(g.Text(s)))
	}

	return layout("店舗ヘルプ希望", v.Month, "/requests", v.Area,
		tabs("/requests", v.Month, v.Areas, v.Area),
		h.Table(
			h.THead(h.Tr(header...)),
			h.TBody(g.Map(v.Rows, func(r RequestRow) g.Node { return requestRow(v.Palette, r) })),
		),
	)
}

func requestRow(p *roster.Palette, r RequestRow) g.Node {
	cells := []g.Node{
		h.Td(g.Text(r.Day.Label())),
		h.Td(g.Text(r.Day.Weekday)),
	}
	for _, cell := range r.Cells {
		if cell.TimeRange == "" {
			cells = append(cells, h.Td(g.Text(shiftcode.TokenUnset)))
			continue
		}
		fill := ""
		if cell.Filled {
			fill = p.Filled
		}
		cells = append(cells, h.Td(
			background(fill),
			g.If(cell.Filled, h.Class("filled")),
			g.Text(cell.TimeRange),
		))
	}
	return h.Tr(background(p.RowColor(r.Day.Row())), g.Group(cells))
}

func layout(title string, m period.Month, path, area string, body ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    fmt.Sprintf("%s %d年%d月", title, m.Year, int(m.Month)),
		Language: "ja",
		Head:     []g.Node{h.StyleEl(g.Raw(cssStyles))},
		Body: []g.Node{
			h.H1(g.Text("ヘルプ管理")),
			h.Nav(h.Class("links"),
				h.A(h.Href("/help"), g.Text("ヘルプ表")), g.Text(" | "),
				h.A(h.Href("/requests"), g.Text("店舗ヘルプ希望")),
			),
			months(path, m, area),
			h.H2(g.Textf("%s (%s～%s)", title, m.Start().Format("2006/01/02"), m.End().Format("2006/01/02"))),
			h.Main(body...),
		},
	})
}

func months(path string, m period.Month, area string) g.Node {
	link := func(to period.Month, label string) g.Node {
		q := monthQuery(to)
		if area != "" {
			q.Set("area", area)
		}
		return h.A(h.Href(path+"?"+q.Encode()), g.Text(label))
	}
	prev, next := m.Prev(), m.Next()
	return h.Nav(h.Class("months"),
		link(prev, fmt.Sprintf("‹ %d年%d月", prev.Year, int(prev.Month))),
		h.Strong(g.Textf("%d年%d月", m.Year, int(m.Month))),
		link(next, fmt.Sprintf("%d年%d月 ›", next.Year, int(next.Month))),
	)
}

func tabs(path string, m period.Month, areas []string, active string) g.Node {
	return h.Nav(h.Class("tabs"), g.Map(areas, func(a string) g.Node {
		q := monthQuery(m)
		q.Set("area", a)
		return h.A(h.Href(path+"?"+q.Encode()), g.If(a == active, h.Class("active")), g.Text(a))
	}))
}

func monthQuery(m period.Month) url.Values {
	q := url.Values{}
	q.Set("year", strconv.Itoa(m.Year))
	q.Set("month", strconv.Itoa(int(m.Month)))
	return q
}

func background(color string) g.Node {
	if color == "" {
		return nil
	}
	return h.Style("background-color: " + color)
}
