package handlers

import (
	"net/http"

	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"github.com/arnavshah/help-scheduler-go/pkg/web"
	"github.com/gin-gonic/gin"
	g "maragu.dev/gomponents"
)

// pageMonth picks the month of an HTML page: the query when given, else the
// visitor's last selection, else the current month.
func (h *Handler) pageMonth(c *gin.Context) (period.Month, bool) {
	ctx := c.Request.Context()
	if c.Query("year") != "" || c.Query("month") != "" {
		m, ok := h.month(c)
		if !ok {
			return period.Month{}, false
		}
		h.State.SetMonth(ctx, m)
		return m, true
	}
	return h.State.Month(ctx, h.Service.CurrentMonth()), true
}

// HelpPage renders the paginated help table of one staff area.
func (h *Handler) HelpPage(c *gin.Context) {
	m, ok := h.pageMonth(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	gr, err := h.Service.Grid(ctx, m)
	if err != nil {
		fail(c, err)
		return
	}

	areas := h.Roster.StaffAreaNames()
	area := c.Query("area")
	if area == "" && len(areas) > 0 {
		area = areas[0]
	}

	days := h.Service.Days(m)
	page := h.State.Page(ctx, area)
	if nav := c.Query("nav"); nav != "" {
		pages := web.Paginate(len(days), web.RowsPerPage, page).Pages
		page = web.Navigate(page, pages, nav)
		h.State.SetPage(ctx, area, page)
	}

	render(c, web.HelpPage(web.NewHelpView(gr, days, h.Roster, area, page)))
}

// RequestsPage renders the store help requests of one store area.
func (h *Handler) RequestsPage(c *gin.Context) {
	m, ok := h.pageMonth(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	gr, err := h.Service.Grid(ctx, m)
	if err != nil {
		fail(c, err)
		return
	}
	requests, err := h.Service.RawHelpRequests(ctx, m)
	if err != nil {
		fail(c, err)
		return
	}

	render(c, web.RequestsPage(web.NewRequestsView(gr, h.Service.Days(m), h.Roster, c.Query("area"), requests)))
}

func render(c *gin.Context, n g.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := n.Render(c.Writer); err != nil {
		c.Error(err)
	}
}
