package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"github.com/arnavshah/help-scheduler-go/pkg/report"
	"github.com/gin-gonic/gin"
)

const (
	pdfType  = "application/pdf"
	xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// attachment sends data as a download. The file name is percent-encoded
// because every report name contains Japanese.
func attachment(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))
	c.Data(http.StatusOK, contentType, data)
}

// HelpPDF renders the two-page help table, optionally for one staff area.
func (h *Handler) HelpPDF(c *gin.Context) {
	m, ok := h.month(c)
	if !ok {
		return
	}
	g, err := h.Service.Grid(c.Request.Context(), m)
	if err != nil {
		fail(c, err)
		return
	}

	area := c.Query("area")
	employees := h.Roster.Employees()
	if area != "" {
		employees = h.Roster.StaffArea(area)
	}

	var buf bytes.Buffer
	tables := report.HelpTables(g, h.Service.Days(m), employees, area)
	if err := h.PDF.WriteHelpTable(&buf, tables); err != nil {
		fail(c, err)
		return
	}
	attachment(c, report.HelpPDFName(m), pdfType, buf.Bytes())
}

// EmployeePDF renders one employee's schedule.
func (h *Handler) EmployeePDF(c *gin.Context) {
	m, ok := h.month(c)
	if !ok {
		return
	}
	employee := c.Query("employee")
	if !h.Roster.HasEmployee(employee) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee must name someone on the roster"})
		return
	}
	g, err := h.Service.Grid(c.Request.Context(), m)
	if err != nil {
		fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.PDF.WriteEmployee(&buf, report.Employee(g, h.Service.Days(m), employee)); err != nil {
		fail(c, err)
		return
	}
	attachment(c, report.EmployeePDFName(m, employee), pdfType, buf.Bytes())
}

// StorePDF renders one store's schedule with its help requests as remarks.
func (h *Handler) StorePDF(c *gin.Context) {
	m, ok := h.month(c)
	if !ok {
		return
	}
	store := c.Query("store")
	if !h.Roster.HasStore(store) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store must name a store on the roster"})
		return
	}
	ctx := c.Request.Context()
	g, err := h.Service.Grid(ctx, m)
	if err != nil {
		fail(c, err)
		return
	}
	requests, err := h.Service.RawHelpRequests(ctx, m)
	if err != nil {
		fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.PDF.WriteStore(&buf, report.Store(g, h.Service.Days(m), store, requests)); err != nil {
		fail(c, err)
		return
	}
	attachment(c, report.StorePDFName(m, store), pdfType, buf.Bytes())
}

// HelpXLSX exports the help table of every employee as a spreadsheet.
func (h *Handler) HelpXLSX(c *gin.Context) {
	m, ok := h.month(c)
	if !ok {
		return
	}
	g, err := h.Service.Grid(c.Request.Context(), m)
	if err != nil {
		fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteHelpXLSX(&buf, g, h.Service.Days(m), h.Roster.Employees(), h.Roster.Palette); err != nil {
		fail(c, err)
		return
	}
	attachment(c, report.HelpXLSXName(m), xlsxType, buf.Bytes())
}
