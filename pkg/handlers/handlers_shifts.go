package handlers

import (
	"net/http"
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
	"github.com/gin-gonic/gin"
)

type shiftEntry struct {
	Employee string          `json:"employee"`
	Shift    string          `json:"shift"`
	Days     float64         `json:"days"`
	Cell     shiftcode.Cell  `json:"cell"`
	Draft    shiftcode.Draft `json:"draft"`
}

type shiftDay struct {
	Date    string       `json:"date"`
	Weekday string       `json:"weekday"`
	Class   string       `json:"class"`
	Shifts  []shiftEntry `json:"shifts"`
}

// GetShifts returns the month's grid. Optional area and employee parameters
// narrow the columns.
func (h *Handler) GetShifts(c *gin.Context) {
	m, ok := h.month(c)
	if !ok {
		return
	}
	g, err := h.Service.Grid(c.Request.Context(), m)
	if err != nil {
		fail(c, err)
		return
	}

	employees := h.Roster.StaffArea(c.Query("area"))
	if e := c.Query("employee"); e != "" {
		if !h.Roster.HasEmployee(e) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown employee " + e})
			return
		}
		employees = []string{e}
	}

	var days []shiftDay
	for _, d := range h.Service.Days(m) {
		day := shiftDay{Date: d.Label(), Weekday: d.Weekday, Class: d.Class.String()}
		for i, code := range g.Row(d.Date, employees) {
			day.Shifts = append(day.Shifts, shiftEntry{
				Employee: employees[i],
				Shift:    code.String(),
				Days:     shiftcode.DayValue(code),
				Cell:     shiftcode.Render(code),
				Draft:    shiftcode.DraftOf(code),
			})
		}
		days = append(days, day)
	}

	c.JSON(http.StatusOK, gin.H{
		"month":     m.String(),
		"start":     m.Start().Format(period.DateLayout),
		"end":       m.End().Format(period.DateLayout),
		"employees": employees,
		"days":      days,
	})
}

// GetCounts returns the shift-day totals of a staff area.
func (h *Handler) GetCounts(c *gin.Context) {
	m, ok := h.month(c)
	if !ok {
		return
	}
	totals, err := h.Service.Counts(c.Request.Context(), m, c.Query("area"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": m.String(), "totals": totals})
}

// DefaultDate returns the date the editor opens on and the selectable range.
func (h *Handler) DefaultDate(c *gin.Context) {
	m, ok := h.month(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date": h.Service.DefaultDate(m).Format(period.DateLayout),
		"min":  m.Start().Format(period.DateLayout),
		"max":  m.End().Format(period.DateLayout),
	})
}

type saveShiftRequest struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Employee string          `json:"employee" binding:"required"`
	Date     string          `json:"date"`
	Dates    []string        `json:"dates"`
	Draft    shiftcode.Draft `json:"draft"`
}

// SaveShift stores one cell, or the same value on several dates when dates
// is given.
func (h *Handler) SaveShift(c *gin.Context) {
	var req saveShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw := req.Dates
	if len(raw) == 0 && req.Date != "" {
		raw = []string{req.Date}
	}
	if len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date or dates is required"})
		return
	}
	dates := make([]time.Time, len(raw))
	for i, s := range raw {
		d, err := period.ParseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		dates[i] = d
	}

	m := period.Containing(dates[0])
	if req.Year != 0 || req.Month != 0 {
		sel, err := period.Parse(req.Year, req.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		m = sel
	}

	ctx := c.Request.Context()
	var code shiftcode.Code
	var err error
	if len(req.Dates) > 0 {
		code, err = h.Service.SaveShiftRepeat(ctx, m, dates, req.Employee, req.Draft)
	} else {
		code, err = h.Service.SaveShift(ctx, m, dates[0], req.Employee, req.Draft)
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "saved",
		"employee": req.Employee,
		"dates":    raw,
		"shift":    code.String(),
		"cell":     shiftcode.Render(code),
	})
}
