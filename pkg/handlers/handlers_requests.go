package handlers

import (
	"net/http"

	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"github.com/gin-gonic/gin"
)

// GetHelpRequests lists the month's store help requests with their fill
// status.
func (h *Handler) GetHelpRequests(c *gin.Context) {
	m, ok := h.month(c)
	if !ok {
		return
	}
	requests, err := h.Service.HelpRequests(c.Request.Context(), m)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": m.String(), "requests": requests})
}

// SuggestHelpers proposes helpers from a staff area for the month's unfilled
// requests without saving anything.
func (h *Handler) SuggestHelpers(c *gin.Context) {
	m, ok := h.month(c)
	if !ok {
		return
	}
	res, err := h.Service.Suggest(c.Request.Context(), m, c.Query("area"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"month":          m.String(),
		"suggestions":    res.Suggestions,
		"conflicts":      res.Conflicts,
		"fairness_score": res.FairnessScore,
		"helpers":        res.Helpers,
	})
}

// SaveHelpRequest records a store's request for help on a date.
func (h *Handler) SaveHelpRequest(c *gin.Context) {
	var req struct {
		Date      string `json:"date" binding:"required"`
		Store     string `json:"store" binding:"required"`
		TimeRange string `json:"time_range"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := period.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.SaveHelpRequest(c.Request.Context(), date, req.Store, req.TimeRange); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "saved", "date": req.Date, "store": req.Store})
}
