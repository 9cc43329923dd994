package handlers

import (
	"net/http"

	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
	"github.com/gin-gonic/gin"
)

// ValidateShift checks an editor draft without saving it and shows how it
// will be stored and displayed. A raw shift string may be sent instead to see
// how it decodes.
func (h *Handler) ValidateShift(c *gin.Context) {
	var input struct {
		Draft *shiftcode.Draft `json:"draft"`
		Raw   *string          `json:"raw"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	var code shiftcode.Code
	switch {
	case input.Draft != nil:
		built, err := input.Draft.Build()
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
			return
		}
		code = built
	case input.Raw != nil:
		code = shiftcode.Decode(*input.Raw)
	default:
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "draft or raw is required"})
		return
	}

	// stores must come from the roster
	for _, a := range code.Assignments {
		if a.Store != "" && !h.Roster.HasStore(a.Store) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Unknown store: " + a.Store})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"kind":  code.Kind.String(),
		"shift": code.String(),
		"days":  shiftcode.DayValue(code),
		"cell":  shiftcode.Render(code),
	})
}
