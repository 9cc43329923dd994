package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/arnavshah/help-scheduler-go/pkg/auth"
	"github.com/arnavshah/help-scheduler-go/pkg/calendar"
	"github.com/arnavshah/help-scheduler-go/pkg/config"
	"github.com/arnavshah/help-scheduler-go/pkg/database"
	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"github.com/arnavshah/help-scheduler-go/pkg/report"
	"github.com/arnavshah/help-scheduler-go/pkg/roster"
	"github.com/arnavshah/help-scheduler-go/pkg/schedule"
	"github.com/arnavshah/help-scheduler-go/pkg/web"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Version is reported by the index route.
const Version = "1.0.0"

// Handler contains dependencies for the route handlers
type Handler struct {
	DB      *gorm.DB
	Service *schedule.Service
	Roster  *roster.Roster
	Tokens  *auth.Tokens
	PDF     *report.PDF
	State   web.State
}

// New wires a Handler from configuration. holidays may be nil, in which case
// the holiday API named by the configuration is used.
func New(cfg config.Config, db *gorm.DB, holidays calendar.HolidayLookup) (*Handler, error) {
	r, err := roster.LoadOrDefault(cfg.RosterPath)
	if err != nil {
		return nil, err
	}
	if holidays == nil {
		holidays = calendar.NewRemote(cfg.HolidayAPI)
	}

	fonts, err := report.LoadFonts(cfg.FontPath, cfg.BoldFontPath)
	if err != nil {
		log.Printf("PDF reports disabled: %v", err)
	}

	if err := auth.EnsureEditorExists(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, err
	}

	return &Handler{
		DB:      db,
		Service: schedule.NewService(database.NewStore(db), r, holidays),
		Roster:  r,
		Tokens:  auth.NewTokens(cfg.JWTSecret),
		PDF:     report.NewPDF(r.Palette, fonts),
		State:   web.State{Sessions: web.NewSessions(cfg.SessionLifetime)},
	}, nil
}

// Routes registers every route on r.
func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/", h.Index)
	r.GET("/health", h.Health)
	r.GET("/help", h.HelpPage)
	r.GET("/requests", h.RequestsPage)
	r.POST("/auth/login", h.Login)

	api := r.Group("/api")
	{
		api.GET("/roster", h.GetRoster)
		api.GET("/shifts", h.GetShifts)
		api.GET("/shifts/default-date", h.DefaultDate)
		api.POST("/shifts/validate", h.ValidateShift)
		api.GET("/counts", h.GetCounts)
		api.GET("/help-requests", h.GetHelpRequests)
		api.GET("/help-requests/suggestions", h.SuggestHelpers)

		api.GET("/reports/help.pdf", h.HelpPDF)
		api.GET("/reports/employee.pdf", h.EmployeePDF)
		api.GET("/reports/store.pdf", h.StorePDF)
		api.GET("/reports/help.xlsx", h.HelpXLSX)
	}

	editor := r.Group("/api")
	editor.Use(h.AuthMiddleware())
	{
		editor.POST("/shifts", h.SaveShift)
		editor.POST("/help-requests", h.SaveHelpRequest)
	}
}

// Wrap adds session loading and saving around the router.
func (h *Handler) Wrap(next http.Handler) http.Handler {
	return h.State.Sessions.LoadAndSave(next)
}

// Engine returns a gin engine with logging, recovery and every route, wrapped
// with sessions.
func (h *Handler) Engine() http.Handler {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	h.Routes(r)
	return h.Wrap(r)
}

// AuthMiddleware verifies the editor's JWT token
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := h.Tokens.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// Index describes the service.
func (h *Handler) Index(c *gin.Context) {
	m := h.Service.CurrentMonth()
	c.JSON(http.StatusOK, gin.H{
		"message":       "Help Staff Scheduler API",
		"version":       Version,
		"current_month": m.String(),
		"pdf_enabled":   h.PDF.Fonts != nil,
	})
}

// Health pings the database.
func (h *Handler) Health(c *gin.Context) {
	if err := database.NewStore(h.DB).Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Login handles editor login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Tokens.Login(h.DB, req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// GetRoster returns the staff and store areas.
func (h *Handler) GetRoster(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"staff_areas": h.Roster.StaffAreas,
		"store_areas": h.Roster.StoreAreas,
		"employees":   h.Roster.Employees(),
		"stores":      h.Roster.Stores(),
	})
}

// month reads the business month from the year and month query parameters,
// defaulting to the current one when both are absent.
func (h *Handler) month(c *gin.Context) (period.Month, bool) {
	y, m := c.Query("year"), c.Query("month")
	if y == "" && m == "" {
		return h.Service.CurrentMonth(), true
	}
	year, err1 := strconv.Atoi(y)
	month, err2 := strconv.Atoi(m)
	sel, err := period.Parse(year, month)
	if err1 != nil || err2 != nil || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month must name a valid month"})
		return period.Month{}, false
	}
	return sel, true
}

// fail maps service errors to a status code.
func fail(c *gin.Context, err error) {
	switch {
	case schedule.IsInvalid(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, report.ErrNoFont):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF font is not configured"})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
