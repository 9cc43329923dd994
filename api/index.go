package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/arnavshah/help-scheduler-go/pkg/calendar"
	"github.com/arnavshah/help-scheduler-go/pkg/config"
	"github.com/arnavshah/help-scheduler-go/pkg/database"
	"github.com/arnavshah/help-scheduler-go/pkg/handlers"
	"github.com/gin-gonic/gin"
)

var app http.Handler

func init() {
	// .env is only present under vercel dev
	cfg := config.Load()

	gin.SetMode(gin.ReleaseMode)

	db := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	holidays := calendar.NewRemote(cfg.HolidayAPI)
	holidays.Load(context.Background())

	h, err := handlers.New(cfg, db, holidays)
	if err != nil {
		log.Fatalf("could not start: %v", err)
	}
	app = h.Engine()
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, r *http.Request) {
	app.ServeHTTP(w, r)
}
