package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/arnavshah/help-scheduler-go/pkg/period"
)

const (
	keyYear  = "year"
	keyMonth = "month"
)

// State keeps a visitor's selected month and the page of each area tab
// across requests.
type State struct {
	Sessions *scs.SessionManager
}

// NewSessions returns a session manager with an in-memory store.
func NewSessions(lifetime time.Duration) *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = lifetime
	sm.Cookie.Name = "help_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	return sm
}

// Month returns the stored month, or fallback when none was selected.
func (s State) Month(ctx context.Context, fallback period.Month) period.Month {
	y, m := s.Sessions.GetInt(ctx, keyYear), s.Sessions.GetInt(ctx, keyMonth)
	if sel, err := period.Parse(y, m); err == nil {
		return sel
	}
	return fallback
}

// SetMonth stores m. Pages reset because their row counts change with the
// month.
func (s State) SetMonth(ctx context.Context, m period.Month) {
	prev := s.Month(ctx, period.Month{})
	s.Sessions.Put(ctx, keyYear, m.Year)
	s.Sessions.Put(ctx, keyMonth, int(m.Month))
	if prev != m {
		for _, k := range s.Sessions.Keys(ctx) {
			if strings.HasPrefix(k, pagePrefix) {
				s.Sessions.Remove(ctx, k)
			}
		}
	}
}

const pagePrefix = "page:"

// Page returns the stored page of an area tab, 1 when unset.
func (s State) Page(ctx context.Context, area string) int {
	if p := s.Sessions.GetInt(ctx, pagePrefix+area); p > 0 {
		return p
	}
	return 1
}

// SetPage stores the page of an area tab.
func (s State) SetPage(ctx context.Context, area string, page int) {
	s.Sessions.Put(ctx, pagePrefix+area, page)
}
