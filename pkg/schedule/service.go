// Package schedule ties the shift model to persistence: it hydrates business
// month grids through the codec, caches them, and validates every write.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/calendar"
	"github.com/arnavshah/help-scheduler-go/pkg/grid"
	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"github.com/arnavshah/help-scheduler-go/pkg/roster"
	"github.com/arnavshah/help-scheduler-go/pkg/scheduler"
	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
)

// CacheTTL is how long a hydrated month is reused before it is read again.
const CacheTTL = time.Hour

var (
	ErrOutsideMonth    = errors.New("date is outside the selected business month")
	ErrUnknownEmployee = errors.New("unknown employee")
	ErrUnknownStore    = errors.New("unknown store")
	ErrNoDates         = errors.New("no dates selected")
	ErrEmptyTimeRange  = errors.New("time range is required")
)

type ShiftReader interface {
	GetShifts(ctx context.Context, start, end time.Time) (map[grid.Key]string, error)
}

type ShiftWriter interface {
	SaveShift(ctx context.Context, date time.Time, employee, raw string) error
	SaveShifts(ctx context.Context, dates []time.Time, employee, raw string) error
}

type HelpRequestStore interface {
	GetStoreHelpRequests(ctx context.Context, start, end time.Time) (map[grid.HelpKey]string, error)
	SaveStoreHelpRequest(ctx context.Context, date time.Time, store, timeRange string) error
}

// Repository is everything the service persists through. database.Store
// implements it.
type Repository interface {
	ShiftReader
	ShiftWriter
	HelpRequestStore
}

type cacheEntry struct {
	raw    map[grid.Key]string
	loaded time.Time
}

// Service is safe for concurrent use.
type Service struct {
	Repo     Repository
	Roster   *roster.Roster
	Holidays calendar.HolidayLookup
	TTL      time.Duration
	Now      func() time.Time

	mu    sync.Mutex
	cache map[period.Month]cacheEntry
	gen   map[period.Month]uint64 // bumped by Invalidate
}

// NewService returns a service with the default cache lifetime.
func NewService(repo Repository, r *roster.Roster, holidays calendar.HolidayLookup) *Service {
	return &Service{
		Repo:     repo,
		Roster:   r,
		Holidays: holidays,
		TTL:      CacheTTL,
		Now:      time.Now,
		cache:    make(map[period.Month]cacheEntry),
		gen:      make(map[period.Month]uint64),
	}
}

// CurrentMonth is the business month containing today.
func (s *Service) CurrentMonth() period.Month {
	return period.Containing(s.Now())
}

// Grid returns the month's grid for every employee on the roster.
func (s *Service) Grid(ctx context.Context, m period.Month) (*grid.Grid, error) {
	raw, err := s.raw(ctx, m)
	if err != nil {
		return nil, err
	}
	return grid.FromRaw(m, s.Roster.Employees(), raw), nil
}

func (s *Service) raw(ctx context.Context, m period.Month) (map[grid.Key]string, error) {
	now := s.Now()

	s.mu.Lock()
	e, ok := s.cache[m]
	gen := s.gen[m]
	s.mu.Unlock()
	if ok && now.Sub(e.loaded) < s.TTL {
		return e.raw, nil
	}

	start, end := m.Window()
	raw, err := s.Repo.GetShifts(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load shifts for %s: %w", m, err)
	}

	// a save during the read makes this snapshot stale
	s.mu.Lock()
	if s.gen[m] == gen {
		s.cache[m] = cacheEntry{raw: raw, loaded: now}
	}
	s.mu.Unlock()
	return raw, nil
}

// Invalidate drops the cached copy of m and keeps reads already in flight
// from caching what they fetched.
func (s *Service) Invalidate(m period.Month) {
	s.mu.Lock()
	delete(s.cache, m)
	s.gen[m]++
	s.mu.Unlock()
}

// SaveShift stores one cell. The date must fall inside m, the month the
// editor is showing.
func (s *Service) SaveShift(ctx context.Context, m period.Month, date time.Time, employee string, d shiftcode.Draft) (shiftcode.Code, error) {
	code, err := s.prepare(m, []time.Time{date}, employee, d)
	if err != nil {
		return shiftcode.Code{}, err
	}
	date = period.Day(date)
	if err := s.Repo.SaveShift(ctx, date, employee, shiftcode.Encode(code)); err != nil {
		return shiftcode.Code{}, err
	}
	s.Invalidate(period.Containing(date))
	log.Printf("saved shift %s %s: %s", date.Format(period.DateLayout), employee, code)
	return code, nil
}

// SaveShiftRepeat writes the same value on each listed date. Either every
// date is written or, when one falls outside m, none is.
func (s *Service) SaveShiftRepeat(ctx context.Context, m period.Month, dates []time.Time, employee string, d shiftcode.Draft) (shiftcode.Code, error) {
	if len(dates) == 0 {
		return shiftcode.Code{}, ErrNoDates
	}
	code, err := s.prepare(m, dates, employee, d)
	if err != nil {
		return shiftcode.Code{}, err
	}

	days := make([]time.Time, 0, len(dates))
	seen := make(map[time.Time]bool, len(dates))
	for _, date := range dates {
		day := period.Day(date)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	if err := s.Repo.SaveShifts(ctx, days, employee, shiftcode.Encode(code)); err != nil {
		return shiftcode.Code{}, err
	}
	s.Invalidate(m)
	log.Printf("saved shift %s on %d dates: %s", employee, len(days), code)
	return code, nil
}

func (s *Service) prepare(m period.Month, dates []time.Time, employee string, d shiftcode.Draft) (shiftcode.Code, error) {
	if !s.Roster.HasEmployee(employee) {
		return shiftcode.Code{}, fmt.Errorf("%w: %s", ErrUnknownEmployee, employee)
	}
	for _, date := range dates {
		if !m.Contains(date) {
			return shiftcode.Code{}, fmt.Errorf("%w: %s not in %s", ErrOutsideMonth, date.Format(period.DateLayout), m)
		}
	}
	code, err := d.Build()
	if err != nil {
		return shiftcode.Code{}, err
	}
	for _, a := range code.Assignments {
		if a.Store != "" && !s.Roster.HasStore(a.Store) {
			return shiftcode.Code{}, fmt.Errorf("%w: %s", ErrUnknownStore, a.Store)
		}
	}
	return code, nil
}

// DefaultDate is the date the editor opens on: today, clamped into m.
func (s *Service) DefaultDate(m period.Month) time.Time {
	return m.Clamp(s.Now())
}

// Days returns the month's dates with their weekday and holiday classes.
func (s *Service) Days(m period.Month) []calendar.Day {
	return calendar.Days(m, s.Holidays)
}

// Total is one employee's shift-day count.
type Total struct {
	Employee string  `json:"employee"`
	Days     float64 `json:"days"`
}

// Counts returns the shift-day totals of the area's employees in roster
// order.
func (s *Service) Counts(ctx context.Context, m period.Month, area string) ([]Total, error) {
	g, err := s.Grid(ctx, m)
	if err != nil {
		return nil, err
	}
	employees := s.Roster.StaffArea(area)
	counts := g.Counts(employees)
	out := make([]Total, len(employees))
	for i, e := range employees {
		out[i] = Total{Employee: e, Days: counts[e]}
	}
	return out, nil
}

// HelpRequest is a stored request together with its fill status.
type HelpRequest struct {
	Date      string `json:"date"`
	Store     string `json:"store"`
	TimeRange string `json:"time_range"`
	Filled    bool   `json:"filled"`
}

// HelpRequests lists the month's requests ordered by date then store, each
// flagged filled when some employee is assigned to the store that day.
func (s *Service) HelpRequests(ctx context.Context, m period.Month) ([]HelpRequest, error) {
	requests, err := s.RawHelpRequests(ctx, m)
	if err != nil {
		return nil, err
	}
	g, err := s.Grid(ctx, m)
	if err != nil {
		return nil, err
	}
	filled := grid.FillIndex(g, requests)

	out := make([]HelpRequest, 0, len(requests))
	for k, tr := range requests {
		out = append(out, HelpRequest{Date: k.Date, Store: k.Store, TimeRange: tr, Filled: filled[k]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Store < out[j].Store
	})
	return out, nil
}

// Suggest proposes a helper from the staff area for every unfilled request of
// the month. Nothing is saved.
func (s *Service) Suggest(ctx context.Context, m period.Month, area string) (scheduler.Result, error) {
	requests, err := s.RawHelpRequests(ctx, m)
	if err != nil {
		return scheduler.Result{}, err
	}
	g, err := s.Grid(ctx, m)
	if err != nil {
		return scheduler.Result{}, err
	}
	return scheduler.NewScheduler(g, s.Roster.StaffArea(area), requests).Assign(), nil
}

// RawHelpRequests returns the month's requests keyed by (date, store).
func (s *Service) RawHelpRequests(ctx context.Context, m period.Month) (map[grid.HelpKey]string, error) {
	start, end := m.Window()
	requests, err := s.Repo.GetStoreHelpRequests(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load help requests for %s: %w", m, err)
	}
	return requests, nil
}

// SaveHelpRequest records a store's request, replacing an earlier one for the
// same store and date.
func (s *Service) SaveHelpRequest(ctx context.Context, date time.Time, store, timeRange string) error {
	if !s.Roster.HasStore(store) {
		return fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}
	timeRange = strings.TrimSpace(timeRange)
	if timeRange == "" {
		return ErrEmptyTimeRange
	}
	date = period.Day(date)
	if err := s.Repo.SaveStoreHelpRequest(ctx, date, store, timeRange); err != nil {
		return err
	}
	log.Printf("saved help request %s %s: %s", date.Format(period.DateLayout), store, timeRange)
	return nil
}

// IsInvalid reports whether err is caused by bad input rather than by the
// repository.
func IsInvalid(err error) bool {
	for _, target := range []error{
		ErrOutsideMonth, ErrUnknownEmployee, ErrUnknownStore, ErrNoDates, ErrEmptyTimeRange,
		shiftcode.ErrUnknownKind, shiftcode.ErrTooManyRows, shiftcode.ErrBadRow,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
