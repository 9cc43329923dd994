package database

import (
	"context"
	"fmt"
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/grid"
	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements shift and help-request persistence on gorm. Writes are
// upserts keyed by (date, employee) and (date, store): the last write wins.
type Store struct {
	DB *gorm.DB
}

// NewStore wraps db.
func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// GetShifts returns the raw shift strings stored between start and end,
// inclusive.
func (s *Store) GetShifts(ctx context.Context, start, end time.Time) (map[grid.Key]string, error) {
	var rows []ShiftEntry
	err := s.DB.WithContext(ctx).
		Where("date >= ? AND date <= ?", start.Format(period.DateLayout), end.Format(period.DateLayout)).
		Order("date asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query shifts: %w", err)
	}

	out := make(map[grid.Key]string, len(rows))
	for _, r := range rows {
		out[grid.Key{Date: r.Date, Employee: r.Employee}] = r.Shift
	}
	return out, nil
}

// SaveShift stores raw as the shift of employee on date.
func (s *Store) SaveShift(ctx context.Context, date time.Time, employee, raw string) error {
	return s.saveShifts(s.DB.WithContext(ctx), []ShiftEntry{{
		Date:     date.Format(period.DateLayout),
		Employee: employee,
		Shift:    raw,
	}})
}

// SaveShifts stores raw on every listed date in one transaction.
func (s *Store) SaveShifts(ctx context.Context, dates []time.Time, employee, raw string) error {
	if len(dates) == 0 {
		return nil
	}
	entries := make([]ShiftEntry, len(dates))
	for i, d := range dates {
		entries[i] = ShiftEntry{Date: d.Format(period.DateLayout), Employee: employee, Shift: raw}
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.saveShifts(tx, entries)
	})
}

func (s *Store) saveShifts(tx *gorm.DB, entries []ShiftEntry) error {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "employee"}},
		DoUpdates: clause.AssignmentColumns([]string{"shift", "updated_at"}),
	}).Create(&entries).Error
	if err != nil {
		return fmt.Errorf("save shift: %w", err)
	}
	return nil
}

// GetStoreHelpRequests returns the requested time range per (date, store)
// between start and end, inclusive.
func (s *Store) GetStoreHelpRequests(ctx context.Context, start, end time.Time) (map[grid.HelpKey]string, error) {
	var rows []HelpRequest
	err := s.DB.WithContext(ctx).
		Where("date >= ? AND date <= ?", start.Format(period.DateLayout), end.Format(period.DateLayout)).
		Order("date asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query help requests: %w", err)
	}

	out := make(map[grid.HelpKey]string, len(rows))
	for _, r := range rows {
		out[grid.HelpKey{Date: r.Date, Store: r.Store}] = r.TimeRange
	}
	return out, nil
}

// SaveStoreHelpRequest records a store's help request, replacing any earlier
// request for the same store and date.
func (s *Store) SaveStoreHelpRequest(ctx context.Context, date time.Time, store, timeRange string) error {
	req := HelpRequest{
		Date:      date.Format(period.DateLayout),
		Store:     store,
		TimeRange: timeRange,
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "store"}},
		DoUpdates: clause.AssignmentColumns([]string{"time_range", "updated_at"}),
	}).Create(&req).Error
	if err != nil {
		return fmt.Errorf("save help request: %w", err)
	}
	return nil
}

// Health pings the underlying connection.
func (s *Store) Health(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
