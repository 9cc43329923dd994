package database

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ShiftEntry represents the shifts table: one encoded shift string per
// employee per day.
type ShiftEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"uniqueIndex:idx_shift_date_employee;not null" json:"date"`
	Employee  string    `gorm:"uniqueIndex:idx_shift_date_employee;not null" json:"employee"`
	Shift     string    `gorm:"not null;default:'-'" json:"shift"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ShiftEntry) TableName() string { return "shifts" }

// HelpRequest represents the store_help_requests table.
type HelpRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date      string    `gorm:"uniqueIndex:idx_help_date_store;not null" json:"date"`
	Store     string    `gorm:"uniqueIndex:idx_help_date_store;not null" json:"store"`
	TimeRange string    `gorm:"not null" json:"time_range"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HelpRequest) TableName() string { return "store_help_requests" }

// BeforeCreate assigns a random id to new requests.
func (r *HelpRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Editor represents the editors table: accounts allowed to change shifts.
type Editor struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Open connects to Postgres when databaseURL is set, otherwise to the sqlite
// file at dataPath, and migrates the schema.
func Open(databaseURL, dataPath string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if databaseURL != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  databaseURL,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		if dataPath == "" {
			dataPath = "shifts.db"
		}
		db, err = gorm.Open(sqlite.Open(dataPath), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&ShiftEntry{}, &HelpRequest{}, &Editor{}); err != nil {
		return nil, err
	}
	return db, nil
}

// InitDB is Open for binaries: it exits on failure.
func InitDB(databaseURL, dataPath string) *gorm.DB {
	db, err := Open(databaseURL, dataPath)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	return db
}
