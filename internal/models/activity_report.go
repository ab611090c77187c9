package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// ActivityReport is a row of the activity_reports table.
type ActivityReport struct {
	ReportID       string              `db:"report_id"`
	UserID         string              `db:"user_id"`
	MissionID      string              `db:"mission_id"`
	Month          int                 `db:"month"`
	Year           int                 `db:"year"`
	Status         string              `db:"status"`
	TotalDays      decimal.Decimal     `db:"total_days"`
	Note           sql.NullString      `db:"note"`
	DailyRate      decimal.NullDecimal `db:"daily_rate"`
	HolidayCountry string              `db:"holiday_country"`
	AuditFields
}

// ReportEntry is a row of the report_entries table.
type ReportEntry struct {
	EntryID     string          `db:"entry_id"`
	ReportID    string          `db:"report_id"`
	EntryDate   time.Time       `db:"entry_date"`
	Value       decimal.Decimal `db:"value"`
	Note        sql.NullString  `db:"note"`
	IsWeekend   bool            `db:"is_weekend"`
	IsHoliday   bool            `db:"is_holiday"`
	HolidayName sql.NullString  `db:"holiday_name"`
}
