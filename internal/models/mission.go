package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Mission is a row of the missions table.
type Mission struct {
	MissionID string              `db:"mission_id"`
	UserID    string              `db:"user_id"`
	Name      string              `db:"name"`
	ClientID  string              `db:"client_id"`
	CompanyID string              `db:"company_id"`
	DailyRate decimal.NullDecimal `db:"daily_rate"`
	IsActive  bool                `db:"is_active"`
	StartDate time.Time           `db:"start_date"`
	EndDate   sql.NullTime        `db:"end_date"`
	AuditFields
}
