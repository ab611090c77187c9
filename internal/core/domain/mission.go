package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mission is an engagement for a client, carried out through a company.
type Mission struct {
	MissionID string           `json:"missionID"`
	Name      string           `json:"name"`
	ClientID  string           `json:"clientID"`
	CompanyID string           `json:"companyID"`
	DailyRate *decimal.Decimal `json:"dailyRate,omitempty"`
	IsActive  bool             `json:"isActive"`
	StartDate time.Time        `json:"startDate"`
	EndDate   *time.Time       `json:"endDate,omitempty"`
	UserID    string           `json:"userID"`
	AuditFields
}
