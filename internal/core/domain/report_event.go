package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportEventType names a lifecycle change of a report.
type ReportEventType string

const (
	ReportEventCreated       ReportEventType = "report.created"
	ReportEventStatusChanged ReportEventType = "report.status_changed"
	ReportEventDeleted       ReportEventType = "report.deleted"
)

// ReportEvent is published after a report lifecycle change has been committed.
type ReportEvent struct {
	Type      ReportEventType `json:"type"`
	ReportID  string          `json:"reportID"`
	UserID    string          `json:"userID"`
	Status    ReportStatus    `json:"status"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	TotalDays decimal.Decimal `json:"totalDays"`
	At        time.Time       `json:"at"`
}

// NewReportEvent builds an event describing report at time at.
func NewReportEvent(t ReportEventType, report *ActivityReport, at time.Time) ReportEvent {
	return ReportEvent{
		Type:      t,
		ReportID:  report.ReportID,
		UserID:    report.UserID,
		Status:    report.Status,
		Month:     report.Month,
		Year:      report.Year,
		TotalDays: report.TotalDays,
		At:        at,
	}
}
