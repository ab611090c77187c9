package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportStatus is the lifecycle state of an activity report.
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "DRAFT"
	ReportStatusCompleted ReportStatus = "COMPLETED"
)

// IsValid reports whether s is a known status.
func (s ReportStatus) IsValid() bool {
	return s == ReportStatusDraft || s == ReportStatusCompleted
}

// Supported report years.
const (
	MinReportYear = 2000
	MaxReportYear = 2100
)

// ActivityReport records the days worked on one mission during one month.
// TotalDays is always the sum of the entry values; it is never written independently.
type ActivityReport struct {
	ReportID       string           `json:"reportID"`
	MissionID      string           `json:"missionID"`
	Month          int              `json:"month"`
	Year           int              `json:"year"`
	Status         ReportStatus     `json:"status"`
	TotalDays      decimal.Decimal  `json:"totalDays"`
	Note           *string          `json:"note,omitempty"`
	DailyRate      *decimal.Decimal `json:"dailyRate,omitempty"`
	HolidayCountry string           `json:"holidayCountry"`
	UserID         string           `json:"userID"`
	Entries        []ReportEntry    `json:"entries,omitempty"`
	AuditFields
}

// IsDraft reports whether entries and note may still change.
func (r *ActivityReport) IsDraft() bool {
	return r.Status == ReportStatusDraft
}

// IsCompleted reports whether the report is frozen.
func (r *ActivityReport) IsCompleted() bool {
	return r.Status == ReportStatusCompleted
}

// PeriodStart returns the first day of the report's month in UTC.
func (r *ActivityReport) PeriodStart() time.Time {
	return time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
}

// ReportFilter narrows a report listing. Zero values mean "any".
type ReportFilter struct {
	Year      int
	Month     int
	MissionID string
	Status    ReportStatus
}

// ReportUpdate is a partial update of report-level fields.
// NoteSet distinguishes an explicit null note (clear) from an absent one.
type ReportUpdate struct {
	Status  *ReportStatus
	Note    *string
	NoteSet bool
}
