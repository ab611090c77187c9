package dto

import (
	"time"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReportRequest defines the data needed to open a report for a mission and month.
type CreateReportRequest struct {
	MissionID string `json:"missionID" binding:"required"`
	Month     int    `json:"month" binding:"required,min=1,max=12"`
	Year      int    `json:"year" binding:"required,min=2000,max=2100"`
}

// UpdateReportRequest changes status and/or note. An explicit null note clears it.
type UpdateReportRequest struct {
	Status *domain.ReportStatus `json:"status" binding:"omitempty,oneof=DRAFT COMPLETED"`
	Note   NullableString       `json:"note"`
}

// EntryUpdateRequest is a partial update of a single entry.
type EntryUpdateRequest struct {
	ID    string           `json:"id" binding:"required"`
	Value *decimal.Decimal `json:"value" binding:"omitempty,entryvalue"`
	Note  NullableString   `json:"note"`
}

// UpdateEntriesRequest carries a batch of entry updates applied atomically.
type UpdateEntriesRequest struct {
	Entries []EntryUpdateRequest `json:"entries" binding:"required,min=1,dive"`
}

// ListReportsParams defines query parameters for listing reports.
type ListReportsParams struct {
	Year      int    `form:"year" binding:"omitempty,min=2000,max=2100"`
	Month     int    `form:"month" binding:"omitempty,min=1,max=12"`
	MissionID string `form:"missionID"`
	Status    string `form:"status" binding:"omitempty,oneof=DRAFT COMPLETED"`
}

// ToFilter converts the query parameters into a domain filter.
func (p ListReportsParams) ToFilter() domain.ReportFilter {
	return domain.ReportFilter{
		Year:      p.Year,
		Month:     p.Month,
		MissionID: p.MissionID,
		Status:    domain.ReportStatus(p.Status),
	}
}

// ToEntryUpdates converts the request into domain updates.
func (r UpdateEntriesRequest) ToEntryUpdates() []domain.EntryUpdate {
	updates := make([]domain.EntryUpdate, len(r.Entries))
	for i, e := range r.Entries {
		updates[i] = domain.EntryUpdate{
			EntryID: e.ID,
			Value:   e.Value,
			Note:    e.Note.Value,
			NoteSet: e.Note.Set,
		}
	}
	return updates
}

// ToReportUpdate converts the request into a domain update.
func (r UpdateReportRequest) ToReportUpdate() domain.ReportUpdate {
	return domain.ReportUpdate{
		Status:  r.Status,
		Note:    r.Note.Value,
		NoteSet: r.Note.Set,
	}
}

// ReportEntryResponse defines the data returned for a report entry.
type ReportEntryResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Value       decimal.Decimal `json:"value"`
	Note        *string         `json:"note"`
	IsWeekend   bool            `json:"isWeekend"`
	IsHoliday   bool            `json:"isHoliday"`
	HolidayName *string         `json:"holidayName,omitempty"`
}

// ReportResponse defines the data returned for a report.
type ReportResponse struct {
	ReportID       string                `json:"reportID"`
	MissionID      string                `json:"missionID"`
	Month          int                   `json:"month"`
	Year           int                   `json:"year"`
	Status         domain.ReportStatus   `json:"status"`
	TotalDays      decimal.Decimal       `json:"totalDays"`
	Note           *string               `json:"note"`
	DailyRate      *decimal.Decimal      `json:"dailyRate"`
	HolidayCountry string                `json:"holidayCountry"`
	Entries        []ReportEntryResponse `json:"entries,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
}

// ToReportResponse converts a domain.ActivityReport to ReportResponse DTO
func ToReportResponse(r *domain.ActivityReport) ReportResponse {
	res := ReportResponse{
		ReportID:       r.ReportID,
		MissionID:      r.MissionID,
		Month:          r.Month,
		Year:           r.Year,
		Status:         r.Status,
		TotalDays:      r.TotalDays,
		Note:           r.Note,
		DailyRate:      r.DailyRate,
		HolidayCountry: r.HolidayCountry,
		CreatedAt:      r.CreatedAt,
		LastUpdatedAt:  r.LastUpdatedAt,
	}
	if len(r.Entries) > 0 {
		res.Entries = make([]ReportEntryResponse, len(r.Entries))
		for i, e := range r.Entries {
			res.Entries[i] = ReportEntryResponse{
				ID:          e.EntryID,
				Date:        e.Date.Format("2006-01-02"),
				Value:       e.Value,
				Note:        e.Note,
				IsWeekend:   e.IsWeekend,
				IsHoliday:   e.IsHoliday,
				HolidayName: e.HolidayName,
			}
		}
	}
	return res
}

// ToListReportResponse converts a slice of domain.ActivityReport to a slice of ReportResponse DTOs
func ToListReportResponse(reports []domain.ActivityReport) []ReportResponse {
	res := make([]ReportResponse, len(reports))
	for i := range reports {
		res[i] = ToReportResponse(&reports[i])
	}
	return res
}
