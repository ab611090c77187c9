package mapping

import (
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/SscSPs/activity_tracker/internal/models"
)

// ToModelActivityReport converts a domain report to its row; entries are mapped separately.
func ToModelActivityReport(d domain.ActivityReport) models.ActivityReport {
	return models.ActivityReport{
		ReportID:       d.ReportID,
		UserID:         d.UserID,
		MissionID:      d.MissionID,
		Month:          d.Month,
		Year:           d.Year,
		Status:         string(d.Status),
		TotalDays:      d.TotalDays,
		Note:           toNullString(d.Note),
		DailyRate:      toNullDecimal(d.DailyRate),
		HolidayCountry: d.HolidayCountry,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainActivityReport converts a report row back to the domain, without entries.
func ToDomainActivityReport(m models.ActivityReport) domain.ActivityReport {
	return domain.ActivityReport{
		ReportID:       m.ReportID,
		UserID:         m.UserID,
		MissionID:      m.MissionID,
		Month:          m.Month,
		Year:           m.Year,
		Status:         domain.ReportStatus(m.Status),
		TotalDays:      m.TotalDays,
		Note:           fromNullString(m.Note),
		DailyRate:      fromNullDecimal(m.DailyRate),
		HolidayCountry: m.HolidayCountry,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelReportEntry(d domain.ReportEntry) models.ReportEntry {
	return models.ReportEntry{
		EntryID:     d.EntryID,
		ReportID:    d.ReportID,
		EntryDate:   d.Date,
		Value:       d.Value,
		Note:        toNullString(d.Note),
		IsWeekend:   d.IsWeekend,
		IsHoliday:   d.IsHoliday,
		HolidayName: toNullString(d.HolidayName),
	}
}

func ToDomainReportEntry(m models.ReportEntry) domain.ReportEntry {
	return domain.ReportEntry{
		EntryID:     m.EntryID,
		ReportID:    m.ReportID,
		Date:        m.EntryDate,
		Value:       m.Value,
		Note:        fromNullString(m.Note),
		IsWeekend:   m.IsWeekend,
		IsHoliday:   m.IsHoliday,
		HolidayName: fromNullString(m.HolidayName),
	}
}

// ToDomainReportEntries maps a slice of entry rows, keeping order.
func ToDomainReportEntries(rows []models.ReportEntry) []domain.ReportEntry {
	out := make([]domain.ReportEntry, len(rows))
	for i, row := range rows {
		out[i] = ToDomainReportEntry(row)
	}
	return out
}
