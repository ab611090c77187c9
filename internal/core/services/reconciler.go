package services

import (
	"fmt"
	"time"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/google/uuid"
)

// Reconciler owns a report's daily entries and keeps TotalDays equal to their sum.
// Its methods work on in-memory values; callers run them inside the repository
// transaction that locked the report.
type Reconciler struct {
	oracle portssvc.HolidayOracle
	newID  func() string
}

// NewReconciler creates a Reconciler that flags weekends and holidays through oracle.
func NewReconciler(oracle portssvc.HolidayOracle) *Reconciler {
	return &Reconciler{oracle: oracle, newID: uuid.NewString}
}

// CreateEntriesForPeriod returns one zero-valued entry per calendar day of (year, month).
// Weekend and holiday flags are captured here and never recomputed.
func (r *Reconciler) CreateEntriesForPeriod(reportID string, year, month int, holidayCountry string) ([]domain.ReportEntry, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d must be between 1 and 12", apperrors.ErrValidation, month)
	}
	if year < domain.MinReportYear || year > domain.MaxReportYear {
		return nil, fmt.Errorf("%w: year %d must be between %d and %d", apperrors.ErrValidation, year, domain.MinReportYear, domain.MaxReportYear)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	entries := make([]domain.ReportEntry, 0, days)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		entry := domain.ReportEntry{
			EntryID:   r.newID(),
			ReportID:  reportID,
			Date:      d,
			Value:     domain.EntryValueNone,
			IsWeekend: r.oracle.IsWeekend(d),
		}
		if name, ok := r.oracle.HolidayName(d, holidayCountry); ok {
			entry.IsHoliday = true
			entry.HolidayName = &name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ApplyEntryUpdates applies partial updates to the report's entries and recomputes the total.
// Every update is validated before any is applied, so a rejected batch leaves the report untouched.
func (r *Reconciler) ApplyEntryUpdates(report *domain.ActivityReport, updates []domain.EntryUpdate) error {
	index := make(map[string]int, len(report.Entries))
	for i, e := range report.Entries {
		index[e.EntryID] = i
	}

	seen := make(map[string]struct{}, len(updates))
	for _, u := range updates {
		if _, ok := index[u.EntryID]; !ok {
			return fmt.Errorf("%w: entry %s does not belong to report %s", apperrors.ErrValidation, u.EntryID, report.ReportID)
		}
		if _, dup := seen[u.EntryID]; dup {
			return fmt.Errorf("%w: entry %s appears more than once", apperrors.ErrValidation, u.EntryID)
		}
		seen[u.EntryID] = struct{}{}
		if u.Value != nil && !domain.IsValidEntryValue(*u.Value) {
			return fmt.Errorf("%w: entry %s value %s must be 0, 0.5 or 1", apperrors.ErrValidation, u.EntryID, u.Value.String())
		}
	}

	for _, u := range updates {
		e := &report.Entries[index[u.EntryID]]
		if u.Value != nil {
			e.Value = *u.Value
		}
		if u.NoteSet {
			e.Note = u.Note
		}
	}
	r.RecomputeTotal(report)
	return nil
}

// AutoFill sets every plain workday to a full day. Weekend and holiday entries keep their value.
func (r *Reconciler) AutoFill(report *domain.ActivityReport) {
	for i := range report.Entries {
		if report.Entries[i].IsWorkday() {
			report.Entries[i].Value = domain.EntryValueFull
		}
	}
	r.RecomputeTotal(report)
}

// Clear zeroes every entry and drops its note.
func (r *Reconciler) Clear(report *domain.ActivityReport) {
	for i := range report.Entries {
		report.Entries[i].Value = domain.EntryValueNone
		report.Entries[i].Note = nil
	}
	r.RecomputeTotal(report)
}

// RecomputeTotal sets TotalDays to the exact sum of all entry values.
func (r *Reconciler) RecomputeTotal(report *domain.ActivityReport) {
	report.TotalDays = domain.SumEntries(report.Entries)
}
