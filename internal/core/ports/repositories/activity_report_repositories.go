package repositories

import (
	"context"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
)

// ReportMutation changes a locked report and its complete entry set in place.
// Returning an error aborts the surrounding transaction.
type ReportMutation func(report *domain.ActivityReport) error

// ActivityReportReader defines read operations for activity reports and their entries
type ActivityReportReader interface {
	// FindReportByID retrieves a report owned by userID together with all of its entries,
	// read consistently with the report's totalDays.
	FindReportByID(ctx context.Context, userID, reportID string) (*domain.ActivityReport, error)

	// FindReportsByUser lists the user's reports without entries.
	FindReportsByUser(ctx context.Context, userID string, filter domain.ReportFilter) ([]domain.ActivityReport, error)

	// FindEntriesByReport retrieves a report's entries ordered by date.
	FindEntriesByReport(ctx context.Context, userID, reportID string) ([]domain.ReportEntry, error)

	// CountReportsByMission counts the user's reports attached to a mission.
	CountReportsByMission(ctx context.Context, userID, missionID string) (int, error)
}

// ActivityReportWriter defines write operations for activity reports
type ActivityReportWriter interface {
	// CreateReportWithEntries persists a report and all of its entries atomically.
	// A second report for the same (mission, month, year) fails with apperrors.ErrDuplicate.
	CreateReportWithEntries(ctx context.Context, report domain.ActivityReport, entries []domain.ReportEntry) error

	// MutateReport locks the report row, loads every entry, applies fn and persists the
	// entries, totalDays, status and note in the same transaction. Concurrent calls
	// against one report are serialised.
	MutateReport(ctx context.Context, userID, reportID string, fn ReportMutation) (*domain.ActivityReport, error)

	// DeleteReport locks the report, lets guard veto the deletion, then removes it and its entries.
	DeleteReport(ctx context.Context, userID, reportID string, guard ReportMutation) (*domain.ActivityReport, error)
}

// ActivityReportRepositoryFacade combines all report-related repository interfaces
type ActivityReportRepositoryFacade interface {
	ActivityReportReader
	ActivityReportWriter
}
