package repositories

import (
	"context"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
)

// ReportingRepository defines operations for retrieving yearly analytics data
type ReportingRepository interface {
	// FindCompletedReportRows returns the user's COMPLETED reports for year, each joined
	// to its mission, client and company.
	FindCompletedReportRows(ctx context.Context, userID string, year int) ([]domain.ReportingRow, error)
}
