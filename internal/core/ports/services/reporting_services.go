package services

import (
	"context"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
)

// ReportingService defines operations for yearly analytics
type ReportingService interface {
	// ComputeYearlyReport aggregates the user's COMPLETED reports of year, converting every
	// revenue figure to baseCurrency. country selects the holiday calendar used for
	// workingDaysInYear; empty means the configured default.
	ComputeYearlyReport(ctx context.Context, userID string, year int, baseCurrency, country string) (*domain.ReportingData, error)
}
