package services

import (
	"context"
	"io"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/SscSPs/activity_tracker/internal/dto"
)

// ReportReaderSvc defines read operations for activity reports
type ReportReaderSvc interface {
	GetReport(ctx context.Context, userID, reportID string) (*domain.ActivityReport, error)
	ListReports(ctx context.Context, userID string, filter domain.ReportFilter) ([]domain.ActivityReport, error)
}

// ReportLifecycleSvc defines the mutations gated by the report's DRAFT/COMPLETED state.
// Edits on a COMPLETED report fail with apperrors.ErrReportCompleted.
type ReportLifecycleSvc interface {
	CreateReport(ctx context.Context, req dto.CreateReportRequest, userID string) (*domain.ActivityReport, error)
	UpdateReport(ctx context.Context, reportID string, update domain.ReportUpdate, userID string) (*domain.ActivityReport, error)
	SetStatus(ctx context.Context, reportID string, status domain.ReportStatus, userID string) (*domain.ActivityReport, error)
	ApplyEntryUpdates(ctx context.Context, reportID string, updates []domain.EntryUpdate, userID string) (*domain.ActivityReport, error)
	AutoFill(ctx context.Context, reportID, userID string) (*domain.ActivityReport, error)
	Clear(ctx context.Context, reportID, userID string) (*domain.ActivityReport, error)
	DeleteReport(ctx context.Context, reportID, userID string) error
}

// ReportExportSvc renders completed reports. Draft reports fail with apperrors.ErrReportDraft.
type ReportExportSvc interface {
	ExportReport(ctx context.Context, reportID, userID string, w io.Writer) (filename string, err error)
}

// ReportSvcFacade combines all report-related service interfaces
type ReportSvcFacade interface {
	ReportReaderSvc
	ReportLifecycleSvc
	ReportExportSvc
}

// ExportDocument is everything a renderer needs to lay out a completed report.
type ExportDocument struct {
	Report  *domain.ActivityReport
	Mission *domain.Mission
	Client  *domain.Client
	Company *domain.Company
}

// ReportRenderer writes a completed report to w in some document format.
type ReportRenderer interface {
	Render(ctx context.Context, doc ExportDocument, w io.Writer) error
	FileExtension() string
}

// EventPublisher delivers report lifecycle events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ReportEvent) error
}
