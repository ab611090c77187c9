package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/dto"
	"github.com/google/uuid"
)

// reportService is the report lifecycle controller. It gates every mutation on the
// DRAFT/COMPLETED state and delegates entry changes to the Reconciler.
type reportService struct {
	BaseService
	reportRepo  portsrepo.ActivityReportRepositoryFacade
	missionRepo portsrepo.MissionReader
	clientRepo  portsrepo.ClientReader
	companyRepo portsrepo.CompanyReader
	reconciler  *Reconciler
	renderer    portssvc.ReportRenderer
	publisher   portssvc.EventPublisher
}

// ReportServiceOption is a functional option for configuring the report service
type ReportServiceOption func(*reportService)

// WithEventPublisher sets the publisher notified after lifecycle changes.
func WithEventPublisher(p portssvc.EventPublisher) ReportServiceOption {
	return func(s *reportService) {
		s.publisher = p
	}
}

// WithReportRenderer sets the renderer used by ExportReport.
func WithReportRenderer(r portssvc.ReportRenderer) ReportServiceOption {
	return func(s *reportService) {
		s.renderer = r
	}
}

// NewReportService creates a new report service with the provided options
func NewReportService(
	reportRepo portsrepo.ActivityReportRepositoryFacade,
	missionRepo portsrepo.MissionReader,
	clientRepo portsrepo.ClientReader,
	companyRepo portsrepo.CompanyReader,
	reconciler *Reconciler,
	options ...ReportServiceOption,
) portssvc.ReportSvcFacade {
	svc := &reportService{
		BaseService: newBaseService(),
		reportRepo:  reportRepo,
		missionRepo: missionRepo,
		clientRepo:  clientRepo,
		companyRepo: companyRepo,
		reconciler:  reconciler,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// CreateReport opens a DRAFT report with one zero entry per day of the month.
// The daily rate and holiday country are snapshotted from the mission and its client.
func (s *reportService) CreateReport(ctx context.Context, req dto.CreateReportRequest, userID string) (*domain.ActivityReport, error) {
	mission, err := s.missionRepo.FindMissionByID(ctx, userID, req.MissionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: mission %s", apperrors.ErrNotFound, req.MissionID)
		}
		s.LogError(ctx, err, "Failed to load mission for report", slog.String("mission_id", req.MissionID))
		return nil, fmt.Errorf("failed to load mission: %w", err)
	}

	client, err := s.clientRepo.FindClientByID(ctx, userID, mission.ClientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load client for report", slog.String("client_id", mission.ClientID))
		return nil, fmt.Errorf("failed to load client of mission %s: %w", mission.MissionID, err)
	}

	now := s.now()
	report := domain.ActivityReport{
		ReportID:       uuid.NewString(),
		MissionID:      mission.MissionID,
		Month:          req.Month,
		Year:           req.Year,
		Status:         domain.ReportStatusDraft,
		TotalDays:      domain.EntryValueNone,
		HolidayCountry: client.HolidayCountry,
		UserID:         userID,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	if mission.DailyRate != nil {
		rate := *mission.DailyRate
		report.DailyRate = &rate
	}

	entries, err := s.reconciler.CreateEntriesForPeriod(report.ReportID, req.Year, req.Month, client.HolidayCountry)
	if err != nil {
		return nil, err
	}

	if err := s.reportRepo.CreateReportWithEntries(ctx, report, entries); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a report already exists for mission %s in %02d/%d", apperrors.ErrDuplicate, mission.MissionID, req.Month, req.Year)
		}
		s.LogError(ctx, err, "Failed to save report", slog.String("mission_id", mission.MissionID))
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	report.Entries = entries

	s.LogInfo(ctx, "Report created",
		slog.String("report_id", report.ReportID),
		slog.String("mission_id", report.MissionID),
		slog.Int("month", report.Month),
		slog.Int("year", report.Year),
		slog.Int("entries", len(entries)))
	s.publish(ctx, domain.ReportEventCreated, &report)
	return &report, nil
}

// GetReport returns the report with its entries.
func (s *reportService) GetReport(ctx context.Context, userID, reportID string) (*domain.ActivityReport, error) {
	report, err := s.reportRepo.FindReportByID(ctx, userID, reportID)
	if err != nil {
		return nil, s.wrapLookup(ctx, err, reportID)
	}
	return report, nil
}

// ListReports returns the user's reports without entries.
func (s *reportService) ListReports(ctx context.Context, userID string, filter domain.ReportFilter) ([]domain.ActivityReport, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, filter.Status)
	}
	reports, err := s.reportRepo.FindReportsByUser(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reports")
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// UpdateReport changes status and/or note. A note edit is allowed when the report is
// DRAFT before or after the update, so reverting and editing in one call succeeds.
func (s *reportService) UpdateReport(ctx context.Context, reportID string, update domain.ReportUpdate, userID string) (*domain.ActivityReport, error) {
	if update.Status != nil && !update.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *update.Status)
	}

	var previous domain.ReportStatus
	report, err := s.reportRepo.MutateReport(ctx, userID, reportID, func(r *domain.ActivityReport) error {
		previous = r.Status
		target := r.Status
		if update.Status != nil {
			target = *update.Status
		}
		if update.NoteSet && previous == domain.ReportStatusCompleted && target == domain.ReportStatusCompleted {
			return fmt.Errorf("%w: revert report %s to draft to edit its note", apperrors.ErrReportCompleted, r.ReportID)
		}
		if update.NoteSet {
			r.Note = update.Note
		}
		r.Status = target
		r.Touch(userID, s.now())
		return nil
	})
	if err != nil {
		return nil, s.wrapMutation(ctx, err, reportID, "update")
	}

	if report.Status != previous {
		s.LogInfo(ctx, "Report status changed",
			slog.String("report_id", report.ReportID),
			slog.String("from", string(previous)),
			slog.String("to", string(report.Status)))
		s.publish(ctx, domain.ReportEventStatusChanged, report)
	}
	return report, nil
}

// SetStatus moves the report to status. Both transitions are always permitted.
func (s *reportService) SetStatus(ctx context.Context, reportID string, status domain.ReportStatus, userID string) (*domain.ActivityReport, error) {
	return s.UpdateReport(ctx, reportID, domain.ReportUpdate{Status: &status}, userID)
}

// ApplyEntryUpdates applies a batch of entry edits to a DRAFT report.
func (s *reportService) ApplyEntryUpdates(ctx context.Context, reportID string, updates []domain.EntryUpdate, userID string) (*domain.ActivityReport, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: at least one entry update is required", apperrors.ErrValidation)
	}
	report, err := s.mutateDraft(ctx, reportID, userID, func(r *domain.ActivityReport) error {
		return s.reconciler.ApplyEntryUpdates(r, updates)
	})
	if err != nil {
		return nil, s.wrapMutation(ctx, err, reportID, "update entries of")
	}
	s.LogDebug(ctx, "Report entries updated",
		slog.String("report_id", reportID),
		slog.Int("updates", len(updates)),
		slog.String("total_days", report.TotalDays.String()))
	return report, nil
}

// AutoFill sets every plain workday of a DRAFT report to a full day.
func (s *reportService) AutoFill(ctx context.Context, reportID, userID string) (*domain.ActivityReport, error) {
	report, err := s.mutateDraft(ctx, reportID, userID, func(r *domain.ActivityReport) error {
		s.reconciler.AutoFill(r)
		return nil
	})
	if err != nil {
		return nil, s.wrapMutation(ctx, err, reportID, "auto-fill")
	}
	return report, nil
}

// Clear zeroes every entry of a DRAFT report.
func (s *reportService) Clear(ctx context.Context, reportID, userID string) (*domain.ActivityReport, error) {
	report, err := s.mutateDraft(ctx, reportID, userID, func(r *domain.ActivityReport) error {
		s.reconciler.Clear(r)
		return nil
	})
	if err != nil {
		return nil, s.wrapMutation(ctx, err, reportID, "clear")
	}
	return report, nil
}

// DeleteReport removes a DRAFT report and its entries.
func (s *reportService) DeleteReport(ctx context.Context, reportID, userID string) error {
	report, err := s.reportRepo.DeleteReport(ctx, userID, reportID, func(r *domain.ActivityReport) error {
		if r.IsCompleted() {
			return fmt.Errorf("%w: revert report %s to draft before deleting it", apperrors.ErrReportCompleted, r.ReportID)
		}
		return nil
	})
	if err != nil {
		return s.wrapMutation(ctx, err, reportID, "delete")
	}
	s.LogInfo(ctx, "Report deleted", slog.String("report_id", reportID))
	s.publish(ctx, domain.ReportEventDeleted, report)
	return nil
}

// ExportReport renders a COMPLETED report to w and returns a suggested file name.
func (s *reportService) ExportReport(ctx context.Context, reportID, userID string, w io.Writer) (string, error) {
	if s.renderer == nil {
		return "", apperrors.NewAppError(http.StatusInternalServerError, "report export is not configured", nil)
	}
	report, err := s.GetReport(ctx, userID, reportID)
	if err != nil {
		return "", err
	}
	if report.IsDraft() {
		return "", fmt.Errorf("%w: complete report %s before exporting it", apperrors.ErrReportDraft, report.ReportID)
	}

	mission, err := s.missionRepo.FindMissionByID(ctx, userID, report.MissionID)
	if err != nil {
		return "", fmt.Errorf("failed to load mission %s: %w", report.MissionID, err)
	}
	client, err := s.clientRepo.FindClientByID(ctx, userID, mission.ClientID)
	if err != nil {
		return "", fmt.Errorf("failed to load client %s: %w", mission.ClientID, err)
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, userID, mission.CompanyID)
	if err != nil {
		return "", fmt.Errorf("failed to load company %s: %w", mission.CompanyID, err)
	}

	doc := portssvc.ExportDocument{Report: report, Mission: mission, Client: client, Company: company}
	if err := s.renderer.Render(ctx, doc, w); err != nil {
		s.LogError(ctx, err, "Failed to render report", slog.String("report_id", reportID))
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	shortID := report.ReportID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	filename := fmt.Sprintf("activity-report-%d-%02d-%s.%s", report.Year, report.Month, shortID, s.renderer.FileExtension())
	return filename, nil
}

// mutateDraft runs fn inside the report transaction only if the report is DRAFT.
func (s *reportService) mutateDraft(ctx context.Context, reportID, userID string, fn portsrepo.ReportMutation) (*domain.ActivityReport, error) {
	return s.reportRepo.MutateReport(ctx, userID, reportID, func(r *domain.ActivityReport) error {
		if r.IsCompleted() {
			return fmt.Errorf("%w: revert report %s to draft first", apperrors.ErrReportCompleted, r.ReportID)
		}
		if err := fn(r); err != nil {
			return err
		}
		r.Touch(userID, s.now())
		return nil
	})
}

func (s *reportService) wrapLookup(ctx context.Context, err error, reportID string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: report %s", apperrors.ErrNotFound, reportID)
	}
	s.LogError(ctx, err, "Failed to load report", slog.String("report_id", reportID))
	return fmt.Errorf("failed to load report: %w", err)
}

func (s *reportService) wrapMutation(ctx context.Context, err error, reportID, op string) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return fmt.Errorf("%w: report %s", apperrors.ErrNotFound, reportID)
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrStateConflict):
		return err
	}
	s.LogError(ctx, err, "Failed to "+op+" report", slog.String("report_id", reportID))
	return fmt.Errorf("failed to %s report: %w", op, err)
}

func (s *reportService) publish(ctx context.Context, t domain.ReportEventType, report *domain.ActivityReport) {
	if s.publisher == nil {
		return
	}
	event := domain.NewReportEvent(t, report, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish report event",
			slog.String("event_type", string(t)),
			slog.String("report_id", report.ReportID))
	}
}
