package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/dto"
	"github.com/google/uuid"
)

type missionService struct {
	BaseService
	missionRepo portsrepo.MissionRepositoryFacade
	clientRepo  portsrepo.ClientReader
	companyRepo portsrepo.CompanyReader
	reportRepo  portsrepo.ActivityReportReader
}

// NewMissionService creates a new mission service.
func NewMissionService(
	missionRepo portsrepo.MissionRepositoryFacade,
	clientRepo portsrepo.ClientReader,
	companyRepo portsrepo.CompanyReader,
	reportRepo portsrepo.ActivityReportReader,
) portssvc.MissionSvcFacade {
	return &missionService{
		BaseService: newBaseService(),
		missionRepo: missionRepo,
		clientRepo:  clientRepo,
		companyRepo: companyRepo,
		reportRepo:  reportRepo,
	}
}

var _ portssvc.MissionSvcFacade = (*missionService)(nil)

// CreateMission attaches a mission to an owned client and company. Without a company
// the user's default company is used.
func (s *missionService) CreateMission(ctx context.Context, req dto.CreateMissionRequest, userID string) (*domain.Mission, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: mission name is required", apperrors.ErrValidation)
	}
	if req.DailyRate != nil && req.DailyRate.IsNegative() {
		return nil, fmt.Errorf("%w: daily rate cannot be negative", apperrors.ErrValidation)
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}

	if _, err := s.clientRepo.FindClientByID(ctx, userID, req.ClientID); err != nil {
		return nil, ownedLookupError(err, "client", req.ClientID)
	}

	companyID := req.CompanyID
	if companyID == "" {
		def, err := s.defaultCompanyID(ctx, userID)
		if err != nil {
			return nil, err
		}
		companyID = def
	} else if _, err := s.companyRepo.FindCompanyByID(ctx, userID, companyID); err != nil {
		return nil, ownedLookupError(err, "company", companyID)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	mission := domain.Mission{
		MissionID:   uuid.NewString(),
		Name:        name,
		ClientID:    req.ClientID,
		CompanyID:   companyID,
		DailyRate:   req.DailyRate,
		IsActive:    isActive,
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate,
		UserID:      userID,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	if err := s.missionRepo.SaveMission(ctx, mission); err != nil {
		s.LogError(ctx, err, "Failed to save mission", slog.String("client_id", req.ClientID))
		return nil, fmt.Errorf("failed to create mission: %w", err)
	}
	s.LogInfo(ctx, "Mission created", slog.String("mission_id", mission.MissionID))
	return &mission, nil
}

func (s *missionService) GetMissionByID(ctx context.Context, userID, missionID string) (*domain.Mission, error) {
	mission, err := s.missionRepo.FindMissionByID(ctx, userID, missionID)
	if err != nil {
		return nil, ownedLookupError(err, "mission", missionID)
	}
	return mission, nil
}

func (s *missionService) ListMissions(ctx context.Context, userID string, params dto.ListMissionsParams) ([]domain.Mission, error) {
	missions, err := s.missionRepo.ListMissions(ctx, userID, portsrepo.MissionFilter{
		ClientID:   params.ClientID,
		CompanyID:  params.CompanyID,
		ActiveOnly: params.ActiveOnly,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list missions")
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	return missions, nil
}

// UpdateMission applies the provided fields. Reports keep the daily rate they were created with.
func (s *missionService) UpdateMission(ctx context.Context, missionID string, req dto.UpdateMissionRequest, userID string) (*domain.Mission, error) {
	mission, err := s.GetMissionByID(ctx, userID, missionID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: mission name cannot be empty", apperrors.ErrValidation)
		}
		mission.Name = name
	}
	switch {
	case req.ClearDailyRate:
		mission.DailyRate = nil
	case req.DailyRate != nil:
		if req.DailyRate.IsNegative() {
			return nil, fmt.Errorf("%w: daily rate cannot be negative", apperrors.ErrValidation)
		}
		mission.DailyRate = req.DailyRate
	}
	if req.IsActive != nil {
		mission.IsActive = *req.IsActive
	}
	if req.StartDate != nil {
		mission.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		mission.EndDate = req.EndDate
	}
	if mission.EndDate != nil && mission.EndDate.Before(mission.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}
	mission.Touch(userID, s.now())

	if err := s.missionRepo.UpdateMission(ctx, *mission); err != nil {
		s.LogError(ctx, err, "Failed to update mission", slog.String("mission_id", missionID))
		return nil, fmt.Errorf("failed to update mission: %w", err)
	}
	return mission, nil
}

func (s *missionService) DeleteMission(ctx context.Context, missionID, userID string) error {
	if _, err := s.GetMissionByID(ctx, userID, missionID); err != nil {
		return err
	}
	count, err := s.reportRepo.CountReportsByMission(ctx, userID, missionID)
	if err != nil {
		return fmt.Errorf("failed to check mission reports: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: mission %s still has %d report(s)", apperrors.ErrValidation, missionID, count)
	}
	if err := s.missionRepo.DeleteMission(ctx, userID, missionID); err != nil {
		s.LogError(ctx, err, "Failed to delete mission", slog.String("mission_id", missionID))
		return fmt.Errorf("failed to delete mission: %w", err)
	}
	return nil
}

func (s *missionService) defaultCompanyID(ctx context.Context, userID string) (string, error) {
	companies, err := s.companyRepo.ListCompanies(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to list companies: %w", err)
	}
	for _, c := range companies {
		if c.IsDefault {
			return c.CompanyID, nil
		}
	}
	return "", fmt.Errorf("%w: create a company before adding missions", apperrors.ErrValidation)
}

func ownedLookupError(err error, kind, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
	}
	return fmt.Errorf("failed to get %s %s: %w", kind, id, err)
}
