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

// companyService keeps exactly one default company per user.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	missionRepo portsrepo.MissionReader
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, missionRepo portsrepo.MissionReader) portssvc.CompanySvcFacade {
	return &companyService{
		BaseService: newBaseService(),
		companyRepo: companyRepo,
		missionRepo: missionRepo,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, userID string) (*domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}
	existing, err := s.companyRepo.ListCompanies(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	company := domain.Company{
		CompanyID:   uuid.NewString(),
		Name:        name,
		IsDefault:   len(existing) == 0,
		UserID:      userID,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("name", name))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	s.LogInfo(ctx, "Company created", slog.String("company_id", company.CompanyID), slog.Bool("is_default", company.IsDefault))
	return &company, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, userID, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

func (s *companyService) ListCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompanies(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies")
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

func (s *companyService) GetDefaultCompany(ctx context.Context, userID string) (*domain.Company, error) {
	companies, err := s.ListCompanies(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range companies {
		if companies[i].IsDefault {
			return &companies[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no default company", apperrors.ErrNotFound)
}

func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, userID string) (*domain.Company, error) {
	company, err := s.GetCompanyByID(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name cannot be empty", apperrors.ErrValidation)
	}
	company.Name = name
	company.Touch(userID, s.now())
	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

func (s *companyService) SetDefaultCompany(ctx context.Context, companyID, userID string) (*domain.Company, error) {
	if _, err := s.GetCompanyByID(ctx, userID, companyID); err != nil {
		return nil, err
	}
	if err := s.companyRepo.SetDefaultCompany(ctx, userID, companyID); err != nil {
		s.LogError(ctx, err, "Failed to set default company", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to set default company: %w", err)
	}
	s.LogInfo(ctx, "Default company changed", slog.String("company_id", companyID))
	return s.GetCompanyByID(ctx, userID, companyID)
}

// DeleteCompany refuses to delete the default company or one still used by missions.
func (s *companyService) DeleteCompany(ctx context.Context, companyID, userID string) error {
	company, err := s.GetCompanyByID(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if company.IsDefault {
		return fmt.Errorf("%w: the default company cannot be deleted", apperrors.ErrValidation)
	}
	missions, err := s.missionRepo.ListMissions(ctx, userID, portsrepo.MissionFilter{CompanyID: companyID})
	if err != nil {
		return fmt.Errorf("failed to check company missions: %w", err)
	}
	if len(missions) > 0 {
		return fmt.Errorf("%w: company %s still has %d mission(s)", apperrors.ErrValidation, companyID, len(missions))
	}
	if err := s.companyRepo.DeleteCompany(ctx, userID, companyID); err != nil {
		s.LogError(ctx, err, "Failed to delete company", slog.String("company_id", companyID))
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}
