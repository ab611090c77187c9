package services

import (
	"context"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/SscSPs/activity_tracker/internal/dto"
)

// CompanyReaderSvc defines read operations for companies
type CompanyReaderSvc interface {
	GetCompanyByID(ctx context.Context, userID, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context, userID string) ([]domain.Company, error)

	// GetDefaultCompany returns the user's default company.
	GetDefaultCompany(ctx context.Context, userID string) (*domain.Company, error)
}

// CompanyWriterSvc defines write operations for companies
type CompanyWriterSvc interface {
	// CreateCompany creates a company. The user's first company becomes the default.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, userID string) (*domain.Company, error)
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, userID string) (*domain.Company, error)
	SetDefaultCompany(ctx context.Context, companyID, userID string) (*domain.Company, error)

	// DeleteCompany removes a non-default company that no mission references.
	DeleteCompany(ctx context.Context, companyID, userID string) error
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
}
