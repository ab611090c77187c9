package repositories

import (
	"context"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	FindCompanyByID(ctx context.Context, userID, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context, userID string) ([]domain.Company, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	SaveCompany(ctx context.Context, company domain.Company) error
	UpdateCompany(ctx context.Context, company domain.Company) error

	// SetDefaultCompany marks companyID as the user's only default company.
	// Clearing the previous default and setting the new one happen atomically.
	SetDefaultCompany(ctx context.Context, userID, companyID string) error

	DeleteCompany(ctx context.Context, userID, companyID string) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
