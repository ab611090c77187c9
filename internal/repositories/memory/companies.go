package memory

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
)

func (s *Store) FindCompanyByID(_ context.Context, userID, companyID string) (*domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies[companyID]
	if !ok || c.UserID != userID {
		return nil, apperrors.NewNotFoundError("company " + companyID + " not found")
	}
	return &c, nil
}

func (s *Store) ListCompanies(_ context.Context, userID string) ([]domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Company{}
	for _, c := range s.companies {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CompanyID < out[j].CompanyID
	})
	return out, nil
}

func (s *Store) SaveCompany(_ context.Context, company domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[company.CompanyID]; ok {
		return apperrors.NewAppError(http.StatusConflict, "company "+company.CompanyID+" already exists", apperrors.ErrDuplicate)
	}
	if company.IsDefault {
		for _, c := range s.companies {
			if c.UserID == company.UserID && c.IsDefault {
				return apperrors.NewAppError(http.StatusConflict, "user already has a default company", apperrors.ErrDuplicate)
			}
		}
	}
	s.companies[company.CompanyID] = company
	return nil
}

// UpdateCompany changes the name only; the default flag moves through SetDefaultCompany.
func (s *Store) UpdateCompany(_ context.Context, company domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.companies[company.CompanyID]
	if !ok || existing.UserID != company.UserID {
		return apperrors.NewNotFoundError("company " + company.CompanyID + " not found")
	}
	existing.Name = company.Name
	existing.LastUpdatedAt = company.LastUpdatedAt
	existing.LastUpdatedBy = company.LastUpdatedBy
	s.companies[company.CompanyID] = existing
	return nil
}

func (s *Store) SetDefaultCompany(_ context.Context, userID, companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.companies[companyID]
	if !ok || target.UserID != userID {
		return apperrors.NewNotFoundError("company " + companyID + " not found")
	}
	for id, c := range s.companies {
		if c.UserID == userID && c.IsDefault && id != companyID {
			c.IsDefault = false
			s.companies[id] = c
		}
	}
	target.IsDefault = true
	target.Touch(userID, time.Now().UTC())
	s.companies[companyID] = target
	return nil
}

func (s *Store) DeleteCompany(_ context.Context, userID, companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[companyID]
	if !ok || c.UserID != userID {
		return apperrors.NewNotFoundError("company " + companyID + " not found")
	}
	for _, m := range s.missions {
		if m.CompanyID == companyID {
			return apperrors.NewValidationError("company " + companyID + " still has missions")
		}
	}
	delete(s.companies, companyID)
	return nil
}
