package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateRefresher is notified after a stored rate changes so it can reload its snapshot.
type RateRefresher interface {
	Refresh(ctx context.Context) error
}

// exchangeRateService provides business logic for stored exchange rates.
type exchangeRateService struct {
	BaseService
	rateRepo  portsrepo.ExchangeRateRepositoryFacade
	refresher RateRefresher
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithRateRefresher reloads the converter snapshot after each stored rate.
func WithRateRefresher(r RateRefresher) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.refresher = r
	}
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, options ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		BaseService: newBaseService(),
		rateRepo:    rateRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate stores a rate quoted against USD.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	// Input validation (basic format) is handled by DTO binding tags.
	from := strings.ToUpper(req.FromCurrencyCode)
	to := strings.ToUpper(req.ToCurrencyCode)

	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if from != domain.PivotCurrency {
		return nil, fmt.Errorf("%w: rates must be quoted against %s", apperrors.ErrValidation, domain.PivotCurrency)
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	if !isCurrencyCode(to) {
		return nil, fmt.Errorf("%w: %q is not an ISO 4217 code", apperrors.ErrValidation, to)
	}

	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCurrency:   from,
		ToCurrency:     to,
		Rate:           req.Rate,
		DateEffective:  req.DateEffective.UTC(),
		AuditFields:    domain.NewAuditFields(creatorUserID, s.now()),
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", slog.String("to_currency", to))
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}
	s.LogInfo(ctx, "Exchange rate stored", slog.String("to_currency", to), slog.String("rate", rate.Rate.String()))

	if s.refresher != nil {
		if err := s.refresher.Refresh(ctx); err != nil {
			// The new row will be picked up by the next scheduled refresh.
			s.LogError(ctx, err, "Failed to refresh converter after storing rate")
		}
	}
	return &rate, nil
}

// LatestRates returns the most recent USD-based rate per currency.
func (s *exchangeRateService) LatestRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.FindLatestRates(ctx, domain.PivotCurrency)
	if err != nil {
		s.LogError(ctx, err, "Failed to load latest exchange rates")
		return nil, fmt.Errorf("failed to load exchange rates: %w", err)
	}
	return rates, nil
}
