package services

import (
	"context"
	"time"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/SscSPs/activity_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyConverter converts amounts using the last successfully fetched rate snapshot.
// It never fetches on the calling goroutine.
type CurrencyConverter interface {
	// Convert fails with apperrors.ErrConversionUnavailable when either currency has no
	// usable rate.
	Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error)

	// Snapshot returns the snapshot currently being served, or nil before the first fetch.
	Snapshot() *domain.RateSnapshot
}

// RateSource fetches a complete USD-pivoted rate table.
type RateSource interface {
	FetchRates(ctx context.Context) (*domain.RateSnapshot, error)
	Name() string
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new USD-based exchange rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// LatestRates returns the most recent stored rate per currency.
	LatestRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// HolidayOracle answers weekend and public-holiday questions for a country.
type HolidayOracle interface {
	IsWeekend(date time.Time) bool
	HolidayName(date time.Time, countryCode string) (string, bool)
	WorkingDaysInMonth(year int, month time.Month, countryCode string) int
	WorkingDaysInYear(year int, countryCode string) int
}
