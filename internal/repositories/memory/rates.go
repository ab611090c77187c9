package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
)

func rateKey(r domain.ExchangeRate) string {
	return r.FromCurrency + "/" + r.ToCurrency + "/" + r.DateEffective.Format("2006-01-02")
}

// SaveExchangeRate replaces any rate stored for the same pair and effective date.
func (s *Store) SaveExchangeRate(_ context.Context, rate domain.ExchangeRate) error {
	rate.FromCurrency = strings.ToUpper(rate.FromCurrency)
	rate.ToCurrency = strings.ToUpper(rate.ToCurrency)
	if rate.FromCurrency == rate.ToCurrency {
		return apperrors.NewValidationError("from and to currencies cannot be the same")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := rateKey(rate)
	if existing, ok := s.rates[key]; ok {
		rate.ExchangeRateID = existing.ExchangeRateID
		rate.CreatedAt = existing.CreatedAt
		rate.CreatedBy = existing.CreatedBy
	}
	s.rates[key] = rate
	return nil
}

func (s *Store) FindLatestRates(_ context.Context, fromCurrencyCode string) ([]domain.ExchangeRate, error) {
	from := strings.ToUpper(fromCurrencyCode)
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest := make(map[string]domain.ExchangeRate)
	for _, r := range s.rates {
		if r.FromCurrency != from {
			continue
		}
		cur, ok := latest[r.ToCurrency]
		if !ok || r.DateEffective.After(cur.DateEffective) ||
			(r.DateEffective.Equal(cur.DateEffective) && r.LastUpdatedAt.After(cur.LastUpdatedAt)) {
			latest[r.ToCurrency] = r
		}
	}
	out := make([]domain.ExchangeRate, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ToCurrency < out[j].ToCurrency })
	return out, nil
}
