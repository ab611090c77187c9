package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PivotCurrency is the currency every stored rate is quoted against.
const PivotCurrency = "USD"

// ExchangeRate represents units of ToCurrency per one unit of FromCurrency
// on DateEffective. Stored rows always have FromCurrency == PivotCurrency.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	DateEffective  time.Time       `json:"dateEffective"`
	AuditFields
}

// RateSnapshot is an immutable table of rates keyed by currency code, each
// expressed as units of that currency per one USD.
type RateSnapshot struct {
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetchedAt"`
	Source    string                     `json:"source"`
}

// Rate returns the USD-pivoted rate for code. USD is always 1.
func (s *RateSnapshot) Rate(code string) (decimal.Decimal, bool) {
	if code == PivotCurrency {
		return decimal.NewFromInt(1), true
	}
	r, ok := s.Rates[code]
	if !ok || !r.IsPositive() {
		return decimal.Zero, false
	}
	return r, true
}
