// Package exchangerates provides the rate sources feeding the currency converter.
package exchangerates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// RepositorySource reads the latest stored USD-based rate per currency.
type RepositorySource struct {
	repo portsrepo.ExchangeRateReader
}

// NewRepositorySource creates a source over the exchange_rates table.
func NewRepositorySource(repo portsrepo.ExchangeRateReader) *RepositorySource {
	return &RepositorySource{repo: repo}
}

func (s *RepositorySource) Name() string { return "db" }

func (s *RepositorySource) FetchRates(ctx context.Context) (*domain.RateSnapshot, error) {
	rows, err := s.repo.FindLatestRates(ctx, domain.PivotCurrency)
	if err != nil {
		return nil, fmt.Errorf("load latest rates: %w", err)
	}
	rates := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		rates[r.ToCurrency] = r.Rate
	}
	return &domain.RateSnapshot{Rates: rates, FetchedAt: time.Now().UTC(), Source: s.Name()}, nil
}

// HTTPSource fetches a JSON document of the form {"base":"USD","rates":{"EUR":0.92,...}}.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for url. A nil client uses a 10s-timeout default.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSource{url: url, client: client}
}

func (s *HTTPSource) Name() string { return "http" }

type ratesDocument struct {
	Base     string                     `json:"base"`
	BaseCode string                     `json:"base_code"`
	Result   string                     `json:"result"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

func (s *HTTPSource) FetchRates(ctx context.Context) (*domain.RateSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("fetch rates: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var doc ratesDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}
	if doc.Result != "" && doc.Result != "success" {
		return nil, fmt.Errorf("rate provider returned result %q", doc.Result)
	}
	base := strings.ToUpper(doc.Base)
	if base == "" {
		base = strings.ToUpper(doc.BaseCode)
	}
	if base != domain.PivotCurrency {
		return nil, fmt.Errorf("rate provider base is %q, want %s", base, domain.PivotCurrency)
	}
	if len(doc.Rates) == 0 {
		return nil, fmt.Errorf("rate provider returned no rates")
	}
	return &domain.RateSnapshot{Rates: doc.Rates, FetchedAt: time.Now().UTC(), Source: s.Name()}, nil
}

// StaticSource serves a fixed table, for tests and offline runs.
type StaticSource struct {
	rates map[string]decimal.Decimal
}

// NewStaticSource creates a source always returning rates.
func NewStaticSource(rates map[string]decimal.Decimal) *StaticSource {
	return &StaticSource{rates: rates}
}

// DefaultStaticRates is a small offline table quoted per USD.
func DefaultStaticRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.92"),
		"GBP": decimal.RequireFromString("0.79"),
		"CHF": decimal.RequireFromString("0.88"),
		"CAD": decimal.RequireFromString("1.36"),
		"JPY": decimal.RequireFromString("151.5"),
	}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) FetchRates(context.Context) (*domain.RateSnapshot, error) {
	rates := make(map[string]decimal.Decimal, len(s.rates))
	for k, v := range s.rates {
		rates[k] = v
	}
	return &domain.RateSnapshot{Rates: rates, FetchedAt: time.Now().UTC(), Source: s.Name()}, nil
}

var (
	_ portssvc.RateSource = (*RepositorySource)(nil)
	_ portssvc.RateSource = (*HTTPSource)(nil)
	_ portssvc.RateSource = (*StaticSource)(nil)
)
