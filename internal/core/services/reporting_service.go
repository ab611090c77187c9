package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo       portsrepo.ReportingRepository
	converter           portssvc.CurrencyConverter
	oracle              portssvc.HolidayOracle
	defaultCountry      string
	defaultBaseCurrency string
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithDefaultHolidayCountry sets the calendar used for workingDaysInYear when the caller names none.
func WithDefaultHolidayCountry(country string) ReportingServiceOption {
	return func(s *reportingService) {
		if country != "" {
			s.defaultCountry = strings.ToUpper(country)
		}
	}
}

// WithDefaultBaseCurrency sets the currency used when the caller names none.
func WithDefaultBaseCurrency(currency string) ReportingServiceOption {
	return func(s *reportingService) {
		if currency != "" {
			s.defaultBaseCurrency = strings.ToUpper(currency)
		}
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(
	repo portsrepo.ReportingRepository,
	converter portssvc.CurrencyConverter,
	oracle portssvc.HolidayOracle,
	options ...ReportingServiceOption,
) portssvc.ReportingService {
	svc := &reportingService{
		BaseService:         newBaseService(),
		reportingRepo:       repo,
		converter:           converter,
		oracle:              oracle,
		defaultCountry:      "FR",
		defaultBaseCurrency: "EUR",
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// yearAggregate is the result of a single pass over a year's completed reports.
type yearAggregate struct {
	totalDays    decimal.Decimal
	totalRevenue decimal.Decimal
	monthly      []domain.MonthlyData
	monthlyByCli []map[string]*domain.ClientMonthRevenue
	clients      map[string]*domain.ClientData
	companies    map[string]*domain.CompanyData
}

// ComputeYearlyReport aggregates the user's completed reports for year.
func (s *reportingService) ComputeYearlyReport(ctx context.Context, userID string, year int, baseCurrency, country string) (*domain.ReportingData, error) {
	if year < domain.MinReportYear || year > domain.MaxReportYear {
		return nil, fmt.Errorf("%w: year %d must be between %d and %d", apperrors.ErrValidation, year, domain.MinReportYear, domain.MaxReportYear)
	}
	baseCurrency = strings.ToUpper(strings.TrimSpace(baseCurrency))
	if baseCurrency == "" {
		baseCurrency = s.defaultBaseCurrency
	}
	if !isCurrencyCode(baseCurrency) {
		return nil, fmt.Errorf("%w: base currency %q is not an ISO 4217 code", apperrors.ErrValidation, baseCurrency)
	}
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		country = s.defaultCountry
	}

	rows, err := s.reportingRepo.FindCompletedReportRows(ctx, userID, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to load completed reports", slog.Int("year", year))
		return nil, fmt.Errorf("failed to load completed reports for %d: %w", year, err)
	}
	current, err := s.aggregate(rows, baseCurrency)
	if err != nil {
		s.LogError(ctx, err, "Yearly report conversion failed", slog.Int("year", year), slog.String("base_currency", baseCurrency))
		return nil, err
	}

	prevRows, err := s.reportingRepo.FindCompletedReportRows(ctx, userID, year-1)
	if err != nil {
		s.LogError(ctx, err, "Failed to load previous year reports", slog.Int("year", year-1))
		return nil, fmt.Errorf("failed to load completed reports for %d: %w", year-1, err)
	}
	var previous *domain.YearSummary
	if len(prevRows) > 0 {
		prev, err := s.aggregate(prevRows, baseCurrency)
		if err != nil {
			s.LogError(ctx, err, "Previous year conversion failed", slog.Int("year", year-1), slog.String("base_currency", baseCurrency))
			return nil, err
		}
		previous = &domain.YearSummary{
			TotalDays:        prev.totalDays,
			TotalRevenue:     prev.totalRevenue,
			AverageDailyRate: averageRate(prev.totalRevenue, prev.totalDays),
			ClientCount:      len(prev.clients),
		}
	}

	data := &domain.ReportingData{
		Year:                 year,
		BaseCurrency:         baseCurrency,
		TotalDays:            current.totalDays,
		TotalRevenue:         current.totalRevenue,
		AverageDailyRate:     averageRate(current.totalRevenue, current.totalDays),
		MonthlyData:          current.monthly,
		MonthlyClientRevenue: current.monthlyClientRevenue(),
		ClientData:           current.clientData(),
		CompanyData:          current.companyData(),
		WorkingDaysInYear:    s.oracle.WorkingDaysInYear(year, country),
		PreviousYear:         previous,
	}

	s.LogDebug(ctx, "Yearly report computed",
		slog.Int("year", year),
		slog.Int("reports", len(rows)),
		slog.String("base_currency", baseCurrency),
		slog.String("total_days", data.TotalDays.String()))
	return data, nil
}

// aggregate folds the rows into totals, month, client and company pivots in one pass.
// Any conversion failure aborts the whole aggregation.
func (s *reportingService) aggregate(rows []domain.ReportingRow, baseCurrency string) (*yearAggregate, error) {
	agg := &yearAggregate{
		totalDays:    decimal.Zero,
		totalRevenue: decimal.Zero,
		monthly:      make([]domain.MonthlyData, 12),
		monthlyByCli: make([]map[string]*domain.ClientMonthRevenue, 12),
		clients:      make(map[string]*domain.ClientData),
		companies:    make(map[string]*domain.CompanyData),
	}
	for i := range agg.monthly {
		agg.monthly[i] = domain.MonthlyData{Month: i + 1, Days: decimal.Zero, Revenue: decimal.Zero}
		agg.monthlyByCli[i] = make(map[string]*domain.ClientMonthRevenue)
	}

	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			return nil, fmt.Errorf("%w: report %s has month %d", apperrors.ErrValidation, row.ReportID, row.Month)
		}

		revenue := decimal.Zero
		if rate := row.EffectiveDailyRate(); rate != nil {
			revenue = row.TotalDays.Mul(*rate)
		}
		converted, err := s.converter.Convert(revenue, row.ClientCurrency, baseCurrency)
		if err != nil {
			return nil, fmt.Errorf("report %s (%s to %s): %w", row.ReportID, row.ClientCurrency, baseCurrency, err)
		}

		agg.totalDays = agg.totalDays.Add(row.TotalDays)
		agg.totalRevenue = agg.totalRevenue.Add(converted)

		m := &agg.monthly[row.Month-1]
		m.Days = m.Days.Add(row.TotalDays)
		m.Revenue = m.Revenue.Add(converted)

		mc, ok := agg.monthlyByCli[row.Month-1][row.ClientID]
		if !ok {
			mc = &domain.ClientMonthRevenue{ClientID: row.ClientID, ClientName: row.ClientName, Revenue: decimal.Zero}
			agg.monthlyByCli[row.Month-1][row.ClientID] = mc
		}
		mc.Revenue = mc.Revenue.Add(converted)

		c, ok := agg.clients[row.ClientID]
		if !ok {
			c = &domain.ClientData{
				ClientID:         row.ClientID,
				Name:             row.ClientName,
				Currency:         row.ClientCurrency,
				Days:             decimal.Zero,
				Revenue:          decimal.Zero,
				ConvertedRevenue: decimal.Zero,
			}
			agg.clients[row.ClientID] = c
		}
		c.Days = c.Days.Add(row.TotalDays)
		c.Revenue = c.Revenue.Add(revenue)
		c.ConvertedRevenue = c.ConvertedRevenue.Add(converted)

		co, ok := agg.companies[row.CompanyID]
		if !ok {
			co = &domain.CompanyData{CompanyID: row.CompanyID, Name: row.CompanyName, Days: decimal.Zero, ConvertedRevenue: decimal.Zero}
			agg.companies[row.CompanyID] = co
		}
		co.Days = co.Days.Add(row.TotalDays)
		co.ConvertedRevenue = co.ConvertedRevenue.Add(converted)
	}
	return agg, nil
}

func (a *yearAggregate) monthlyClientRevenue() []domain.MonthlyClientRevenue {
	out := make([]domain.MonthlyClientRevenue, 12)
	for i, byClient := range a.monthlyByCli {
		clients := make([]domain.ClientMonthRevenue, 0, len(byClient))
		for _, c := range byClient {
			if c.Revenue.IsZero() {
				continue
			}
			clients = append(clients, *c)
		}
		sort.SliceStable(clients, func(x, y int) bool {
			return clients[x].Revenue.GreaterThan(clients[y].Revenue)
		})
		out[i] = domain.MonthlyClientRevenue{Month: i + 1, Clients: clients}
	}
	return out
}

func (a *yearAggregate) clientData() []domain.ClientData {
	out := make([]domain.ClientData, 0, len(a.clients))
	for _, c := range a.clients {
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ConvertedRevenue.GreaterThan(out[j].ConvertedRevenue)
	})
	return out
}

func (a *yearAggregate) companyData() []domain.CompanyData {
	out := make([]domain.CompanyData, 0, len(a.companies))
	for _, c := range a.companies {
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ConvertedRevenue.GreaterThan(out[j].ConvertedRevenue)
	})
	return out
}

// averageRate is revenue/days, or zero when no day was worked.
func averageRate(revenue, days decimal.Decimal) decimal.Decimal {
	if !days.IsPositive() {
		return decimal.Zero
	}
	return revenue.Div(days)
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
