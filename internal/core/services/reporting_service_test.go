package services

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/activity_tracker/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) FindCompletedReportRows(ctx context.Context, userID string, year int) ([]domain.ReportingRow, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportingRow), args.Error(1)
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

// fixedRates is a RateSource serving one table forever.
type fixedRates map[string]decimal.Decimal

func (f fixedRates) FetchRates(context.Context) (*domain.RateSnapshot, error) {
	return &domain.RateSnapshot{Rates: f, Source: "test"}, nil
}

func (f fixedRates) Name() string { return "test" }

func loadedConverter(t *testing.T) *CurrencyConverter {
	t.Helper()
	c := NewCurrencyConverter(fixedRates{"EUR": dec("0.8"), "GBP": dec("0.5")}, ConverterConfig{}, nil)
	require.NoError(t, c.Refresh(context.Background()))
	return c
}

func yearRows() []domain.ReportingRow {
	return []domain.ReportingRow{
		{ReportID: "r1", Month: 1, Year: 2025, TotalDays: dec("10"), ReportDailyRate: decPtr("500"), MissionDailyRate: decPtr("999"),
			ClientID: "a", ClientName: "Alpha", ClientCurrency: "EUR", CompanyID: "x", CompanyName: "X SAS"},
		{ReportID: "r2", Month: 1, Year: 2025, TotalDays: dec("5"), MissionDailyRate: decPtr("400"),
			ClientID: "b", ClientName: "Beta", ClientCurrency: "GBP", CompanyID: "y", CompanyName: "Y Ltd"},
		{ReportID: "r3", Month: 3, Year: 2025, TotalDays: dec("2.5"), ReportDailyRate: decPtr("500"),
			ClientID: "a", ClientName: "Alpha", ClientCurrency: "EUR", CompanyID: "x", CompanyName: "X SAS"},
		{ReportID: "r4", Month: 6, Year: 2025, TotalDays: dec("4"),
			ClientID: "c", ClientName: "Gamma", ClientCurrency: "USD", CompanyID: "x", CompanyName: "X SAS"},
	}
}

func TestComputeYearlyReport_Aggregates(t *testing.T) {
	repo := new(MockReportingRepository)
	repo.On("FindCompletedReportRows", mock.Anything, "user-1", 2025).Return(yearRows(), nil)
	repo.On("FindCompletedReportRows", mock.Anything, "user-1", 2024).Return([]domain.ReportingRow{}, nil)
	svc := NewReportingService(repo, loadedConverter(t), stubOracle{working: 251})

	data, err := svc.ComputeYearlyReport(context.Background(), "user-1", 2025, "EUR", "")
	require.NoError(t, err)

	assert.Equal(t, 2025, data.Year)
	assert.Equal(t, "EUR", data.BaseCurrency)
	assert.True(t, data.TotalDays.Equal(dec("21.5")), "total days %s", data.TotalDays)
	// 5000 EUR + 2000 GBP (3200 EUR) + 1250 EUR + nothing billable.
	assert.True(t, data.TotalRevenue.Equal(dec("9450")), "total revenue %s", data.TotalRevenue)
	assert.True(t, data.AverageDailyRate.Equal(dec("9450").Div(dec("21.5"))))
	assert.Equal(t, 251, data.WorkingDaysInYear)
	assert.Nil(t, data.PreviousYear)

	require.Len(t, data.MonthlyData, 12)
	for i, m := range data.MonthlyData {
		assert.Equal(t, i+1, m.Month)
	}
	assert.True(t, data.MonthlyData[0].Days.Equal(dec("15")))
	assert.True(t, data.MonthlyData[0].Revenue.Equal(dec("8200")))
	assert.True(t, data.MonthlyData[2].Revenue.Equal(dec("1250")))
	assert.True(t, data.MonthlyData[5].Days.Equal(dec("4")))
	assert.True(t, data.MonthlyData[5].Revenue.IsZero())
	assert.True(t, data.MonthlyData[11].Days.IsZero())

	require.Len(t, data.MonthlyClientRevenue, 12)
	jan := data.MonthlyClientRevenue[0].Clients
	require.Len(t, jan, 2)
	assert.Equal(t, "a", jan[0].ClientID)
	assert.Equal(t, "b", jan[1].ClientID)
	assert.True(t, jan[1].Revenue.Equal(dec("3200")))
	assert.Empty(t, data.MonthlyClientRevenue[5].Clients)

	require.Len(t, data.ClientData, 3)
	assert.Equal(t, "a", data.ClientData[0].ClientID)
	assert.True(t, data.ClientData[0].Days.Equal(dec("12.5")))
	assert.True(t, data.ClientData[0].ConvertedRevenue.Equal(dec("6250")))
	assert.Equal(t, "b", data.ClientData[1].ClientID)
	assert.Equal(t, "GBP", data.ClientData[1].Currency)
	assert.True(t, data.ClientData[1].Revenue.Equal(dec("2000")))
	assert.True(t, data.ClientData[1].ConvertedRevenue.Equal(dec("3200")))
	assert.Equal(t, "c", data.ClientData[2].ClientID)

	require.Len(t, data.CompanyData, 2)
	assert.Equal(t, "x", data.CompanyData[0].CompanyID)
	assert.True(t, data.CompanyData[0].Days.Equal(dec("16.5")))
	assert.True(t, data.CompanyData[0].ConvertedRevenue.Equal(dec("6250")))
	assert.Equal(t, "y", data.CompanyData[1].CompanyID)

	repo.AssertExpectations(t)
}

func TestComputeYearlyReport_EmptyYear(t *testing.T) {
	repo := new(MockReportingRepository)
	repo.On("FindCompletedReportRows", mock.Anything, "user-1", mock.Anything).Return([]domain.ReportingRow{}, nil)
	svc := NewReportingService(repo, loadedConverter(t), stubOracle{})

	data, err := svc.ComputeYearlyReport(context.Background(), "user-1", 2025, "", "")
	require.NoError(t, err)

	assert.Equal(t, "EUR", data.BaseCurrency)
	assert.True(t, data.TotalDays.IsZero())
	assert.True(t, data.AverageDailyRate.IsZero())
	assert.Len(t, data.MonthlyData, 12)
	assert.Empty(t, data.ClientData)
	assert.Nil(t, data.PreviousYear)
}

func TestComputeYearlyReport_PreviousYear(t *testing.T) {
	repo := new(MockReportingRepository)
	repo.On("FindCompletedReportRows", mock.Anything, "user-1", 2026).Return([]domain.ReportingRow{}, nil)
	repo.On("FindCompletedReportRows", mock.Anything, "user-1", 2025).Return(yearRows(), nil)
	svc := NewReportingService(repo, loadedConverter(t), stubOracle{})

	data, err := svc.ComputeYearlyReport(context.Background(), "user-1", 2026, "USD", "")
	require.NoError(t, err)

	require.NotNil(t, data.PreviousYear)
	assert.True(t, data.PreviousYear.TotalDays.Equal(dec("21.5")))
	// 5000 EUR = 6250 USD, 2000 GBP = 4000 USD, 1250 EUR = 1562.5 USD.
	assert.True(t, data.PreviousYear.TotalRevenue.Equal(dec("11812.5")), "got %s", data.PreviousYear.TotalRevenue)
	assert.True(t, data.PreviousYear.AverageDailyRate.Equal(dec("11812.5").Div(dec("21.5"))))
	assert.Equal(t, 3, data.PreviousYear.ClientCount)
}

func TestComputeYearlyReport_ConversionFailureFailsWholeReport(t *testing.T) {
	rows := append(yearRows(), domain.ReportingRow{
		ReportID: "r5", Month: 7, Year: 2025, TotalDays: dec("1"), ReportDailyRate: decPtr("100000"),
		ClientID: "d", ClientName: "Delta", ClientCurrency: "XAF", CompanyID: "x", CompanyName: "X SAS",
	})
	repo := new(MockReportingRepository)
	repo.On("FindCompletedReportRows", mock.Anything, "user-1", 2025).Return(rows, nil)
	svc := NewReportingService(repo, loadedConverter(t), stubOracle{})

	data, err := svc.ComputeYearlyReport(context.Background(), "user-1", 2025, "EUR", "")
	assert.ErrorIs(t, err, apperrors.ErrConversionUnavailable)
	assert.Nil(t, data)
}

func TestComputeYearlyReport_NoRatesLoaded(t *testing.T) {
	repo := new(MockReportingRepository)
	repo.On("FindCompletedReportRows", mock.Anything, "user-1", 2025).Return(yearRows(), nil)
	converter := NewCurrencyConverter(fixedRates{}, ConverterConfig{}, nil)
	svc := NewReportingService(repo, converter, stubOracle{})

	_, err := svc.ComputeYearlyReport(context.Background(), "user-1", 2025, "EUR", "")
	assert.ErrorIs(t, err, apperrors.ErrConversionUnavailable)
}

func TestComputeYearlyReport_Validation(t *testing.T) {
	svc := NewReportingService(new(MockReportingRepository), loadedConverter(t), stubOracle{})

	_, err := svc.ComputeYearlyReport(context.Background(), "user-1", 1999, "EUR", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = svc.ComputeYearlyReport(context.Background(), "user-1", 2025, "EURO", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

type countryOracle struct {
	stubOracle
	seen []string
}

func (o *countryOracle) WorkingDaysInYear(_ int, country string) int {
	o.seen = append(o.seen, country)
	return 250
}

func TestComputeYearlyReport_HolidayCountry(t *testing.T) {
	repo := new(MockReportingRepository)
	repo.On("FindCompletedReportRows", mock.Anything, "user-1", mock.Anything).Return([]domain.ReportingRow{}, nil)
	oracle := &countryOracle{}
	svc := NewReportingService(repo, loadedConverter(t), oracle, WithDefaultHolidayCountry("de"))

	_, err := svc.ComputeYearlyReport(context.Background(), "user-1", 2025, "EUR", "")
	require.NoError(t, err)
	_, err = svc.ComputeYearlyReport(context.Background(), "user-1", 2025, "EUR", "gb")
	require.NoError(t, err)

	assert.Equal(t, []string{"DE", "GB"}, oracle.seen)
}

func TestComputeYearlyReport_IgnoresDrafts(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveClient(ctx, domain.Client{ClientID: "c1", Name: "Acme", Currency: "EUR", HolidayCountry: "FR", UserID: "u1"}))
	require.NoError(t, store.SaveCompany(ctx, domain.Company{CompanyID: "co1", Name: "Solo", IsDefault: true, UserID: "u1"}))
	require.NoError(t, store.SaveMission(ctx, domain.Mission{MissionID: "m1", ClientID: "c1", CompanyID: "co1", DailyRate: decPtr("600"), StartDate: now, UserID: "u1"}))

	for month, status := range map[int]domain.ReportStatus{3: domain.ReportStatusCompleted, 4: domain.ReportStatusDraft} {
		report := domain.ActivityReport{
			ReportID: "r" + string(rune('0'+month)), MissionID: "m1", Month: month, Year: 2025, UserID: "u1",
			Status: status, TotalDays: dec("1"), AuditFields: domain.NewAuditFields("u1", now),
		}
		entries := []domain.ReportEntry{{EntryID: report.ReportID + "-e1", ReportID: report.ReportID,
			Date: time.Date(2025, time.Month(month), 3, 0, 0, 0, 0, time.UTC), Value: dec("1")}}
		require.NoError(t, store.CreateReportWithEntries(ctx, report, entries))
	}

	svc := NewReportingService(store, loadedConverter(t), stubOracle{})
	data, err := svc.ComputeYearlyReport(ctx, "u1", 2025, "EUR", "")
	require.NoError(t, err)

	assert.True(t, data.TotalDays.Equal(dec("1")))
	assert.True(t, data.TotalRevenue.Equal(dec("600")))
	assert.True(t, data.MonthlyData[3].Days.IsZero())
}
