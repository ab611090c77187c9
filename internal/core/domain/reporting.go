package domain

import (
	"github.com/shopspring/decimal"
)

// ReportingRow is one completed report joined to its mission, client and company.
type ReportingRow struct {
	ReportID         string
	Month            int
	Year             int
	TotalDays        decimal.Decimal
	ReportDailyRate  *decimal.Decimal
	MissionDailyRate *decimal.Decimal
	MissionID        string
	ClientID         string
	ClientName       string
	ClientCurrency   string
	CompanyID        string
	CompanyName      string
}

// EffectiveDailyRate prefers the report snapshot over the mission's current rate.
func (r *ReportingRow) EffectiveDailyRate() *decimal.Decimal {
	if r.ReportDailyRate != nil {
		return r.ReportDailyRate
	}
	return r.MissionDailyRate
}

// MonthlyData aggregates activity for one calendar month. Revenue is in the base currency.
type MonthlyData struct {
	Month   int             `json:"month"`
	Days    decimal.Decimal `json:"days"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ClientMonthRevenue is one client's base-currency revenue within a month.
type ClientMonthRevenue struct {
	ClientID   string          `json:"clientID"`
	ClientName string          `json:"clientName"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// MonthlyClientRevenue lists the clients with revenue in a month.
type MonthlyClientRevenue struct {
	Month   int                  `json:"month"`
	Clients []ClientMonthRevenue `json:"clients"`
}

// ClientData aggregates a client's year. Revenue is in the client's currency,
// ConvertedRevenue in the base currency.
type ClientData struct {
	ClientID         string          `json:"clientID"`
	Name             string          `json:"name"`
	Currency         string          `json:"currency"`
	Days             decimal.Decimal `json:"days"`
	Revenue          decimal.Decimal `json:"revenue"`
	ConvertedRevenue decimal.Decimal `json:"convertedRevenue"`
}

// CompanyData aggregates a company's year in the base currency.
type CompanyData struct {
	CompanyID        string          `json:"companyID"`
	Name             string          `json:"name"`
	Days             decimal.Decimal `json:"days"`
	ConvertedRevenue decimal.Decimal `json:"convertedRevenue"`
}

// YearSummary is the baseline computed for the previous year.
type YearSummary struct {
	TotalDays        decimal.Decimal `json:"totalDays"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	AverageDailyRate decimal.Decimal `json:"averageDailyRate"`
	ClientCount      int             `json:"clientCount"`
}

// ReportingData is the yearly analytics aggregate. All revenue totals are in BaseCurrency.
type ReportingData struct {
	Year                 int                    `json:"year"`
	BaseCurrency         string                 `json:"baseCurrency"`
	TotalDays            decimal.Decimal        `json:"totalDays"`
	TotalRevenue         decimal.Decimal        `json:"totalRevenue"`
	AverageDailyRate     decimal.Decimal        `json:"averageDailyRate"`
	MonthlyData          []MonthlyData          `json:"monthlyData"`
	MonthlyClientRevenue []MonthlyClientRevenue `json:"monthlyClientRevenue"`
	ClientData           []ClientData           `json:"clientData"`
	CompanyData          []CompanyData          `json:"companyData"`
	WorkingDaysInYear    int                    `json:"workingDaysInYear"`
	PreviousYear         *YearSummary           `json:"previousYear"`
}
