package dto

import (
	"github.com/SscSPs/activity_tracker/internal/core/domain"
)

// YearlyReportParams defines query parameters for the yearly analytics endpoint.
// Currency and country codes are accepted in any case.
type YearlyReportParams struct {
	Year     int    `form:"year" binding:"required,min=2000,max=2100"`
	Currency string `form:"currency" binding:"omitempty,len=3,alpha"`
	Country  string `form:"country" binding:"omitempty,len=2,alpha"`
}

// YearlyReportResponse is the yearly analytics payload.
// All revenue totals are expressed in BaseCurrency.
type YearlyReportResponse struct {
	domain.ReportingData
}

// ToYearlyReportResponse wraps the aggregate for the API. Nil slices are
// replaced with empty ones so clients always receive arrays.
func ToYearlyReportResponse(data *domain.ReportingData) YearlyReportResponse {
	res := YearlyReportResponse{ReportingData: *data}
	if res.ClientData == nil {
		res.ClientData = []domain.ClientData{}
	}
	if res.CompanyData == nil {
		res.CompanyData = []domain.CompanyData{}
	}
	for i := range res.MonthlyClientRevenue {
		if res.MonthlyClientRevenue[i].Clients == nil {
			res.MonthlyClientRevenue[i].Clients = []domain.ClientMonthRevenue{}
		}
	}
	return res
}
