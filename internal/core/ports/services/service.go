package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Client       ClientSvcFacade
	Company      CompanySvcFacade
	Mission      MissionSvcFacade
	Report       ReportSvcFacade
	Reporting    ReportingService
	ExchangeRate ExchangeRateSvcFacade
	Converter    CurrencyConverter
	Holidays     HolidayOracle
}
