package services

import (
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/platform/config"
)

// Infrastructure groups the non-repository collaborators services are built on.
type Infrastructure struct {
	Converter *CurrencyConverter
	Oracle    portssvc.HolidayOracle
	Renderer  portssvc.ReportRenderer
	Publisher portssvc.EventPublisher
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, infra Infrastructure) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{
		Converter: infra.Converter,
		Holidays:  infra.Oracle,
	}

	container.Client = NewClientService(repos.ClientRepo, repos.MissionRepo)
	container.Company = NewCompanyService(repos.CompanyRepo, repos.MissionRepo)
	container.Mission = NewMissionService(repos.MissionRepo, repos.ClientRepo, repos.CompanyRepo, repos.ReportRepo)

	opts := []ReportServiceOption{WithReportRenderer(infra.Renderer)}
	if infra.Publisher != nil {
		opts = append(opts, WithEventPublisher(infra.Publisher))
	}
	container.Report = NewReportService(
		repos.ReportRepo,
		repos.MissionRepo,
		repos.ClientRepo,
		repos.CompanyRepo,
		NewReconciler(infra.Oracle),
		opts...,
	)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		infra.Converter,
		infra.Oracle,
		WithDefaultHolidayCountry(cfg.ReportingHolidayCountry),
		WithDefaultBaseCurrency(cfg.DefaultBaseCurrency),
	)

	var rateOpts []ExchangeRateServiceOption
	if cfg.FXSource == config.FXSourceDB && infra.Converter != nil {
		rateOpts = append(rateOpts, WithRateRefresher(infra.Converter))
	}
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, rateOpts...)

	return container
}
