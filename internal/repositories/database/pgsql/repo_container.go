package pgsql

import (
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:       newPgxClientRepository(dbPool),
		CompanyRepo:      newPgxCompanyRepository(dbPool),
		MissionRepo:      newPgxMissionRepository(dbPool),
		ReportRepo:       newPgxActivityReportRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		ReportingRepo:    newReportingRepository(dbPool),
	}
}
