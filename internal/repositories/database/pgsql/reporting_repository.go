package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindCompletedReportRows retrieves the user's completed reports of a year with their
// mission, client and company. Draft reports never reach the aggregator.
func (r *reportingRepository) FindCompletedReportRows(ctx context.Context, userID string, year int) ([]domain.ReportingRow, error) {
	query := `
		SELECT
			ar.report_id,
			ar.month,
			ar.year,
			ar.total_days,
			ar.daily_rate,
			m.daily_rate,
			m.mission_id,
			c.client_id,
			c.name,
			c.currency,
			co.company_id,
			co.name
		FROM activity_reports ar
		JOIN missions m ON ar.mission_id = m.mission_id
		JOIN clients c ON m.client_id = c.client_id
		JOIN companies co ON m.company_id = co.company_id
		WHERE ar.user_id = $1
			AND ar.year = $2
			AND ar.status = 'COMPLETED'
		ORDER BY ar.month, c.name, ar.report_id
	`

	rows, err := r.Pool.Query(ctx, query, userID, year)
	if err != nil {
		return nil, fmt.Errorf("error querying completed report rows: %w", err)
	}
	defer rows.Close()

	var result []domain.ReportingRow
	for rows.Next() {
		var row domain.ReportingRow
		var reportRate, missionRate decimal.NullDecimal

		if err := rows.Scan(
			&row.ReportID,
			&row.Month,
			&row.Year,
			&row.TotalDays,
			&reportRate,
			&missionRate,
			&row.MissionID,
			&row.ClientID,
			&row.ClientName,
			&row.ClientCurrency,
			&row.CompanyID,
			&row.CompanyName,
		); err != nil {
			return nil, fmt.Errorf("error scanning completed report row: %w", err)
		}

		if reportRate.Valid {
			row.ReportDailyRate = &reportRate.Decimal
		}
		if missionRate.Valid {
			row.MissionDailyRate = &missionRate.Decimal
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completed report rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.ReportingRow{}, nil
	}

	return result, nil
}
