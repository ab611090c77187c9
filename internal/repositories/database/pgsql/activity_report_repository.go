package pgsql

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/activity_tracker/internal/models"
	"github.com/SscSPs/activity_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxActivityReportRepository struct {
	BaseRepository
}

func newPgxActivityReportRepository(pool *pgxpool.Pool) portsrepo.ActivityReportRepositoryFacade {
	return &PgxActivityReportRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ActivityReportRepositoryFacade = (*PgxActivityReportRepository)(nil)

const fullReportSelectQuery = `
SELECT
	report_id, user_id, mission_id, month, year, status, total_days, note, daily_rate, holiday_country,
	created_at, created_by, last_updated_at, last_updated_by
FROM activity_reports
`

const reportEntriesQuery = `
SELECT entry_id, report_id, entry_date, value, note, is_weekend, is_holiday, holiday_name
FROM report_entries
WHERE report_id = $1
ORDER BY entry_date;
`

// queryer is satisfied by both the pool and a transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func collectReports(ctx context.Context, q queryer, query string, args ...any) ([]domain.ActivityReport, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, internalError("failed to query activity reports", err)
	}
	defer rows.Close()

	modelReports, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ActivityReport])
	if err != nil {
		return nil, internalError("failed to collect activity report rows", err)
	}
	reports := make([]domain.ActivityReport, len(modelReports))
	for i, m := range modelReports {
		reports[i] = mapping.ToDomainActivityReport(m)
	}
	return reports, nil
}

func collectEntries(ctx context.Context, q queryer, reportID string) ([]domain.ReportEntry, error) {
	rows, err := q.Query(ctx, reportEntriesQuery, reportID)
	if err != nil {
		return nil, internalError("failed to query entries of report "+reportID, err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ReportEntry])
	if err != nil {
		return nil, internalError("failed to collect entries of report "+reportID, err)
	}
	return mapping.ToDomainReportEntries(modelEntries), nil
}

// loadReport reads one report with its entries through q. lock adds FOR UPDATE.
func loadReport(ctx context.Context, q queryer, userID, reportID string, lock bool) (*domain.ActivityReport, error) {
	query := fullReportSelectQuery + `WHERE user_id = $1 AND report_id = $2`
	if lock {
		query += ` FOR UPDATE`
	}
	reports, err := collectReports(ctx, q, query, userID, reportID)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, apperrors.NewNotFoundError("activity report " + reportID + " not found")
	}
	report := &reports[0]
	report.Entries, err = collectEntries(ctx, q, reportID)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// FindReportByID reads the report and its entries in one repeatable-read snapshot
// so totalDays always matches the entries returned.
func (r *PgxActivityReportRepository) FindReportByID(ctx context.Context, userID, reportID string) (*domain.ActivityReport, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, internalError("failed to begin read transaction", err)
	}
	defer r.Rollback(ctx, tx)

	report, err := loadReport(ctx, tx, userID, reportID, false)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *PgxActivityReportRepository) FindReportsByUser(ctx context.Context, userID string, filter domain.ReportFilter) ([]domain.ActivityReport, error) {
	query := fullReportSelectQuery + `WHERE user_id = $1`
	args := []any{userID}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		query += fmt.Sprintf(" AND year = $%d", len(args))
	}
	if filter.Month != 0 {
		args = append(args, filter.Month)
		query += fmt.Sprintf(" AND month = $%d", len(args))
	}
	if filter.MissionID != "" {
		args = append(args, filter.MissionID)
		query += fmt.Sprintf(" AND mission_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY year DESC, month DESC, mission_id"
	return collectReports(ctx, r.Pool, query, args...)
}

func (r *PgxActivityReportRepository) FindEntriesByReport(ctx context.Context, userID, reportID string) ([]domain.ReportEntry, error) {
	report, err := r.FindReportByID(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	return report.Entries, nil
}

func (r *PgxActivityReportRepository) CountReportsByMission(ctx context.Context, userID, missionID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM activity_reports WHERE user_id = $1 AND mission_id = $2;`,
		userID, missionID,
	).Scan(&count)
	if err != nil {
		return 0, internalError("failed to count reports of mission "+missionID, err)
	}
	return count, nil
}

const insertEntryQuery = `
	INSERT INTO report_entries (entry_id, report_id, entry_date, value, note, is_weekend, is_holiday, holiday_name)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

// CreateReportWithEntries inserts the report row and queues every entry insert in one batch.
func (r *PgxActivityReportRepository) CreateReportWithEntries(ctx context.Context, report domain.ActivityReport, entries []domain.ReportEntry) error {
	m := mapping.ToModelActivityReport(report)
	return inTx(ctx, r, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO activity_reports (
				report_id, user_id, mission_id, month, year, status, total_days, note, daily_rate, holiday_country,
				created_at, created_by, last_updated_at, last_updated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
			m.ReportID, m.UserID, m.MissionID, m.Month, m.Year, m.Status, m.TotalDays, m.Note, m.DailyRate, m.HolidayCountry,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			switch pgErrorCode(err) {
			case pgUniqueViolation:
				return apperrors.NewAppError(http.StatusConflict,
					fmt.Sprintf("a report already exists for mission %s in %04d-%02d", m.MissionID, m.Year, m.Month),
					apperrors.ErrDuplicate)
			case pgForeignKeyViolation:
				return apperrors.NewValidationError("mission " + m.MissionID + " does not exist")
			}
			return internalError("failed to insert activity report "+m.ReportID, err)
		}

		batch := &pgx.Batch{}
		for _, e := range entries {
			me := mapping.ToModelReportEntry(e)
			batch.Queue(insertEntryQuery,
				me.EntryID, me.ReportID, me.EntryDate, me.Value, me.Note, me.IsWeekend, me.IsHoliday, me.HolidayName)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return internalError("failed to insert entries of report "+m.ReportID, err)
		}
		return nil
	})
}

// MutateReport locks the report row, so two mutations of one report run one after the other.
// Only entries whose value or note changed are written back.
func (r *PgxActivityReportRepository) MutateReport(ctx context.Context, userID, reportID string, fn portsrepo.ReportMutation) (*domain.ActivityReport, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	report, err := loadReport(ctx, tx, userID, reportID, true)
	if err != nil {
		return nil, err
	}
	before := make(map[string]domain.ReportEntry, len(report.Entries))
	for _, e := range report.Entries {
		before[e.EntryID] = e
	}

	if err := fn(report); err != nil {
		return nil, err
	}

	m := mapping.ToModelActivityReport(*report)
	_, err = tx.Exec(ctx, `
		UPDATE activity_reports
		SET status = $1, total_days = $2, note = $3, last_updated_at = $4, last_updated_by = $5
		WHERE report_id = $6;`,
		m.Status, m.TotalDays, m.Note, m.LastUpdatedAt, m.LastUpdatedBy, m.ReportID,
	)
	if err != nil {
		return nil, internalError("failed to update activity report "+reportID, err)
	}

	batch := &pgx.Batch{}
	for _, e := range report.Entries {
		old, ok := before[e.EntryID]
		if ok && old.Value.Equal(e.Value) && equalNote(old.Note, e.Note) {
			continue
		}
		me := mapping.ToModelReportEntry(e)
		batch.Queue(`UPDATE report_entries SET value = $1, note = $2 WHERE entry_id = $3 AND report_id = $4;`,
			me.Value, me.Note, me.EntryID, me.ReportID)
	}
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return nil, internalError("failed to update entries of report "+reportID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *PgxActivityReportRepository) DeleteReport(ctx context.Context, userID, reportID string, guard portsrepo.ReportMutation) (*domain.ActivityReport, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	report, err := loadReport(ctx, tx, userID, reportID, true)
	if err != nil {
		return nil, err
	}
	if guard != nil {
		if err := guard(report); err != nil {
			return nil, err
		}
	}

	// entries go with the report through ON DELETE CASCADE
	if _, err := tx.Exec(ctx, `DELETE FROM activity_reports WHERE report_id = $1;`, reportID); err != nil {
		return nil, internalError("failed to delete activity report "+reportID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return report, nil
}

func equalNote(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
