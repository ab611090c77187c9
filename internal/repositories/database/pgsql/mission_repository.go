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

type PgxMissionRepository struct {
	BaseRepository
}

func newPgxMissionRepository(pool *pgxpool.Pool) portsrepo.MissionRepositoryFacade {
	return &PgxMissionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MissionRepositoryFacade = (*PgxMissionRepository)(nil)

const fullMissionSelectQuery = `
SELECT
	mission_id, user_id, name, client_id, company_id, daily_rate, is_active, start_date, end_date,
	created_at, created_by, last_updated_at, last_updated_by
FROM missions
`

func (r *PgxMissionRepository) getMissions(ctx context.Context, filterQuery string, args ...any) ([]domain.Mission, error) {
	rows, err := r.Pool.Query(ctx, fullMissionSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, internalError("failed to query missions", err)
	}
	defer rows.Close()

	modelMissions, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Mission])
	if err != nil {
		return nil, internalError("failed to collect mission rows", err)
	}
	missions := make([]domain.Mission, len(modelMissions))
	for i, m := range modelMissions {
		missions[i] = mapping.ToDomainMission(m)
	}
	return missions, nil
}

func (r *PgxMissionRepository) FindMissionByID(ctx context.Context, userID, missionID string) (*domain.Mission, error) {
	missions, err := r.getMissions(ctx, `WHERE user_id = $1 AND mission_id = $2`, userID, missionID)
	if err != nil {
		return nil, err
	}
	if len(missions) == 0 {
		return nil, apperrors.NewNotFoundError("mission " + missionID + " not found")
	}
	return &missions[0], nil
}

func (r *PgxMissionRepository) ListMissions(ctx context.Context, userID string, filter portsrepo.MissionFilter) ([]domain.Mission, error) {
	query := `WHERE user_id = $1`
	args := []any{userID}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		query += fmt.Sprintf(" AND company_id = $%d", len(args))
	}
	if filter.ActiveOnly {
		query += " AND is_active"
	}
	query += " ORDER BY start_date DESC, name"
	return r.getMissions(ctx, query, args...)
}

func (r *PgxMissionRepository) SaveMission(ctx context.Context, mission domain.Mission) error {
	m := mapping.ToModelMission(mission)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO missions (
			mission_id, user_id, name, client_id, company_id, daily_rate, is_active, start_date, end_date,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.MissionID, m.UserID, m.Name, m.ClientID, m.CompanyID, m.DailyRate, m.IsActive, m.StartDate, m.EndDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return apperrors.NewAppError(http.StatusConflict, "mission "+m.MissionID+" already exists", apperrors.ErrDuplicate)
		case pgForeignKeyViolation:
			return apperrors.NewValidationError("mission references an unknown client or company")
		}
		return internalError("failed to save mission "+m.MissionID, err)
	}
	return nil
}

func (r *PgxMissionRepository) UpdateMission(ctx context.Context, mission domain.Mission) error {
	m := mapping.ToModelMission(mission)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE missions
		SET name = $1, daily_rate = $2, is_active = $3, start_date = $4, end_date = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE mission_id = $8 AND user_id = $9;`,
		m.Name, m.DailyRate, m.IsActive, m.StartDate, m.EndDate,
		m.LastUpdatedAt, m.LastUpdatedBy, m.MissionID, m.UserID,
	)
	if err != nil {
		return internalError("failed to update mission "+m.MissionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("mission " + m.MissionID + " not found")
	}
	return nil
}

func (r *PgxMissionRepository) DeleteMission(ctx context.Context, userID, missionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM missions WHERE mission_id = $1 AND user_id = $2;`, missionID, userID)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return apperrors.NewValidationError("mission " + missionID + " still has activity reports")
		}
		return internalError("failed to delete mission "+missionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("mission " + missionID + " not found")
	}
	return nil
}
