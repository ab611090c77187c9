package pgsql

import (
	"context"
	"net/http"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/activity_tracker/internal/models"
	"github.com/SscSPs/activity_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const fullClientSelectQuery = `
SELECT
	client_id, user_id, name, currency, holiday_country,
	created_at, created_by, last_updated_at, last_updated_by
FROM clients
`

func (r *PgxClientRepository) getClients(ctx context.Context, filterQuery string, args ...any) ([]domain.Client, error) {
	rows, err := r.Pool.Query(ctx, fullClientSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, internalError("failed to query clients", err)
	}
	defer rows.Close()

	modelClients, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Client])
	if err != nil {
		return nil, internalError("failed to collect client rows", err)
	}
	clients := make([]domain.Client, len(modelClients))
	for i, m := range modelClients {
		clients[i] = mapping.ToDomainClient(m)
	}
	return clients, nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	clients, err := r.getClients(ctx, `WHERE user_id = $1 AND client_id = $2`, userID, clientID)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, apperrors.NewNotFoundError("client " + clientID + " not found")
	}
	return &clients[0], nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	return r.getClients(ctx, `WHERE user_id = $1 ORDER BY name, client_id`, userID)
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO clients (
			client_id, user_id, name, currency, holiday_country,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		m.ClientID, m.UserID, m.Name, m.Currency, m.HolidayCountry,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return apperrors.NewAppError(http.StatusConflict, "client "+m.ClientID+" already exists", apperrors.ErrDuplicate)
		}
		return internalError("failed to save client "+m.ClientID, err)
	}
	return nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE clients
		SET name = $1, currency = $2, holiday_country = $3, last_updated_at = $4, last_updated_by = $5
		WHERE client_id = $6 AND user_id = $7;`,
		m.Name, m.Currency, m.HolidayCountry, m.LastUpdatedAt, m.LastUpdatedBy, m.ClientID, m.UserID,
	)
	if err != nil {
		return internalError("failed to update client "+m.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("client " + m.ClientID + " not found")
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, userID, clientID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE client_id = $1 AND user_id = $2;`, clientID, userID)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return apperrors.NewValidationError("client " + clientID + " still has missions")
		}
		return internalError("failed to delete client "+clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("client " + clientID + " not found")
	}
	return nil
}
