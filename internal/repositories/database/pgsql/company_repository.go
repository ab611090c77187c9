package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/activity_tracker/internal/models"
	"github.com/SscSPs/activity_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const fullCompanySelectQuery = `
SELECT
	company_id, user_id, name, is_default,
	created_at, created_by, last_updated_at, last_updated_by
FROM companies
`

func (r *PgxCompanyRepository) getCompanies(ctx context.Context, filterQuery string, args ...any) ([]domain.Company, error) {
	rows, err := r.Pool.Query(ctx, fullCompanySelectQuery+filterQuery, args...)
	if err != nil {
		return nil, internalError("failed to query companies", err)
	}
	defer rows.Close()

	modelCompanies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Company])
	if err != nil {
		return nil, internalError("failed to collect company rows", err)
	}
	companies := make([]domain.Company, len(modelCompanies))
	for i, m := range modelCompanies {
		companies[i] = mapping.ToDomainCompany(m)
	}
	return companies, nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, userID, companyID string) (*domain.Company, error) {
	companies, err := r.getCompanies(ctx, `WHERE user_id = $1 AND company_id = $2`, userID, companyID)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, apperrors.NewNotFoundError("company " + companyID + " not found")
	}
	return &companies[0], nil
}

func (r *PgxCompanyRepository) ListCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	return r.getCompanies(ctx, `WHERE user_id = $1 ORDER BY is_default DESC, name, company_id`, userID)
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO companies (
			company_id, user_id, name, is_default,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.CompanyID, m.UserID, m.Name, m.IsDefault,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return apperrors.NewAppError(http.StatusConflict, "company "+m.CompanyID+" conflicts with an existing company", apperrors.ErrDuplicate)
		}
		return internalError("failed to save company "+m.CompanyID, err)
	}
	return nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE companies
		SET name = $1, last_updated_at = $2, last_updated_by = $3
		WHERE company_id = $4 AND user_id = $5;`,
		m.Name, m.LastUpdatedAt, m.LastUpdatedBy, m.CompanyID, m.UserID,
	)
	if err != nil {
		return internalError("failed to update company "+m.CompanyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("company " + m.CompanyID + " not found")
	}
	return nil
}

// SetDefaultCompany clears the previous default before setting the new one so the
// partial unique index on (user_id) WHERE is_default never sees two defaults.
func (r *PgxCompanyRepository) SetDefaultCompany(ctx context.Context, userID, companyID string) error {
	return inTx(ctx, r, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT TRUE FROM companies WHERE company_id = $1 AND user_id = $2 FOR UPDATE;`,
			companyID, userID,
		).Scan(&exists)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("company " + companyID + " not found")
			}
			return internalError("failed to lock company "+companyID, err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE companies SET is_default = FALSE WHERE user_id = $1 AND is_default AND company_id <> $2;`,
			userID, companyID,
		); err != nil {
			return internalError("failed to clear default company", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE companies SET is_default = TRUE, last_updated_at = NOW(), last_updated_by = $1 WHERE company_id = $2;`,
			userID, companyID,
		); err != nil {
			return internalError("failed to set default company "+companyID, err)
		}
		return nil
	})
}

func (r *PgxCompanyRepository) DeleteCompany(ctx context.Context, userID, companyID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM companies WHERE company_id = $1 AND user_id = $2;`, companyID, userID)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return apperrors.NewValidationError("company " + companyID + " still has missions")
		}
		return internalError("failed to delete company "+companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("company " + companyID + " not found")
	}
	return nil
}
