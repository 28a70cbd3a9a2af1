package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
)

// OrganizationsRepository handles organization persistence.
type OrganizationsRepository struct {
	db *sql.DB
}

// NewOrganizationsRepository creates a new organizations repository.
func NewOrganizationsRepository(db *sql.DB) *OrganizationsRepository {
	return &OrganizationsRepository{db: db}
}

const organizationColumns = `
	id, ghl_account_id, name, plan_type, status,
	ghl_access_token, ghl_refresh_token, ghl_token_expires,
	created_at, updated_at
`

func scanOrganization(row *sql.Row) (*domain.Organization, error) {
	org := &domain.Organization{}
	err := row.Scan(
		&org.ID, &org.GHLAccountID, &org.Name, &org.PlanType, &org.Status,
		&org.GHLAccessToken, &org.GHLRefreshToken, &org.GHLTokenExpires,
		&org.CreatedAt, &org.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return org, nil
}

// CreateTx creates a new organization within a transaction.
func (r *OrganizationsRepository) CreateTx(ctx context.Context, q Querier, org *domain.Organization) error {
	query := `
		INSERT INTO organizations (id, ghl_account_id, name, plan_type, status,
			ghl_access_token, ghl_refresh_token, ghl_token_expires, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := q.ExecContext(ctx, query,
		org.ID, org.GHLAccountID, org.Name, org.PlanType, org.Status,
		org.GHLAccessToken, org.GHLRefreshToken, org.GHLTokenExpires,
		org.CreatedAt, org.UpdatedAt,
	)
	return err
}

// GetByID retrieves an organization by ID.
func (r *OrganizationsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	return scanOrganization(r.db.QueryRowContext(ctx, query, id))
}

// GetByGHLAccountID retrieves an organization by its GHL account identifier.
func (r *OrganizationsRepository) GetByGHLAccountID(ctx context.Context, accountID string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE ghl_account_id = $1`
	return scanOrganization(r.db.QueryRowContext(ctx, query, accountID))
}

// UpdateTokens updates only the stored GHL token fields. Name, plan and
// status are never touched here.
func (r *OrganizationsRepository) UpdateTokens(ctx context.Context, id uuid.UUID, accessToken, refreshToken string, expires time.Time) error {
	query := `
		UPDATE organizations
		SET ghl_access_token = $2, ghl_refresh_token = $3, ghl_token_expires = $4, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, accessToken, refreshToken, expires)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}
