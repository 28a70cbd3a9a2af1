package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
)

// SpacesRepository handles space persistence.
type SpacesRepository struct {
	db *sql.DB
}

// NewSpacesRepository creates a new spaces repository.
func NewSpacesRepository(db *sql.DB) *SpacesRepository {
	return &SpacesRepository{db: db}
}

const spaceColumns = `
	id, organization_id, name, description, color, created_by, created_at, updated_at
`

// Create creates a new space.
func (r *SpacesRepository) Create(ctx context.Context, space *domain.Space) error {
	return r.CreateTx(ctx, r.db, space)
}

// CreateTx creates a new space within a transaction.
func (r *SpacesRepository) CreateTx(ctx context.Context, q Querier, space *domain.Space) error {
	query := `
		INSERT INTO spaces (id, organization_id, name, description, color, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.ExecContext(ctx, query,
		space.ID, space.OrganizationID, space.Name, space.Description,
		space.Color, space.CreatedBy, space.CreatedAt, space.UpdatedAt,
	)
	return err
}

// GetByID retrieves a space by ID, scoped to an organization.
func (r *SpacesRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*domain.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE organization_id = $1 AND id = $2`
	space := &domain.Space{}
	err := r.db.QueryRowContext(ctx, query, orgID, id).Scan(
		&space.ID, &space.OrganizationID, &space.Name, &space.Description,
		&space.Color, &space.CreatedBy, &space.CreatedAt, &space.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSpaceNotFound
	}
	if err != nil {
		return nil, err
	}
	return space, nil
}

// ListByOrganization retrieves all spaces in an organization.
func (r *SpacesRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE organization_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spaces []*domain.Space
	for rows.Next() {
		space := &domain.Space{}
		if err := rows.Scan(
			&space.ID, &space.OrganizationID, &space.Name, &space.Description,
			&space.Color, &space.CreatedBy, &space.CreatedAt, &space.UpdatedAt,
		); err != nil {
			return nil, err
		}
		spaces = append(spaces, space)
	}
	return spaces, rows.Err()
}
