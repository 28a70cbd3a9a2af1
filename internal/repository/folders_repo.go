package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
)

// FoldersRepository handles folder persistence.
type FoldersRepository struct {
	db *sql.DB
}

// NewFoldersRepository creates a new folders repository.
func NewFoldersRepository(db *sql.DB) *FoldersRepository {
	return &FoldersRepository{db: db}
}

// Create creates a new folder.
func (r *FoldersRepository) Create(ctx context.Context, folder *domain.Folder) error {
	query := `
		INSERT INTO folders (id, space_id, organization_id, name, description, color,
			position, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		folder.ID, folder.SpaceID, folder.OrganizationID, folder.Name,
		folder.Description, folder.Color, folder.Position, folder.CreatedBy,
		folder.CreatedAt, folder.UpdatedAt,
	)
	return err
}

// GetByID retrieves a folder by ID, scoped to an organization.
func (r *FoldersRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*domain.Folder, error) {
	query := `
		SELECT id, space_id, organization_id, name, description, color,
		       position, created_by, created_at, updated_at
		FROM folders
		WHERE organization_id = $1 AND id = $2
	`
	folder := &domain.Folder{}
	err := r.db.QueryRowContext(ctx, query, orgID, id).Scan(
		&folder.ID, &folder.SpaceID, &folder.OrganizationID, &folder.Name,
		&folder.Description, &folder.Color, &folder.Position, &folder.CreatedBy,
		&folder.CreatedAt, &folder.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrFolderNotFound
	}
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// ListBySpace retrieves all folders in a space.
func (r *FoldersRepository) ListBySpace(ctx context.Context, spaceID uuid.UUID) ([]*domain.Folder, error) {
	query := `
		SELECT id, space_id, organization_id, name, description, color,
		       position, created_by, created_at, updated_at
		FROM folders
		WHERE space_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []*domain.Folder
	for rows.Next() {
		folder := &domain.Folder{}
		if err := rows.Scan(
			&folder.ID, &folder.SpaceID, &folder.OrganizationID, &folder.Name,
			&folder.Description, &folder.Color, &folder.Position, &folder.CreatedBy,
			&folder.CreatedAt, &folder.UpdatedAt,
		); err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}
	return folders, rows.Err()
}
