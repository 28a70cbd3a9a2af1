package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
)

// ListsRepository handles list persistence.
type ListsRepository struct {
	db *sql.DB
}

// NewListsRepository creates a new lists repository.
func NewListsRepository(db *sql.DB) *ListsRepository {
	return &ListsRepository{db: db}
}

const listColumns = `
	id, folder_id, space_id, organization_id, name, description, status,
	view_type, color, position, created_by, created_at, updated_at
`

// Create creates a new list.
func (r *ListsRepository) Create(ctx context.Context, list *domain.List) error {
	query := `
		INSERT INTO lists (id, folder_id, space_id, organization_id, name, description,
			status, view_type, color, position, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		list.ID, list.FolderID, list.SpaceID, list.OrganizationID, list.Name,
		list.Description, list.Status, list.ViewType, list.Color, list.Position,
		list.CreatedBy, list.CreatedAt, list.UpdatedAt,
	)
	return err
}

// GetByID retrieves a list by ID.
func (r *ListsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE id = $1`
	list := &domain.List{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&list.ID, &list.FolderID, &list.SpaceID, &list.OrganizationID, &list.Name,
		&list.Description, &list.Status, &list.ViewType, &list.Color, &list.Position,
		&list.CreatedBy, &list.CreatedAt, &list.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrListNotFound
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListBySpace retrieves lists attached directly to a space, ordered by position.
func (r *ListsRepository) ListBySpace(ctx context.Context, spaceID uuid.UUID) ([]*domain.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE space_id = $1 ORDER BY position`
	return r.list(ctx, query, spaceID)
}

// ListByFolder retrieves lists in a folder, ordered by position.
func (r *ListsRepository) ListByFolder(ctx context.Context, folderID uuid.UUID) ([]*domain.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE folder_id = $1 ORDER BY position`
	return r.list(ctx, query, folderID)
}

func (r *ListsRepository) list(ctx context.Context, query string, args ...any) ([]*domain.List, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*domain.List
	for rows.Next() {
		list := &domain.List{}
		if err := rows.Scan(
			&list.ID, &list.FolderID, &list.SpaceID, &list.OrganizationID, &list.Name,
			&list.Description, &list.Status, &list.ViewType, &list.Color, &list.Position,
			&list.CreatedBy, &list.CreatedAt, &list.UpdatedAt,
		); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}
