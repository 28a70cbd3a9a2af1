package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
)

// CustomFieldsRepository handles custom field persistence.
type CustomFieldsRepository struct {
	db *sql.DB
}

// NewCustomFieldsRepository creates a new custom fields repository.
func NewCustomFieldsRepository(db *sql.DB) *CustomFieldsRepository {
	return &CustomFieldsRepository{db: db}
}

// Create creates a new custom field.
func (r *CustomFieldsRepository) Create(ctx context.Context, field *domain.CustomField) error {
	query := `
		INSERT INTO custom_fields (id, list_id, organization_id, name, field_type,
			options, formula, linked_list_id, required, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		field.ID, field.ListID, field.OrganizationID, field.Name, field.FieldType,
		field.Options, field.Formula, field.LinkedListID, field.Required,
		field.Position, field.CreatedAt, field.UpdatedAt,
	)
	return err
}

// ListByList retrieves the custom fields of a list, ordered by position.
func (r *CustomFieldsRepository) ListByList(ctx context.Context, listID uuid.UUID) ([]*domain.CustomField, error) {
	query := `
		SELECT id, list_id, organization_id, name, field_type, options, formula,
		       linked_list_id, required, position, created_at, updated_at
		FROM custom_fields
		WHERE list_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []*domain.CustomField
	for rows.Next() {
		field := &domain.CustomField{}
		if err := rows.Scan(
			&field.ID, &field.ListID, &field.OrganizationID, &field.Name,
			&field.FieldType, &field.Options, &field.Formula, &field.LinkedListID,
			&field.Required, &field.Position, &field.CreatedAt, &field.UpdatedAt,
		); err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, rows.Err()
}
