package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
)

// AttachmentsRepository handles attachment persistence.
type AttachmentsRepository struct {
	db *sql.DB
}

// NewAttachmentsRepository creates a new attachments repository.
func NewAttachmentsRepository(db *sql.DB) *AttachmentsRepository {
	return &AttachmentsRepository{db: db}
}

// Create creates a new attachment.
func (r *AttachmentsRepository) Create(ctx context.Context, a *domain.Attachment) error {
	query := `
		INSERT INTO attachments (id, task_id, comment_id, file_name, file_size,
			file_type, file_url, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.TaskID, a.CommentID, a.FileName, a.FileSize,
		a.FileType, a.FileURL, a.UploadedBy, a.UploadedAt,
	)
	return err
}

// ListByTask retrieves the attachments on a task.
func (r *AttachmentsRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Attachment, error) {
	query := `
		SELECT id, task_id, comment_id, file_name, file_size,
		       file_type, file_url, uploaded_by, uploaded_at
		FROM attachments
		WHERE task_id = $1
		ORDER BY uploaded_at
	`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []*domain.Attachment
	for rows.Next() {
		a := &domain.Attachment{}
		if err := rows.Scan(
			&a.ID, &a.TaskID, &a.CommentID, &a.FileName, &a.FileSize,
			&a.FileType, &a.FileURL, &a.UploadedBy, &a.UploadedAt,
		); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}
