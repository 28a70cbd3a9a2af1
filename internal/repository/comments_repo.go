package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
)

// CommentsRepository handles comment persistence.
type CommentsRepository struct {
	db *sql.DB
}

// NewCommentsRepository creates a new comments repository.
func NewCommentsRepository(db *sql.DB) *CommentsRepository {
	return &CommentsRepository{db: db}
}

// CommentWithAuthor pairs a comment with its author.
type CommentWithAuthor struct {
	domain.Comment
	Author domain.User
}

// Create creates a new comment.
func (r *CommentsRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, task_id, user_id, content, content_html,
			is_edited, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.TaskID, comment.UserID, comment.Content,
		comment.ContentHTML, comment.IsEdited, comment.CreatedAt, comment.UpdatedAt,
	)
	return err
}

// ListByTask retrieves the comments on a task with their authors.
func (r *CommentsRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.task_id, c.user_id, c.content, c.content_html,
		       c.is_edited, c.edited_at, c.created_at, c.updated_at,
		       u.id, u.organization_id, u.ghl_user_id, u.email, u.full_name,
		       u.avatar_url, u.role, u.is_active, u.last_login_at, u.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.task_id = $1
		ORDER BY c.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*CommentWithAuthor
	for rows.Next() {
		item := &CommentWithAuthor{}
		if err := rows.Scan(
			&item.ID, &item.TaskID, &item.UserID, &item.Content, &item.ContentHTML,
			&item.IsEdited, &item.EditedAt, &item.CreatedAt, &item.UpdatedAt,
			&item.Author.ID, &item.Author.OrganizationID, &item.Author.GHLUserID,
			&item.Author.Email, &item.Author.FullName, &item.Author.AvatarURL,
			&item.Author.Role, &item.Author.IsActive, &item.Author.LastLoginAt,
			&item.Author.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, item)
	}
	return comments, rows.Err()
}
