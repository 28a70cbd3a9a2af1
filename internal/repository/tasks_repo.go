package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
)

// TasksRepository handles task and subtask persistence.
type TasksRepository struct {
	db *sql.DB
}

// NewTasksRepository creates a new tasks repository.
func NewTasksRepository(db *sql.DB) *TasksRepository {
	return &TasksRepository{db: db}
}

// TaskWithAssignee pairs a task with its resolved assignee, if any.
type TaskWithAssignee struct {
	domain.Task
	Assignee *domain.User
}

const taskColumns = `
	t.id, t.organization_id, t.list_id, t.parent_task_id, t.title, t.description,
	t.status, t.priority, t.assigned_to, t.assigned_at, t.start_date, t.due_date,
	t.completed_at, t.estimated_hours, t.time_spent, t.custom_fields,
	t.created_by, t.created_at, t.updated_at
`

func scanTask(row *sql.Row) (*domain.Task, error) {
	task := &domain.Task{}
	err := row.Scan(
		&task.ID, &task.OrganizationID, &task.ListID, &task.ParentTaskID,
		&task.Title, &task.Description, &task.Status, &task.Priority,
		&task.AssignedTo, &task.AssignedAt, &task.StartDate, &task.DueDate,
		&task.CompletedAt, &task.EstimatedHours, &task.TimeSpent, &task.CustomFields,
		&task.CreatedBy, &task.CreatedAt, &task.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Create creates a new task.
func (r *TasksRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, organization_id, list_id, parent_task_id, title, description,
			status, priority, assigned_to, assigned_at, start_date, due_date, completed_at,
			estimated_hours, time_spent, custom_fields, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.OrganizationID, task.ListID, task.ParentTaskID, task.Title,
		task.Description, task.Status, task.Priority, task.AssignedTo, task.AssignedAt,
		task.StartDate, task.DueDate, task.CompletedAt, task.EstimatedHours,
		task.TimeSpent, task.CustomFields, task.CreatedBy, task.CreatedAt, task.UpdatedAt,
	)
	return err
}

// GetByID retrieves a task by ID.
func (r *TasksRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = $1`
	return scanTask(r.db.QueryRowContext(ctx, query, id))
}

// ListByList retrieves the tasks in a list with their assignees.
func (r *TasksRepository) ListByList(ctx context.Context, listID uuid.UUID) ([]*TaskWithAssignee, error) {
	query := `
		SELECT ` + taskColumns + `,
		       u.id, u.organization_id, u.ghl_user_id, u.email, u.full_name,
		       u.avatar_url, u.role, u.is_active, u.last_login_at, u.created_at
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assigned_to
		WHERE t.list_id = $1
		ORDER BY t.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*TaskWithAssignee
	for rows.Next() {
		item := &TaskWithAssignee{}
		var (
			uID        *uuid.UUID
			uOrgID     *uuid.UUID
			uGHLUserID *string
			uEmail     *string
			uFullName  *string
			uAvatarURL *string
			uRole      *domain.UserRole
			uIsActive  *bool
			uLastLogin *time.Time
			uCreatedAt *time.Time
		)
		if err := rows.Scan(
			&item.ID, &item.OrganizationID, &item.ListID, &item.ParentTaskID,
			&item.Title, &item.Description, &item.Status, &item.Priority,
			&item.AssignedTo, &item.AssignedAt, &item.StartDate, &item.DueDate,
			&item.CompletedAt, &item.EstimatedHours, &item.TimeSpent, &item.CustomFields,
			&item.CreatedBy, &item.CreatedAt, &item.UpdatedAt,
			&uID, &uOrgID, &uGHLUserID, &uEmail, &uFullName,
			&uAvatarURL, &uRole, &uIsActive, &uLastLogin, &uCreatedAt,
		); err != nil {
			return nil, err
		}
		if uID != nil {
			item.Assignee = &domain.User{
				ID:             *uID,
				OrganizationID: *uOrgID,
				GHLUserID:      *uGHLUserID,
				Email:          *uEmail,
				FullName:       *uFullName,
				AvatarURL:      uAvatarURL,
				Role:           *uRole,
				IsActive:       *uIsActive,
				LastLoginAt:    uLastLogin,
				CreatedAt:      *uCreatedAt,
			}
		}
		tasks = append(tasks, item)
	}
	return tasks, rows.Err()
}

// ListSubtasks retrieves the subtasks of a task, ordered by position.
func (r *TasksRepository) ListSubtasks(ctx context.Context, taskID uuid.UUID) ([]*domain.Subtask, error) {
	query := `
		SELECT id, task_id, title, is_completed, position, created_at, updated_at
		FROM subtasks
		WHERE task_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subtasks []*domain.Subtask
	for rows.Next() {
		st := &domain.Subtask{}
		if err := rows.Scan(&st.ID, &st.TaskID, &st.Title, &st.IsCompleted, &st.Position, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, err
		}
		subtasks = append(subtasks, st)
	}
	return subtasks, rows.Err()
}

// Update updates the mutable fields of a task.
func (r *TasksRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5,
		    assigned_to = $6, assigned_at = $7, start_date = $8, due_date = $9,
		    completed_at = $10, estimated_hours = $11, time_spent = $12,
		    custom_fields = $13, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.AssignedTo, task.AssignedAt, task.StartDate, task.DueDate,
		task.CompletedAt, task.EstimatedHours, task.TimeSpent, task.CustomFields,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete permanently deletes a task. Comments, subtasks and attachments
// cascade via foreign keys.
func (r *TasksRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
