package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusInReview   TaskStatus = "in_review"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusArchived   TaskStatus = "archived"
)

// TaskPriority represents the urgency of a task.
type TaskPriority string

const (
	PriorityUrgent TaskPriority = "urgent"
	PriorityHigh   TaskPriority = "high"
	PriorityNormal TaskPriority = "normal"
	PriorityLow    TaskPriority = "low"
)

// Task is a unit of work inside a list.
type Task struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ListID         uuid.UUID
	ParentTaskID   *uuid.UUID
	Title          string
	Description    *string
	Status         TaskStatus
	Priority       TaskPriority
	AssignedTo     *uuid.UUID
	AssignedAt     *time.Time
	StartDate      *time.Time
	DueDate        *time.Time
	CompletedAt    *time.Time
	EstimatedHours *float64
	TimeSpent      float64
	CustomFields   json.RawMessage
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Subtask is a checklist item belonging to a task.
type Subtask struct {
	ID          uuid.UUID
	TaskID      uuid.UUID
	Title       string
	IsCompleted bool
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment is a message on a task.
type Comment struct {
	ID          uuid.UUID
	TaskID      uuid.UUID
	UserID      uuid.UUID
	Content     string
	ContentHTML *string
	IsEdited    bool
	EditedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Attachment is a file linked to a task.
type Attachment struct {
	ID         uuid.UUID
	TaskID     uuid.UUID
	CommentID  *uuid.UUID
	FileName   string
	FileSize   int64
	FileType   string
	FileURL    string
	UploadedBy uuid.UUID
	UploadedAt time.Time
}
