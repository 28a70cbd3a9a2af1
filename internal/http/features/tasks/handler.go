// Package tasks handles task CRUD, the core of the product.
package tasks

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
	"github.com/djmotor90/ghltask/internal/http/features/attachments"
	"github.com/djmotor90/ghltask/internal/http/features/comments"
	"github.com/djmotor90/ghltask/internal/http/features/common"
	"github.com/djmotor90/ghltask/internal/http/middleware"
	"github.com/djmotor90/ghltask/internal/httputil"
	"github.com/djmotor90/ghltask/internal/repository"
)

// Handler handles task endpoints.
type Handler struct {
	logger      *slog.Logger
	tasks       *repository.TasksRepository
	lists       *repository.ListsRepository
	users       *repository.UsersRepository
	comments    *repository.CommentsRepository
	attachments *repository.AttachmentsRepository
}

// NewHandler creates a new tasks handler.
func NewHandler(
	logger *slog.Logger,
	tasks *repository.TasksRepository,
	lists *repository.ListsRepository,
	users *repository.UsersRepository,
	comments *repository.CommentsRepository,
	attachments *repository.AttachmentsRepository,
) *Handler {
	return &Handler{
		logger:      logger,
		tasks:       tasks,
		lists:       lists,
		users:       users,
		comments:    comments,
		attachments: attachments,
	}
}

// CreateRequest represents a task creation request.
type CreateRequest struct {
	ListID         string              `json:"listId"`
	ParentTaskID   *string             `json:"parentTaskId,omitempty"`
	Title          string              `json:"title"`
	Description    *string             `json:"description,omitempty"`
	Status         domain.TaskStatus   `json:"status,omitempty"`
	Priority       domain.TaskPriority `json:"priority,omitempty"`
	AssignedTo     *string             `json:"assignedTo,omitempty"`
	StartDate      *time.Time          `json:"startDate,omitempty"`
	DueDate        *time.Time          `json:"dueDate,omitempty"`
	EstimatedHours *float64            `json:"estimatedHours,omitempty"`
	CustomFields   json.RawMessage     `json:"customFields,omitempty"`
}

// UpdateRequest represents a task update request. Absent fields are left
// unchanged.
type UpdateRequest struct {
	Title          *string              `json:"title,omitempty"`
	Description    *string              `json:"description,omitempty"`
	Status         *domain.TaskStatus   `json:"status,omitempty"`
	Priority       *domain.TaskPriority `json:"priority,omitempty"`
	AssignedTo     *string              `json:"assignedTo,omitempty"`
	StartDate      *time.Time           `json:"startDate,omitempty"`
	DueDate        *time.Time           `json:"dueDate,omitempty"`
	EstimatedHours *float64             `json:"estimatedHours,omitempty"`
	TimeSpent      *float64             `json:"timeSpent,omitempty"`
	CustomFields   json.RawMessage      `json:"customFields,omitempty"`
}

// TaskResponse represents a task.
type TaskResponse struct {
	ID             string              `json:"id"`
	ListID         string              `json:"listId"`
	ParentTaskID   *string             `json:"parentTaskId,omitempty"`
	Title          string              `json:"title"`
	Description    *string             `json:"description,omitempty"`
	Status         domain.TaskStatus   `json:"status"`
	Priority       domain.TaskPriority `json:"priority"`
	AssignedTo     *string             `json:"assignedTo,omitempty"`
	Assignee       *common.UserSummary `json:"assignee,omitempty"`
	AssignedAt     *time.Time          `json:"assignedAt,omitempty"`
	StartDate      *time.Time          `json:"startDate,omitempty"`
	DueDate        *time.Time          `json:"dueDate,omitempty"`
	CompletedAt    *time.Time          `json:"completedAt,omitempty"`
	EstimatedHours *float64            `json:"estimatedHours,omitempty"`
	TimeSpent      float64             `json:"timeSpent"`
	CustomFields   json.RawMessage     `json:"customFields,omitempty"`
	CreatedBy      string              `json:"createdBy"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// SubtaskResponse represents a subtask.
type SubtaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"isCompleted"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DetailResponse is a task with its related records resolved.
type DetailResponse struct {
	TaskResponse
	Subtasks    []SubtaskResponse                `json:"subtasks"`
	Comments    []comments.CommentResponse       `json:"comments"`
	Attachments []attachments.AttachmentResponse `json:"attachments"`
}

func newTaskResponse(t *domain.Task, assignee *domain.User) TaskResponse {
	resp := TaskResponse{
		ID:             t.ID.String(),
		ListID:         t.ListID.String(),
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		AssignedAt:     t.AssignedAt,
		StartDate:      t.StartDate,
		DueDate:        t.DueDate,
		CompletedAt:    t.CompletedAt,
		EstimatedHours: t.EstimatedHours,
		TimeSpent:      t.TimeSpent,
		CustomFields:   t.CustomFields,
		CreatedBy:      t.CreatedBy.String(),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.ParentTaskID != nil {
		s := t.ParentTaskID.String()
		resp.ParentTaskID = &s
	}
	if t.AssignedTo != nil {
		s := t.AssignedTo.String()
		resp.AssignedTo = &s
	}
	if assignee != nil {
		summary := common.NewUserSummary(assignee)
		resp.Assignee = &summary
	}
	return resp
}

// ListByList returns the tasks in a list with their assignees.
// GET /tasks/list/{listID}
func (h *Handler) ListByList(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	listID, err := uuid.Parse(chi.URLParam(r, "listID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid list id")
		return
	}

	list, err := h.lists.GetByID(r.Context(), listID)
	if err != nil || list.OrganizationID != orgID {
		httputil.Error(w, http.StatusNotFound, "list not found")
		return
	}

	tasks, err := h.tasks.ListByList(r.Context(), listID)
	if err != nil {
		h.logger.Error("failed to list tasks", "error", err, "list_id", listID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskResponse(&t.Task, t.Assignee))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Get returns a task with its assignee, subtasks, comments and attachments.
// GET /tasks/{taskID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	task, ok := h.resolveTask(w, r)
	if !ok {
		return
	}

	var assignee *domain.User
	if task.AssignedTo != nil {
		if u, err := h.users.GetByID(r.Context(), *task.AssignedTo); err == nil {
			assignee = u
		}
	}

	subtasks, err := h.tasks.ListSubtasks(r.Context(), task.ID)
	if err != nil {
		h.logger.Error("failed to list subtasks", "error", err, "task_id", task.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to load task")
		return
	}
	taskComments, err := h.comments.ListByTask(r.Context(), task.ID)
	if err != nil {
		h.logger.Error("failed to list comments", "error", err, "task_id", task.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to load task")
		return
	}
	taskAttachments, err := h.attachments.ListByTask(r.Context(), task.ID)
	if err != nil {
		h.logger.Error("failed to list attachments", "error", err, "task_id", task.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to load task")
		return
	}

	detail := DetailResponse{
		TaskResponse: newTaskResponse(task, assignee),
		Subtasks:     make([]SubtaskResponse, 0, len(subtasks)),
		Comments:     make([]comments.CommentResponse, 0, len(taskComments)),
		Attachments:  make([]attachments.AttachmentResponse, 0, len(taskAttachments)),
	}
	for _, st := range subtasks {
		detail.Subtasks = append(detail.Subtasks, SubtaskResponse{
			ID:          st.ID.String(),
			Title:       st.Title,
			IsCompleted: st.IsCompleted,
			Position:    st.Position,
			CreatedAt:   st.CreatedAt,
		})
	}
	for _, c := range taskComments {
		detail.Comments = append(detail.Comments, comments.NewResponse(c))
	}
	for _, a := range taskAttachments {
		detail.Attachments = append(detail.Attachments, attachments.NewResponse(a))
	}
	httputil.JSON(w, http.StatusOK, detail)
}

// Create creates a task in a list.
// POST /tasks
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		httputil.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	listID, err := uuid.Parse(req.ListID)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid list id")
		return
	}
	list, err := h.lists.GetByID(r.Context(), listID)
	if err != nil || list.OrganizationID != orgID {
		httputil.Error(w, http.StatusNotFound, "list not found")
		return
	}

	if req.Status == "" {
		req.Status = domain.TaskStatusOpen
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityNormal
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:             uuid.New(),
		OrganizationID: orgID,
		ListID:         listID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		CustomFields:   req.CustomFields,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if req.ParentTaskID != nil {
		parentID, err := uuid.Parse(*req.ParentTaskID)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid parent task id")
			return
		}
		parent, err := h.tasks.GetByID(r.Context(), parentID)
		if err != nil || parent.OrganizationID != orgID {
			httputil.Error(w, http.StatusNotFound, "parent task not found")
			return
		}
		task.ParentTaskID = &parentID
	}

	var assignee *domain.User
	if req.AssignedTo != nil {
		assignee, err = h.resolveAssignee(r, orgID, *req.AssignedTo)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid assignee")
			return
		}
		task.AssignedTo = &assignee.ID
		task.AssignedAt = &now
	}

	if err := h.tasks.Create(r.Context(), task); err != nil {
		h.logger.Error("failed to create task", "error", err, "list_id", listID)
		httputil.Error(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	httputil.JSON(w, http.StatusCreated, newTaskResponse(task, assignee))
}

// Update applies a partial update to a task.
// PUT /tasks/{taskID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())
	task, ok := h.resolveTask(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := time.Now().UTC()
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			httputil.Error(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil && *req.Status != task.Status {
		task.Status = *req.Status
		// Completion timestamp tracks transitions in and out of done.
		if task.Status == domain.TaskStatusDone {
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == "" {
			task.AssignedTo = nil
			task.AssignedAt = nil
		} else {
			assignee, err := h.resolveAssignee(r, orgID, *req.AssignedTo)
			if err != nil {
				httputil.Error(w, http.StatusBadRequest, "invalid assignee")
				return
			}
			if task.AssignedTo == nil || *task.AssignedTo != assignee.ID {
				task.AssignedTo = &assignee.ID
				task.AssignedAt = &now
			}
		}
	}
	if req.StartDate != nil {
		task.StartDate = req.StartDate
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.EstimatedHours != nil {
		task.EstimatedHours = req.EstimatedHours
	}
	if req.TimeSpent != nil {
		task.TimeSpent = *req.TimeSpent
	}
	if req.CustomFields != nil {
		task.CustomFields = req.CustomFields
	}

	if err := h.tasks.Update(r.Context(), task); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			httputil.Error(w, http.StatusNotFound, "task not found")
			return
		}
		h.logger.Error("failed to update task", "error", err, "task_id", task.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to update task")
		return
	}
	task.UpdatedAt = now

	var assignee *domain.User
	if task.AssignedTo != nil {
		if u, err := h.users.GetByID(r.Context(), *task.AssignedTo); err == nil {
			assignee = u
		}
	}
	httputil.JSON(w, http.StatusOK, newTaskResponse(task, assignee))
}

// Delete permanently deletes a task and its dependents.
// DELETE /tasks/{taskID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	task, ok := h.resolveTask(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), task.ID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			httputil.Error(w, http.StatusNotFound, "task not found")
			return
		}
		h.logger.Error("failed to delete task", "error", err, "task_id", task.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// resolveTask parses the task URL param and checks the task belongs to the
// caller's organization.
func (h *Handler) resolveTask(w http.ResponseWriter, r *http.Request) (*domain.Task, bool) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid task id")
		return nil, false
	}

	task, err := h.tasks.GetByID(r.Context(), id)
	if err != nil || task.OrganizationID != orgID {
		httputil.Error(w, http.StatusNotFound, "task not found")
		return nil, false
	}
	return task, true
}

// resolveAssignee checks the assignee exists in the caller's organization.
func (h *Handler) resolveAssignee(r *http.Request, orgID uuid.UUID, raw string) (*domain.User, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if user.OrganizationID != orgID {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
