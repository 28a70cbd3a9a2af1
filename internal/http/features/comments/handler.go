// Package comments handles task comment endpoints.
package comments

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
	"github.com/djmotor90/ghltask/internal/http/features/common"
	"github.com/djmotor90/ghltask/internal/http/middleware"
	"github.com/djmotor90/ghltask/internal/httputil"
	"github.com/djmotor90/ghltask/internal/repository"
)

// Handler handles comment endpoints.
type Handler struct {
	logger   *slog.Logger
	comments *repository.CommentsRepository
	tasks    *repository.TasksRepository
}

// NewHandler creates a new comments handler.
func NewHandler(logger *slog.Logger, comments *repository.CommentsRepository, tasks *repository.TasksRepository) *Handler {
	return &Handler{logger: logger, comments: comments, tasks: tasks}
}

// CreateRequest represents a comment creation request.
type CreateRequest struct {
	Content     string  `json:"content"`
	ContentHTML *string `json:"contentHtml,omitempty"`
}

// CommentResponse represents a comment with its author.
type CommentResponse struct {
	ID          string             `json:"id"`
	TaskID      string             `json:"taskId"`
	Content     string             `json:"content"`
	ContentHTML *string            `json:"contentHtml,omitempty"`
	IsEdited    bool               `json:"isEdited"`
	EditedAt    *time.Time         `json:"editedAt,omitempty"`
	Author      common.UserSummary `json:"author"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// NewResponse converts a comment with its author to the response shape.
func NewResponse(c *repository.CommentWithAuthor) CommentResponse {
	return CommentResponse{
		ID:          c.ID.String(),
		TaskID:      c.TaskID.String(),
		Content:     c.Content,
		ContentHTML: c.ContentHTML,
		IsEdited:    c.IsEdited,
		EditedAt:    c.EditedAt,
		Author:      common.NewUserSummary(&c.Author),
		CreatedAt:   c.CreatedAt,
	}
}

// ListByTask returns the comments on a task in chronological order.
// GET /tasks/{taskID}/comments
func (h *Handler) ListByTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.resolveTask(w, r)
	if !ok {
		return
	}

	comments, err := h.comments.ListByTask(r.Context(), task.ID)
	if err != nil {
		h.logger.Error("failed to list comments", "error", err, "task_id", task.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list comments")
		return
	}

	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewResponse(c))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Create adds a comment to a task, authored by the caller.
// POST /tasks/{taskID}/comments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	task, ok := h.resolveTask(w, r)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		httputil.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		ID:          uuid.New(),
		TaskID:      task.ID,
		UserID:      userID,
		Content:     req.Content,
		ContentHTML: req.ContentHTML,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.comments.Create(r.Context(), comment); err != nil {
		h.logger.Error("failed to create comment", "error", err, "task_id", task.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to create comment")
		return
	}

	httputil.JSON(w, http.StatusCreated, map[string]string{"id": comment.ID.String()})
}

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
