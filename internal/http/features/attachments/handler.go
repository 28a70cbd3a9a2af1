// Package attachments handles task attachment metadata endpoints. Files
// themselves live in external storage; only their URLs are recorded here.
package attachments

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
	"github.com/djmotor90/ghltask/internal/http/middleware"
	"github.com/djmotor90/ghltask/internal/httputil"
	"github.com/djmotor90/ghltask/internal/repository"
)

// Handler handles attachment endpoints.
type Handler struct {
	logger      *slog.Logger
	attachments *repository.AttachmentsRepository
	tasks       *repository.TasksRepository
}

// NewHandler creates a new attachments handler.
func NewHandler(logger *slog.Logger, attachments *repository.AttachmentsRepository, tasks *repository.TasksRepository) *Handler {
	return &Handler{logger: logger, attachments: attachments, tasks: tasks}
}

// CreateRequest represents an attachment registration request.
type CreateRequest struct {
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
	FileURL  string `json:"fileUrl"`
}

// AttachmentResponse represents an attachment.
type AttachmentResponse struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"taskId"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	FileType   string    `json:"fileType"`
	FileURL    string    `json:"fileUrl"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// NewResponse converts an attachment to its response shape.
func NewResponse(a *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:         a.ID.String(),
		TaskID:     a.TaskID.String(),
		FileName:   a.FileName,
		FileSize:   a.FileSize,
		FileType:   a.FileType,
		FileURL:    a.FileURL,
		UploadedBy: a.UploadedBy.String(),
		UploadedAt: a.UploadedAt,
	}
}

// ListByTask returns the attachments on a task.
// GET /tasks/{taskID}/attachments
func (h *Handler) ListByTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.resolveTask(w, r)
	if !ok {
		return
	}

	attachments, err := h.attachments.ListByTask(r.Context(), task.ID)
	if err != nil {
		h.logger.Error("failed to list attachments", "error", err, "task_id", task.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list attachments")
		return
	}

	out := make([]AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		out = append(out, NewResponse(a))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Create records an uploaded file against a task.
// POST /tasks/{taskID}/attachments
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
	if strings.TrimSpace(req.FileName) == "" || strings.TrimSpace(req.FileURL) == "" {
		httputil.Error(w, http.StatusBadRequest, "fileName and fileUrl are required")
		return
	}

	attachment := &domain.Attachment{
		ID:         uuid.New(),
		TaskID:     task.ID,
		FileName:   req.FileName,
		FileSize:   req.FileSize,
		FileType:   req.FileType,
		FileURL:    req.FileURL,
		UploadedBy: userID,
		UploadedAt: time.Now().UTC(),
	}

	if err := h.attachments.Create(r.Context(), attachment); err != nil {
		h.logger.Error("failed to create attachment", "error", err, "task_id", task.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to create attachment")
		return
	}

	httputil.JSON(w, http.StatusCreated, NewResponse(attachment))
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
