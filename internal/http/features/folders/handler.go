// Package folders handles folder endpoints within spaces.
package folders

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

// Handler handles folder endpoints.
type Handler struct {
	logger  *slog.Logger
	folders *repository.FoldersRepository
	spaces  *repository.SpacesRepository
}

// NewHandler creates a new folders handler.
func NewHandler(logger *slog.Logger, folders *repository.FoldersRepository, spaces *repository.SpacesRepository) *Handler {
	return &Handler{logger: logger, folders: folders, spaces: spaces}
}

// CreateRequest represents a folder creation request.
type CreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Position    int     `json:"position"`
}

// FolderResponse represents a folder.
type FolderResponse struct {
	ID          string    `json:"id"`
	SpaceID     string    `json:"spaceId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       *string   `json:"color,omitempty"`
	Position    int       `json:"position"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newFolderResponse(f *domain.Folder) FolderResponse {
	return FolderResponse{
		ID:          f.ID.String(),
		SpaceID:     f.SpaceID.String(),
		Name:        f.Name,
		Description: f.Description,
		Color:       f.Color,
		Position:    f.Position,
		CreatedBy:   f.CreatedBy.String(),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// resolveSpace parses the space URL param and checks it belongs to the
// caller's organization.
func (h *Handler) resolveSpace(w http.ResponseWriter, r *http.Request) (*domain.Space, bool) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	spaceID, err := uuid.Parse(chi.URLParam(r, "spaceID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid space id")
		return nil, false
	}

	space, err := h.spaces.GetByID(r.Context(), orgID, spaceID)
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "space not found")
		return nil, false
	}
	return space, true
}

// ListBySpace returns the folders of a space, ordered by position.
// GET /folders/space/{spaceID}
func (h *Handler) ListBySpace(w http.ResponseWriter, r *http.Request) {
	space, ok := h.resolveSpace(w, r)
	if !ok {
		return
	}

	folders, err := h.folders.ListBySpace(r.Context(), space.ID)
	if err != nil {
		h.logger.Error("failed to list folders", "error", err, "space_id", space.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list folders")
		return
	}

	out := make([]FolderResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, newFolderResponse(f))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Create creates a folder in a space.
// POST /folders/space/{spaceID}
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	space, ok := h.resolveSpace(w, r)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httputil.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	now := time.Now().UTC()
	folder := &domain.Folder{
		ID:             uuid.New(),
		SpaceID:        space.ID,
		OrganizationID: space.OrganizationID,
		Name:           req.Name,
		Description:    req.Description,
		Color:          req.Color,
		Position:       req.Position,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.folders.Create(r.Context(), folder); err != nil {
		h.logger.Error("failed to create folder", "error", err, "space_id", space.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to create folder")
		return
	}

	httputil.JSON(w, http.StatusCreated, newFolderResponse(folder))
}
