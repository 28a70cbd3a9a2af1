// Package lists handles task list endpoints. A list lives either directly in
// a space or inside a folder.
package lists

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

// Handler handles list endpoints.
type Handler struct {
	logger  *slog.Logger
	lists   *repository.ListsRepository
	spaces  *repository.SpacesRepository
	folders *repository.FoldersRepository
}

// NewHandler creates a new lists handler.
func NewHandler(
	logger *slog.Logger,
	lists *repository.ListsRepository,
	spaces *repository.SpacesRepository,
	folders *repository.FoldersRepository,
) *Handler {
	return &Handler{logger: logger, lists: lists, spaces: spaces, folders: folders}
}

// CreateRequest represents a list creation request.
type CreateRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	ViewType    domain.ViewType `json:"viewType,omitempty"`
	Color       *string         `json:"color,omitempty"`
	Position    int             `json:"position"`
}

// ListResponse represents a list.
type ListResponse struct {
	ID          string            `json:"id"`
	FolderID    *string           `json:"folderId,omitempty"`
	SpaceID     *string           `json:"spaceId,omitempty"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Status      domain.ListStatus `json:"status"`
	ViewType    domain.ViewType   `json:"viewType"`
	Color       *string           `json:"color,omitempty"`
	Position    int               `json:"position"`
	CreatedBy   string            `json:"createdBy"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func newListResponse(l *domain.List) ListResponse {
	resp := ListResponse{
		ID:          l.ID.String(),
		Name:        l.Name,
		Description: l.Description,
		Status:      l.Status,
		ViewType:    l.ViewType,
		Color:       l.Color,
		Position:    l.Position,
		CreatedBy:   l.CreatedBy.String(),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.FolderID != nil {
		s := l.FolderID.String()
		resp.FolderID = &s
	}
	if l.SpaceID != nil {
		s := l.SpaceID.String()
		resp.SpaceID = &s
	}
	return resp
}

// ListBySpace returns the lists attached directly to a space.
// GET /lists/space/{spaceID}
func (h *Handler) ListBySpace(w http.ResponseWriter, r *http.Request) {
	space, ok := h.resolveSpace(w, r)
	if !ok {
		return
	}

	lists, err := h.lists.ListBySpace(r.Context(), space.ID)
	if err != nil {
		h.logger.Error("failed to list lists", "error", err, "space_id", space.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list lists")
		return
	}
	h.respondMany(w, lists)
}

// ListByFolder returns the lists inside a folder.
// GET /lists/folder/{folderID}
func (h *Handler) ListByFolder(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.resolveFolder(w, r)
	if !ok {
		return
	}

	lists, err := h.lists.ListByFolder(r.Context(), folder.ID)
	if err != nil {
		h.logger.Error("failed to list lists", "error", err, "folder_id", folder.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list lists")
		return
	}
	h.respondMany(w, lists)
}

// Get returns a single list.
// GET /lists/{listID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "listID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid list id")
		return
	}

	list, err := h.lists.GetByID(r.Context(), id)
	if err != nil || list.OrganizationID != orgID {
		httputil.Error(w, http.StatusNotFound, "list not found")
		return
	}

	httputil.JSON(w, http.StatusOK, newListResponse(list))
}

// CreateInSpace creates a list attached directly to a space.
// POST /lists/space/{spaceID}
func (h *Handler) CreateInSpace(w http.ResponseWriter, r *http.Request) {
	space, ok := h.resolveSpace(w, r)
	if !ok {
		return
	}
	h.create(w, r, space.OrganizationID, &space.ID, nil)
}

// CreateInFolder creates a list inside a folder.
// POST /lists/folder/{folderID}
func (h *Handler) CreateInFolder(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.resolveFolder(w, r)
	if !ok {
		return
	}
	h.create(w, r, folder.OrganizationID, nil, &folder.ID)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, orgID uuid.UUID, spaceID, folderID *uuid.UUID) {
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
	if req.ViewType == "" {
		req.ViewType = domain.ViewList
	}

	now := time.Now().UTC()
	list := &domain.List{
		ID:             uuid.New(),
		FolderID:       folderID,
		SpaceID:        spaceID,
		OrganizationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
		Status:         domain.ListStatusActive,
		ViewType:       req.ViewType,
		Color:          req.Color,
		Position:       req.Position,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.lists.Create(r.Context(), list); err != nil {
		h.logger.Error("failed to create list", "error", err, "organization_id", orgID)
		httputil.Error(w, http.StatusInternalServerError, "failed to create list")
		return
	}

	httputil.JSON(w, http.StatusCreated, newListResponse(list))
}

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

func (h *Handler) resolveFolder(w http.ResponseWriter, r *http.Request) (*domain.Folder, bool) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	folderID, err := uuid.Parse(chi.URLParam(r, "folderID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid folder id")
		return nil, false
	}

	folder, err := h.folders.GetByID(r.Context(), orgID, folderID)
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "folder not found")
		return nil, false
	}
	return folder, true
}

func (h *Handler) respondMany(w http.ResponseWriter, lists []*domain.List) {
	out := make([]ListResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, newListResponse(l))
	}
	httputil.JSON(w, http.StatusOK, out)
}
