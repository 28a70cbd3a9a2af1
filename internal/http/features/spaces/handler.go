// Package spaces handles workspace space endpoints.
package spaces

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

const defaultColor = "#7B68EE"

// Handler handles space endpoints.
type Handler struct {
	logger *slog.Logger
	spaces *repository.SpacesRepository
}

// NewHandler creates a new spaces handler.
func NewHandler(logger *slog.Logger, spaces *repository.SpacesRepository) *Handler {
	return &Handler{logger: logger, spaces: spaces}
}

// CreateRequest represents a space creation request.
type CreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// SpaceResponse represents a space.
type SpaceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newSpaceResponse(s *domain.Space) SpaceResponse {
	return SpaceResponse{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: s.Description,
		Color:       s.Color,
		CreatedBy:   s.CreatedBy.String(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// List returns all spaces in the caller's organization.
// GET /spaces
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	spaces, err := h.spaces.ListByOrganization(r.Context(), orgID)
	if err != nil {
		h.logger.Error("failed to list spaces", "error", err, "organization_id", orgID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list spaces")
		return
	}

	out := make([]SpaceResponse, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, newSpaceResponse(s))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Get returns a single space.
// GET /spaces/{spaceID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "spaceID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid space id")
		return
	}

	space, err := h.spaces.GetByID(r.Context(), orgID, id)
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "space not found")
		return
	}

	httputil.JSON(w, http.StatusOK, newSpaceResponse(space))
}

// Create creates a space in the caller's organization.
// POST /spaces
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
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httputil.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Color == "" {
		req.Color = defaultColor
	}

	now := time.Now().UTC()
	space := &domain.Space{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
		Color:          req.Color,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.spaces.Create(r.Context(), space); err != nil {
		h.logger.Error("failed to create space", "error", err, "organization_id", orgID)
		httputil.Error(w, http.StatusInternalServerError, "failed to create space")
		return
	}

	httputil.JSON(w, http.StatusCreated, newSpaceResponse(space))
}
