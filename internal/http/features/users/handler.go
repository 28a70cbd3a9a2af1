// Package users exposes user lookup within the caller's organization.
package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/http/features/common"
	"github.com/djmotor90/ghltask/internal/http/middleware"
	"github.com/djmotor90/ghltask/internal/httputil"
	"github.com/djmotor90/ghltask/internal/repository"
)

// Handler handles user endpoints.
type Handler struct {
	logger *slog.Logger
	users  *repository.UsersRepository
}

// NewHandler creates a new users handler.
func NewHandler(logger *slog.Logger, users *repository.UsersRepository) *Handler {
	return &Handler{logger: logger, users: users}
}

// List returns the active users in the caller's organization, for assignee
// pickers.
// GET /users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	users, err := h.users.ListActiveByOrganization(r.Context(), orgID)
	if err != nil {
		h.logger.Error("failed to list users", "error", err, "organization_id", orgID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	out := make([]common.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, common.NewUserSummary(u))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Get returns a single user in the caller's organization.
// GET /users/{userID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil || user.OrganizationID != orgID {
		httputil.Error(w, http.StatusNotFound, "user not found")
		return
	}

	httputil.JSON(w, http.StatusOK, common.NewUserSummary(user))
}
