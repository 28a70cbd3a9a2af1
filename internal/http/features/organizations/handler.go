// Package organizations exposes the caller's organization and its members.
package organizations

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/djmotor90/ghltask/internal/domain"
	"github.com/djmotor90/ghltask/internal/http/features/common"
	"github.com/djmotor90/ghltask/internal/http/middleware"
	"github.com/djmotor90/ghltask/internal/httputil"
	"github.com/djmotor90/ghltask/internal/repository"
)

// Handler handles organization endpoints.
type Handler struct {
	logger *slog.Logger
	orgs   *repository.OrganizationsRepository
	users  *repository.UsersRepository
}

// NewHandler creates a new organizations handler.
func NewHandler(logger *slog.Logger, orgs *repository.OrganizationsRepository, users *repository.UsersRepository) *Handler {
	return &Handler{logger: logger, orgs: orgs, users: users}
}

// OrganizationResponse represents an organization. Provider tokens are never
// exposed.
type OrganizationResponse struct {
	ID           string                    `json:"id"`
	GHLAccountID string                    `json:"ghlAccountId"`
	Name         string                    `json:"name"`
	PlanType     domain.PlanType           `json:"planType"`
	Status       domain.OrganizationStatus `json:"status"`
	CreatedAt    time.Time                 `json:"createdAt"`
}

// GetMine returns the caller's organization.
// GET /organizations/me
func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	org, err := h.orgs.GetByID(r.Context(), orgID)
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "organization not found")
		return
	}

	httputil.JSON(w, http.StatusOK, OrganizationResponse{
		ID:           org.ID.String(),
		GHLAccountID: org.GHLAccountID,
		Name:         org.Name,
		PlanType:     org.PlanType,
		Status:       org.Status,
		CreatedAt:    org.CreatedAt,
	})
}

// ListMembers returns every user in the caller's organization.
// GET /organizations/members
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	users, err := h.users.ListByOrganization(r.Context(), orgID)
	if err != nil {
		h.logger.Error("failed to list members", "error", err, "organization_id", orgID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	members := make([]common.UserSummary, 0, len(users))
	for _, u := range users {
		members = append(members, common.NewUserSummary(u))
	}
	httputil.JSON(w, http.StatusOK, members)
}
