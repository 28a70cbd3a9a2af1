// Package me exposes the authenticated caller's identity and token refresh.
package me

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/djmotor90/ghltask/internal/auth"
	"github.com/djmotor90/ghltask/internal/domain"
	"github.com/djmotor90/ghltask/internal/http/middleware"
	"github.com/djmotor90/ghltask/internal/httputil"
	"github.com/djmotor90/ghltask/internal/repository"
)

// Handler handles current-session endpoints.
type Handler struct {
	logger   *slog.Logger
	users    *repository.UsersRepository
	sessions *auth.SessionService
}

// NewHandler creates a new me handler.
func NewHandler(logger *slog.Logger, users *repository.UsersRepository, sessions *auth.SessionService) *Handler {
	return &Handler{logger: logger, users: users, sessions: sessions}
}

// UserResponse represents the current user's profile.
type UserResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Email          string          `json:"email"`
	FullName       string          `json:"fullName"`
	AvatarURL      *string         `json:"avatarUrl,omitempty"`
	Role           domain.UserRole `json:"role"`
	LastLoginAt    *time.Time      `json:"lastLoginAt,omitempty"`
}

// RefreshResponse carries a freshly minted access token.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

// GetMe returns the current user's profile.
// GET /auth/me
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "user not found")
		return
	}

	httputil.JSON(w, http.StatusOK, UserResponse{
		ID:             user.ID.String(),
		OrganizationID: user.OrganizationID.String(),
		Email:          user.Email,
		FullName:       user.FullName,
		AvatarURL:      user.AvatarURL,
		Role:           user.Role,
		LastLoginAt:    user.LastLoginAt,
	})
}

// Refresh mints a new access token from a valid refresh token presented as
// the Bearer credential.
// GET /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	accessToken, err := h.sessions.Reissue(claims)
	if err != nil {
		h.logger.Error("token reissue failed", "error", err, "user_id", claims.Subject)
		httputil.Error(w, http.StatusInternalServerError, "failed to refresh session")
		return
	}

	httputil.JSON(w, http.StatusOK, RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(h.sessions.AccessTokenTTL().Seconds()),
	})
}
