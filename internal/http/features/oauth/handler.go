// Package oauth implements the GHL sign-in flow: authorization URL issuance
// and the redirect callback that provisions tenants and mints sessions.
package oauth

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/djmotor90/ghltask/internal/auth"
	"github.com/djmotor90/ghltask/internal/ghl"
	"github.com/djmotor90/ghltask/internal/httputil"
)

// Handler handles GHL OAuth endpoints.
type Handler struct {
	logger       *slog.Logger
	client       *ghl.Client
	provisioner  *auth.ProvisionService
	sessions     *auth.SessionService
	states       *auth.StateSigner
	cookieSecure bool
}

// NewHandler creates a new OAuth handler.
func NewHandler(
	logger *slog.Logger,
	client *ghl.Client,
	provisioner *auth.ProvisionService,
	sessions *auth.SessionService,
	states *auth.StateSigner,
	cookieSecure bool,
) *Handler {
	return &Handler{
		logger:       logger,
		client:       client,
		provisioner:  provisioner,
		sessions:     sessions,
		states:       states,
		cookieSecure: cookieSecure,
	}
}

// AuthorizeResponse carries the provider authorization URL.
type AuthorizeResponse struct {
	URL string `json:"url"`
}

// CallbackUser is the user summary returned after a successful callback.
type CallbackUser struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FullName       string `json:"fullName"`
	OrganizationID string `json:"organization_id"`
}

// CallbackResponse is the successful callback response.
type CallbackResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         CallbackUser `json:"user"`
}

// Authorize returns the provider authorization URL. The generated state is
// signed into a short-lived cookie and verified on callback.
// GET /auth/authorize
func (h *Handler) Authorize(w http.ResponseWriter, r *http.Request) {
	state := auth.GenerateState()
	httputil.SetStateCookie(w, h.states.Sign(state, time.Now()), h.states.TTL(), h.cookieSecure)

	httputil.JSON(w, http.StatusOK, AuthorizeResponse{URL: h.client.AuthorizeURL(state)})
}

// Callback handles the provider redirect: exchanges the code, provisions the
// tenant and user, and returns session tokens.
// GET /auth/callback?code=...&state=...
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		httputil.Error(w, http.StatusBadRequest, errParam)
		return
	}
	if code == "" {
		httputil.Error(w, http.StatusBadRequest, "code is required")
		return
	}

	signed, ok := httputil.GetStateCookie(r)
	if !ok {
		httputil.Error(w, http.StatusBadRequest, "missing oauth state")
		return
	}
	httputil.ClearStateCookie(w, h.cookieSecure)
	if err := h.states.Verify(signed, state); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid or expired state")
		return
	}

	token, err := h.client.ExchangeCode(r.Context(), code)
	if err != nil {
		h.logger.Error("token exchange failed", "error", err)
		httputil.Error(w, http.StatusBadGateway, "token exchange failed")
		return
	}

	if token.UserID == "" || token.LocationID == "" {
		h.logger.Error("token response incomplete",
			"has_user_id", token.UserID != "", "has_location_id", token.LocationID != "")
		httputil.Error(w, http.StatusBadGateway, "provider response incomplete")
		return
	}

	// The two profile fetches are independent; issue them concurrently.
	var (
		profile  *ghl.UserProfile
		location *ghl.LocationProfile
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		profile, err = h.client.GetUser(ctx, token.AccessToken, token.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		location, err = h.client.GetLocation(ctx, token.AccessToken, token.LocationID)
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.Error("profile fetch failed", "error", err)
		httputil.Error(w, http.StatusBadGateway, "failed to fetch provider profile")
		return
	}

	result, err := h.provisioner.Provision(r.Context(), auth.ProvisionInput{
		AccountID:    token.LocationID,
		AccountName:  location.Name,
		GHLUserID:    token.UserID,
		Email:        profile.Email,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		AvatarURL:    profile.ProfileImageURL,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    token.ExpiresIn,
	})
	if err != nil {
		h.logger.Error("provisioning failed", "error", err, "ghl_account_id", token.LocationID)
		httputil.Error(w, http.StatusInternalServerError, "provisioning failed")
		return
	}

	tokens, err := h.sessions.IssueTokenPair(result.User, result.Organization)
	if err != nil {
		h.logger.Error("session issuance failed", "error", err, "user_id", result.User.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to issue session")
		return
	}

	h.logger.Info("oauth callback succeeded",
		"user_id", result.User.ID,
		"organization_id", result.Organization.ID,
		"organization_created", result.OrganizationCreated,
		"user_created", result.UserCreated,
	)

	httputil.JSON(w, http.StatusOK, CallbackResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User: CallbackUser{
			ID:             result.User.ID.String(),
			Email:          result.User.Email,
			FullName:       result.User.FullName,
			OrganizationID: result.Organization.ID.String(),
		},
	})
}
