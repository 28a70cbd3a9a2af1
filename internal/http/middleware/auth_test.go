package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/auth"
	"github.com/djmotor90/ghltask/internal/domain"
)

func newSessionService() *auth.SessionService {
	return auth.NewSessionService(auth.SessionConfig{
		JWTSecret: []byte("test-secret"),
		Issuer:    "test",
	})
}

func issueToken(t *testing.T, svc *auth.SessionService, user *domain.User, org *domain.Organization) string {
	t.Helper()
	token, err := svc.IssueAccessToken(user, org)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func TestAuth(t *testing.T) {
	svc := newSessionService()
	user := &domain.User{ID: uuid.New(), Email: "jane@example.com", Role: domain.RoleAdmin}
	org := &domain.Organization{ID: uuid.New()}

	var gotUserID, gotOrgID uuid.UUID
	var gotClaims *auth.SessionClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r.Context())
		gotOrgID, _ = GetOrgID(r.Context())
		gotClaims, _ = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth(svc)(next)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/spaces", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, user, org))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if gotUserID != user.ID {
			t.Errorf("expected user id %s in context, got %s", user.ID, gotUserID)
		}
		if gotOrgID != org.ID {
			t.Errorf("expected org id %s in context, got %s", org.ID, gotOrgID)
		}
		if gotClaims == nil || gotClaims.Email != user.Email {
			t.Error("expected claims in context")
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/spaces", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/spaces", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/spaces", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("token signed with other secret", func(t *testing.T) {
		other := auth.NewSessionService(auth.SessionConfig{JWTSecret: []byte("other-secret")})
		req := httptest.NewRequest(http.MethodGet, "/spaces", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, other, user, org))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := auth.NewSessionService(auth.SessionConfig{
			JWTSecret:      []byte("test-secret"),
			AccessTokenTTL: -time.Minute,
		})
		req := httptest.NewRequest(http.MethodGet, "/spaces", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, expired, user, org))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})
}
