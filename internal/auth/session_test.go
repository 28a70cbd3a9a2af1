package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
)

func testSessionService() *SessionService {
	return NewSessionService(SessionConfig{
		JWTSecret: []byte("test-secret"),
		Issuer:    "ghltask-test",
	})
}

func testIdentity() (*domain.User, *domain.Organization) {
	org := &domain.Organization{
		ID:   uuid.New(),
		Name: "Acme",
	}
	user := &domain.User{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		Email:          "a@x.com",
		FullName:       "A B",
		Role:           domain.RoleAdmin,
	}
	return user, org
}

func TestIssueAccessToken_Claims(t *testing.T) {
	svc := testSessionService()
	user, org := testIdentity()

	token, err := svc.IssueAccessToken(user, org)
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}

	if claims.Subject != user.ID.String() {
		t.Errorf("sub = %q, want %q", claims.Subject, user.ID.String())
	}
	if claims.Email != "a@x.com" {
		t.Errorf("email = %q, want %q", claims.Email, "a@x.com")
	}
	if claims.OrganizationID != org.ID.String() {
		t.Errorf("organization_id = %q, want %q", claims.OrganizationID, org.ID.String())
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want %q", claims.Role, domain.RoleAdmin)
	}

	lifetime := claims.ExpiresAt.Unix() - claims.IssuedAt.Unix()
	if lifetime != 900 {
		t.Errorf("exp - iat = %d, want 900", lifetime)
	}
}

func TestIssueTokenPair_RefreshLifetime(t *testing.T) {
	svc := testSessionService()
	user, org := testIdentity()

	pair, err := svc.IssueTokenPair(user, org)
	if err != nil {
		t.Fatalf("IssueTokenPair failed: %v", err)
	}

	if pair.ExpiresIn != 900 {
		t.Errorf("ExpiresIn = %d, want 900", pair.ExpiresIn)
	}

	refreshClaims, err := svc.ValidateAccessToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token did not validate: %v", err)
	}
	lifetime := refreshClaims.ExpiresAt.Unix() - refreshClaims.IssuedAt.Unix()
	if lifetime != 604800 {
		t.Errorf("refresh exp - iat = %d, want 604800", lifetime)
	}

	accessClaims, err := svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("access token did not validate: %v", err)
	}
	if accessClaims.Subject != refreshClaims.Subject || accessClaims.Email != refreshClaims.Email {
		t.Error("access and refresh tokens should carry the same identity claims")
	}
}

func TestReissue_FreshExpiry(t *testing.T) {
	svc := testSessionService()
	user, org := testIdentity()

	token, err := svc.IssueAccessToken(user, org)
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}
	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}

	fresh, err := svc.Reissue(claims)
	if err != nil {
		t.Fatalf("Reissue failed: %v", err)
	}
	freshClaims, err := svc.ValidateAccessToken(fresh)
	if err != nil {
		t.Fatalf("reissued token did not validate: %v", err)
	}

	if freshClaims.Subject != claims.Subject {
		t.Errorf("sub = %q, want %q", freshClaims.Subject, claims.Subject)
	}
	if freshClaims.OrganizationID != claims.OrganizationID {
		t.Errorf("organization_id changed on reissue")
	}
	lifetime := freshClaims.ExpiresAt.Unix() - freshClaims.IssuedAt.Unix()
	if lifetime != 900 {
		t.Errorf("exp - iat = %d, want 900", lifetime)
	}
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	svc := testSessionService()
	user, org := testIdentity()

	token, err := svc.IssueAccessToken(user, org)
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	other := NewSessionService(SessionConfig{JWTSecret: []byte("other-secret")})
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("token signed with a different secret should not validate")
	}
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := NewSessionService(SessionConfig{
		JWTSecret:      []byte("test-secret"),
		AccessTokenTTL: -time.Minute,
	})
	user, org := testIdentity()

	token, err := svc.IssueAccessToken(user, org)
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}
	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Error("expired token should not validate")
	}
}
