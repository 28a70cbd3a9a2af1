package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/djmotor90/ghltask/internal/domain"
)

// Default token lifetimes
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// SessionConfig holds session configuration.
type SessionConfig struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	JWTSecret       []byte
	Issuer          string
}

// SessionClaims are the identity claims carried in session tokens.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email          string          `json:"email"`
	OrganizationID string          `json:"organization_id"`
	Role           domain.UserRole `json:"role"`
}

// TokenPair is an access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// SessionService mints and validates signed session tokens. There is no
// revocation tracking; expiry is the sole invalidation mechanism.
type SessionService struct {
	config SessionConfig
}

// NewSessionService creates a new session service.
func NewSessionService(config SessionConfig) *SessionService {
	if config.AccessTokenTTL == 0 {
		config.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if config.RefreshTokenTTL == 0 {
		config.RefreshTokenTTL = DefaultRefreshTokenTTL
	}
	return &SessionService{config: config}
}

// AccessTokenTTL returns the access token TTL.
func (s *SessionService) AccessTokenTTL() time.Duration {
	return s.config.AccessTokenTTL
}

func (s *SessionService) sign(user *domain.User, org *domain.Organization, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    s.config.Issuer,
		},
		Email:          user.Email,
		OrganizationID: org.ID.String(),
		Role:           user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.config.JWTSecret)
}

// IssueAccessToken signs a short-lived access token for the user.
func (s *SessionService) IssueAccessToken(user *domain.User, org *domain.Organization) (string, error) {
	return s.sign(user, org, s.config.AccessTokenTTL)
}

// IssueTokenPair signs an access token plus a refresh token carrying the same
// claims with the longer refresh TTL.
func (s *SessionService) IssueTokenPair(user *domain.User, org *domain.Organization) (*TokenPair, error) {
	accessToken, err := s.sign(user, org, s.config.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.sign(user, org, s.config.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.config.AccessTokenTTL.Seconds()),
	}, nil
}

// Reissue signs a fresh access token from previously validated claims.
func (s *SessionService) Reissue(claims *SessionClaims) (string, error) {
	now := time.Now()
	fresh := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenTTL)),
			Issuer:    s.config.Issuer,
		},
		Email:          claims.Email,
		OrganizationID: claims.OrganizationID,
		Role:           claims.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, fresh)
	return token.SignedString(s.config.JWTSecret)
}

// ValidateAccessToken validates a session token and returns its claims.
func (s *SessionService) ValidateAccessToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.config.JWTSecret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
