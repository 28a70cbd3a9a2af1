package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
	"github.com/djmotor90/ghltask/internal/repository"
)

// DefaultSpaceName is the name of the space bootstrapped for a new tenant.
const DefaultSpaceName = "Default"

const defaultSpaceColor = "#7B68EE"

// OrganizationStore is the organization persistence provisioning depends on.
type OrganizationStore interface {
	GetByGHLAccountID(ctx context.Context, accountID string) (*domain.Organization, error)
	UpdateTokens(ctx context.Context, id uuid.UUID, accessToken, refreshToken string, expires time.Time) error
	CreateTx(ctx context.Context, q repository.Querier, org *domain.Organization) error
}

// UserStore is the user persistence provisioning depends on.
type UserStore interface {
	GetByGHLUserID(ctx context.Context, orgID uuid.UUID, ghlUserID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	CreateTx(ctx context.Context, q repository.Querier, user *domain.User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

// SpaceStore is the space persistence provisioning depends on.
type SpaceStore interface {
	CreateTx(ctx context.Context, q repository.Querier, space *domain.Space) error
}

// txFunc runs fn atomically against the backing store.
type txFunc func(ctx context.Context, fn func(q repository.Querier) error) error

// ProvisionInput carries the token material and profiles resolved from the
// provider during an OAuth callback.
type ProvisionInput struct {
	AccountID   string
	AccountName string
	GHLUserID   string
	Email       string
	FirstName   string
	LastName    string
	AvatarURL   string

	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// ProvisionResult is the resolved tenant and user for a callback.
type ProvisionResult struct {
	Organization        *domain.Organization
	User                *domain.User
	OrganizationCreated bool
	UserCreated         bool
}

// ProvisionService resolves GHL accounts and users to local records, creating
// them lazily on first sign-in.
type ProvisionService struct {
	orgs   OrganizationStore
	users  UserStore
	spaces SpaceStore
	logger *slog.Logger
	tx     txFunc
}

// NewProvisionService creates a new provision service backed by db.
func NewProvisionService(
	db *sql.DB,
	orgs OrganizationStore,
	users UserStore,
	spaces SpaceStore,
	logger *slog.Logger,
) *ProvisionService {
	return &ProvisionService{
		orgs:   orgs,
		users:  users,
		spaces: spaces,
		logger: logger,
		tx: func(ctx context.Context, fn func(q repository.Querier) error) error {
			return repository.Tx(ctx, db, func(tx *sql.Tx) error {
				return fn(tx)
			})
		},
	}
}

// Provision maps the external account and user to local records. A brand-new
// account gets an organization, its first user (admin) and a default space in
// a single transaction. An existing account only has its stored tokens
// refreshed; a new user joining it is created with the member role.
func (s *ProvisionService) Provision(ctx context.Context, in ProvisionInput) (*ProvisionResult, error) {
	// Must not create a tenant keyed on an absent identifier. Checked before
	// any database access.
	if in.AccountID == "" {
		return nil, fmt.Errorf("%w: locationId", domain.ErrMissingProviderField)
	}
	if in.GHLUserID == "" {
		return nil, fmt.Errorf("%w: userId", domain.ErrMissingProviderField)
	}

	org, err := s.orgs.GetByGHLAccountID(ctx, in.AccountID)
	switch {
	case err == nil:
		if err := s.refreshTokens(ctx, org, in); err != nil {
			return nil, err
		}

	case errors.Is(err, domain.ErrOrganizationNotFound):
		result, err := s.createTenant(ctx, in)
		if err == nil {
			return result, nil
		}
		if !repository.IsUniqueViolation(err) {
			return nil, err
		}
		// Lost the race against a concurrent first callback for the same
		// account. Re-read and proceed as existing.
		s.logger.Warn("concurrent tenant creation detected", "ghl_account_id", in.AccountID)
		org, err = s.orgs.GetByGHLAccountID(ctx, in.AccountID)
		if err != nil {
			return nil, err
		}
		if err := s.refreshTokens(ctx, org, in); err != nil {
			return nil, err
		}

	default:
		return nil, err
	}

	return s.resolveUser(ctx, org, in)
}

// refreshTokens updates only the stored token fields. Name, plan and status
// are never overwritten for an existing organization.
func (s *ProvisionService) refreshTokens(ctx context.Context, org *domain.Organization, in ProvisionInput) error {
	expires := time.Now().UTC().Add(time.Duration(in.ExpiresIn) * time.Second)
	if err := s.orgs.UpdateTokens(ctx, org.ID, in.AccessToken, in.RefreshToken, expires); err != nil {
		return err
	}
	org.GHLAccessToken = in.AccessToken
	org.GHLRefreshToken = in.RefreshToken
	org.GHLTokenExpires = expires
	return nil
}

// createTenant creates the organization, its first user and the default space
// in one transaction so partial provisioning cannot occur.
func (s *ProvisionService) createTenant(ctx context.Context, in ProvisionInput) (*ProvisionResult, error) {
	now := time.Now().UTC()

	org := &domain.Organization{
		ID:              uuid.New(),
		GHLAccountID:    in.AccountID,
		Name:            in.AccountName,
		PlanType:        domain.PlanFree,
		Status:          domain.OrganizationStatusActive,
		GHLAccessToken:  in.AccessToken,
		GHLRefreshToken: in.RefreshToken,
		GHLTokenExpires: now.Add(time.Duration(in.ExpiresIn) * time.Second),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// The first user of a new tenant is its admin.
	user := newUser(org.ID, in, domain.RoleAdmin, now)

	space := &domain.Space{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		Name:           DefaultSpaceName,
		Color:          defaultSpaceColor,
		CreatedBy:      user.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.tx(ctx, func(q repository.Querier) error {
		if err := s.orgs.CreateTx(ctx, q, org); err != nil {
			return err
		}
		if err := s.users.CreateTx(ctx, q, user); err != nil {
			return err
		}
		return s.spaces.CreateTx(ctx, q, space)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("provisioned organization",
		"organization_id", org.ID, "ghl_account_id", in.AccountID, "user_id", user.ID)

	return &ProvisionResult{
		Organization:        org,
		User:                user,
		OrganizationCreated: true,
		UserCreated:         true,
	}, nil
}

// resolveUser finds or creates the user within an existing organization.
// Users joining an established tenant get the member role; an existing user
// is returned unmodified apart from a last-login touch.
func (s *ProvisionService) resolveUser(ctx context.Context, org *domain.Organization, in ProvisionInput) (*ProvisionResult, error) {
	user, err := s.users.GetByGHLUserID(ctx, org.ID, in.GHLUserID)
	if err == nil {
		if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
			s.logger.Warn("failed to record last login", "error", err, "user_id", user.ID)
		}
		return &ProvisionResult{Organization: org, User: user}, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user = newUser(org.ID, in, domain.RoleMember, time.Now().UTC())
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("provisioned user",
		"organization_id", org.ID, "user_id", user.ID, "role", user.Role)

	return &ProvisionResult{Organization: org, User: user, UserCreated: true}, nil
}

func newUser(orgID uuid.UUID, in ProvisionInput, role domain.UserRole, now time.Time) *domain.User {
	user := &domain.User{
		ID:             uuid.New(),
		OrganizationID: orgID,
		GHLUserID:      in.GHLUserID,
		Email:          in.Email,
		FullName:       FullName(in.FirstName, in.LastName),
		Role:           role,
		IsActive:       true,
		CreatedAt:      now,
	}
	if in.AvatarURL != "" {
		user.AvatarURL = &in.AvatarURL
	}
	return user
}

// FullName joins first and last name, trimming the result so missing parts
// leave no stray spaces.
func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
