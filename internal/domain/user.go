package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents a user's role within their organization.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleMember  UserRole = "member"
	RoleViewer  UserRole = "viewer"
)

// User represents a person within a tenant.
// Unique on (OrganizationID, GHLUserID); belongs to exactly one organization.
type User struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	GHLUserID      string
	Email          string
	FullName       string
	AvatarURL      *string
	Role           UserRole
	IsActive       bool
	LastLoginAt    *time.Time
	CreatedAt      time.Time
}
