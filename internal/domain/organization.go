package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanType represents an organization's subscription plan.
type PlanType string

const (
	PlanFree         PlanType = "free"
	PlanProfessional PlanType = "professional"
	PlanEnterprise   PlanType = "enterprise"
)

// OrganizationStatus represents the state of an organization.
type OrganizationStatus string

const (
	OrganizationStatusActive    OrganizationStatus = "active"
	OrganizationStatusSuspended OrganizationStatus = "suspended"
	OrganizationStatusCancelled OrganizationStatus = "cancelled"
)

// Organization represents a tenant, one per GHL account/location.
// GHLAccountID is globally unique.
type Organization struct {
	ID              uuid.UUID
	GHLAccountID    string
	Name            string
	PlanType        PlanType
	Status          OrganizationStatus
	GHLAccessToken  string
	GHLRefreshToken string
	GHLTokenExpires time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
