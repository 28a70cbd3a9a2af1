// Package common holds response types shared across feature handlers.
package common

import (
	"time"

	"github.com/djmotor90/ghltask/internal/domain"
)

// UserSummary is the user shape embedded in resource responses.
type UserSummary struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	FullName  string          `json:"fullName"`
	AvatarURL *string         `json:"avatarUrl,omitempty"`
	Role      domain.UserRole `json:"role"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewUserSummary converts a user record to its response shape.
func NewUserSummary(u *domain.User) UserSummary {
	return UserSummary{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
