package domain

import "errors"

// Provisioning and auth errors
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrMissingProviderField = errors.New("provider response missing required field")
	ErrInvalidToken         = errors.New("invalid token")
)

// Resource errors
var (
	ErrSpaceNotFound       = errors.New("space not found")
	ErrFolderNotFound      = errors.New("folder not found")
	ErrListNotFound        = errors.New("list not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrCustomFieldNotFound = errors.New("custom field not found")
)
