package domain

import (
	"time"

	"github.com/google/uuid"
)

// Space is a top-level workspace container.
type Space struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Description    *string
	Color          string
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Folder groups lists inside a space.
type Folder struct {
	ID             uuid.UUID
	SpaceID        uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Description    *string
	Color          *string
	Position       int
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ViewType is the default rendering of a list.
type ViewType string

const (
	ViewList     ViewType = "list"
	ViewBoard    ViewType = "board"
	ViewCalendar ViewType = "calendar"
	ViewTable    ViewType = "table"
)

// ListStatus represents the lifecycle state of a list.
type ListStatus string

const (
	ListStatusActive   ListStatus = "active"
	ListStatusArchived ListStatus = "archived"
)

// List holds tasks. It lives either directly in a space or in a folder.
type List struct {
	ID             uuid.UUID
	FolderID       *uuid.UUID
	SpaceID        *uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Description    *string
	Status         ListStatus
	ViewType       ViewType
	Color          *string
	Position       int
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
