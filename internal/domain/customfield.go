package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CustomFieldType represents the value type of a custom field.
type CustomFieldType string

const (
	FieldText        CustomFieldType = "text"
	FieldNumber      CustomFieldType = "number"
	FieldSelect      CustomFieldType = "select"
	FieldMultiselect CustomFieldType = "multiselect"
	FieldDate        CustomFieldType = "date"
	FieldCheckbox    CustomFieldType = "checkbox"
	FieldFormula     CustomFieldType = "formula"
	FieldLink        CustomFieldType = "link"
)

// CustomField is a user-defined column on a list.
// Options holds the choices for select/multiselect fields as JSON.
type CustomField struct {
	ID             uuid.UUID
	ListID         uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	FieldType      CustomFieldType
	Options        json.RawMessage
	Formula        *string
	LinkedListID   *uuid.UUID
	Required       bool
	Position       int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
