// Package customfields handles custom field definitions on lists.
package customfields

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
	"github.com/djmotor90/ghltask/internal/http/middleware"
	"github.com/djmotor90/ghltask/internal/httputil"
	"github.com/djmotor90/ghltask/internal/repository"
)

// Handler handles custom field endpoints.
type Handler struct {
	logger *slog.Logger
	fields *repository.CustomFieldsRepository
	lists  *repository.ListsRepository
}

// NewHandler creates a new custom fields handler.
func NewHandler(logger *slog.Logger, fields *repository.CustomFieldsRepository, lists *repository.ListsRepository) *Handler {
	return &Handler{logger: logger, fields: fields, lists: lists}
}

// CreateRequest represents a custom field creation request.
type CreateRequest struct {
	Name         string                 `json:"name"`
	FieldType    domain.CustomFieldType `json:"fieldType"`
	Options      json.RawMessage        `json:"options,omitempty"`
	Formula      *string                `json:"formula,omitempty"`
	LinkedListID *string                `json:"linkedListId,omitempty"`
	Required     bool                   `json:"required"`
	Position     int                    `json:"position"`
}

// FieldResponse represents a custom field definition.
type FieldResponse struct {
	ID           string                 `json:"id"`
	ListID       string                 `json:"listId"`
	Name         string                 `json:"name"`
	FieldType    domain.CustomFieldType `json:"fieldType"`
	Options      json.RawMessage        `json:"options,omitempty"`
	Formula      *string                `json:"formula,omitempty"`
	LinkedListID *string                `json:"linkedListId,omitempty"`
	Required     bool                   `json:"required"`
	Position     int                    `json:"position"`
	CreatedAt    time.Time              `json:"createdAt"`
}

func newFieldResponse(f *domain.CustomField) FieldResponse {
	resp := FieldResponse{
		ID:        f.ID.String(),
		ListID:    f.ListID.String(),
		Name:      f.Name,
		FieldType: f.FieldType,
		Options:   f.Options,
		Formula:   f.Formula,
		Required:  f.Required,
		Position:  f.Position,
		CreatedAt: f.CreatedAt,
	}
	if f.LinkedListID != nil {
		s := f.LinkedListID.String()
		resp.LinkedListID = &s
	}
	return resp
}

var validFieldTypes = map[domain.CustomFieldType]bool{
	domain.FieldText:        true,
	domain.FieldNumber:      true,
	domain.FieldSelect:      true,
	domain.FieldMultiselect: true,
	domain.FieldDate:        true,
	domain.FieldCheckbox:    true,
	domain.FieldFormula:     true,
	domain.FieldLink:        true,
}

// ListByList returns the custom fields of a list, ordered by position.
// GET /custom-fields/list/{listID}
func (h *Handler) ListByList(w http.ResponseWriter, r *http.Request) {
	list, ok := h.resolveList(w, r)
	if !ok {
		return
	}

	fields, err := h.fields.ListByList(r.Context(), list.ID)
	if err != nil {
		h.logger.Error("failed to list custom fields", "error", err, "list_id", list.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list custom fields")
		return
	}

	out := make([]FieldResponse, 0, len(fields))
	for _, f := range fields {
		out = append(out, newFieldResponse(f))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Create adds a custom field definition to a list.
// POST /custom-fields/list/{listID}
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	list, ok := h.resolveList(w, r)
	if !ok {
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httputil.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if !validFieldTypes[req.FieldType] {
		httputil.Error(w, http.StatusBadRequest, "invalid field type")
		return
	}

	now := time.Now().UTC()
	field := &domain.CustomField{
		ID:             uuid.New(),
		ListID:         list.ID,
		OrganizationID: list.OrganizationID,
		Name:           req.Name,
		FieldType:      req.FieldType,
		Options:        req.Options,
		Formula:        req.Formula,
		Required:       req.Required,
		Position:       req.Position,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if req.LinkedListID != nil {
		linkedID, err := uuid.Parse(*req.LinkedListID)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid linked list id")
			return
		}
		linked, err := h.lists.GetByID(r.Context(), linkedID)
		if err != nil || linked.OrganizationID != list.OrganizationID {
			httputil.Error(w, http.StatusNotFound, "linked list not found")
			return
		}
		field.LinkedListID = &linkedID
	}

	if err := h.fields.Create(r.Context(), field); err != nil {
		h.logger.Error("failed to create custom field", "error", err, "list_id", list.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to create custom field")
		return
	}

	httputil.JSON(w, http.StatusCreated, newFieldResponse(field))
}

func (h *Handler) resolveList(w http.ResponseWriter, r *http.Request) (*domain.List, bool) {
	orgID, ok := middleware.GetOrgID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "listID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid list id")
		return nil, false
	}

	list, err := h.lists.GetByID(r.Context(), id)
	if err != nil || list.OrganizationID != orgID {
		httputil.Error(w, http.StatusNotFound, "list not found")
		return nil, false
	}
	return list, true
}
