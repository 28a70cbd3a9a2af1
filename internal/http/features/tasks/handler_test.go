package tasks

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/http/middleware"
)

// newTestRouter mounts the handler behind a stub that injects an identity,
// the way the auth middleware does in production.
func newTestRouter(h *Handler, orgID, userID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), middleware.OrgIDKey, orgID)
			ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Post("/tasks", h.Create)
	r.Get("/tasks/{taskID}", h.Get)
	r.Put("/tasks/{taskID}", h.Update)
	r.Delete("/tasks/{taskID}", h.Delete)
	r.Get("/tasks/list/{listID}", h.ListByList)
	return r
}

func newTestHandler() *Handler {
	// Repositories stay nil; these tests only exercise validation that must
	// reject requests before any database access.
	return NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil, nil, nil, nil)
}

func TestCreate_Validation(t *testing.T) {
	router := newTestRouter(newTestHandler(), uuid.New(), uuid.New())

	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "invalid body",
			body: "{not json",
			want: http.StatusBadRequest,
		},
		{
			name: "missing title",
			body: `{"listId":"` + uuid.NewString() + `"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "whitespace title",
			body: `{"listId":"` + uuid.NewString() + `","title":"   "}`,
			want: http.StatusBadRequest,
		},
		{
			name: "invalid list id",
			body: `{"listId":"not-a-uuid","title":"Ship it"}`,
			want: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestInvalidTaskID(t *testing.T) {
	router := newTestRouter(newTestHandler(), uuid.New(), uuid.New())

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/tasks/not-a-uuid", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestInvalidListID(t *testing.T) {
	router := newTestRouter(newTestHandler(), uuid.New(), uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/tasks/list/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestUnauthenticated(t *testing.T) {
	h := newTestHandler()
	r := chi.NewRouter()
	r.Post("/tasks", h.Create)

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"x"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}
