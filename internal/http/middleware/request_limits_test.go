package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/djmotor90/ghltask/internal/httputil"
)

// The downstream handler decodes JSON the way the feature handlers do, so an
// oversized body surfaces as a decode failure and a JSON error response.
func limitedRouter(maxBytes int64) http.Handler {
	return RequestSizeLimit(maxBytes)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title string `json:"title"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		httputil.JSON(w, http.StatusOK, body)
	}))
}

func TestRequestSizeLimit(t *testing.T) {
	handler := limitedRouter(64)

	t.Run("body within limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"Ship it"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("oversized body rejected with JSON error", func(t *testing.T) {
		payload := `{"title":"` + strings.Repeat("a", 128) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		var resp map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("error response is not JSON: %v", err)
		}
		if resp["error"] == "" {
			t.Error("expected an error field in the response body")
		}
	})

	t.Run("default limit admits a typical payload", func(t *testing.T) {
		// 1 MiB, the config default; a few-KB task description must pass.
		wide := limitedRouter(1 << 20)
		payload := `{"title":"` + strings.Repeat("a", 4096) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		wide.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})
}
