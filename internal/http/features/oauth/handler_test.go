package oauth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/djmotor90/ghltask/internal/auth"
	"github.com/djmotor90/ghltask/internal/ghl"
	"github.com/djmotor90/ghltask/internal/httputil"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	client := ghl.NewClient(ghl.Config{
		ClientID:     "client-id",
		RedirectURI:  "https://app.example.com/auth/callback",
		Scopes:       "users.readonly locations.readonly",
		AuthorizeURL: "https://marketplace.example.com/oauth/chooselocation",
	})
	return NewHandler(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		client,
		nil,
		nil,
		auth.NewStateSigner([]byte("test-secret"), 10*time.Minute),
		false,
	)
}

func TestAuthorize(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/authorize", nil)
	rec := httptest.NewRecorder()
	h.Authorize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp AuthorizeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	u, err := url.Parse(resp.URL)
	if err != nil {
		t.Fatalf("authorize URL does not parse: %v", err)
	}
	state := u.Query().Get("state")
	if state == "" {
		t.Error("expected state in authorize URL")
	}
	if u.Query().Get("client_id") != "client-id" {
		t.Errorf("expected client_id in authorize URL, got %q", u.Query().Get("client_id"))
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == httputil.StateCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected state cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Error("expected state cookie to be HttpOnly")
	}
	if !strings.HasPrefix(cookie.Value, state+".") {
		t.Error("expected state cookie to carry the URL state")
	}
}

func TestCallback_RejectsBeforeExchange(t *testing.T) {
	h := newTestHandler(t)
	signer := auth.NewStateSigner([]byte("test-secret"), 10*time.Minute)
	state := auth.GenerateState()
	signed := signer.Sign(state, time.Now())

	tests := []struct {
		name   string
		target string
		cookie string
	}{
		{
			name:   "missing code",
			target: "/auth/callback?state=" + state,
			cookie: signed,
		},
		{
			name:   "provider error param",
			target: "/auth/callback?error=access_denied&code=abc&state=" + state,
			cookie: signed,
		},
		{
			name:   "missing state cookie",
			target: "/auth/callback?code=abc&state=" + state,
		},
		{
			name:   "state mismatch",
			target: "/auth/callback?code=abc&state=" + auth.GenerateState(),
			cookie: signed,
		},
		{
			name:   "tampered cookie",
			target: "/auth/callback?code=abc&state=" + state,
			cookie: signed + "!",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: httputil.StateCookieName, Value: tc.cookie})
			}
			rec := httptest.NewRecorder()

			// The handler has no provisioner or session service wired; reaching
			// the exchange would panic, so a 400 also proves the request was
			// rejected up front.
			h.Callback(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestCallback_ClearsStateCookie(t *testing.T) {
	h := newTestHandler(t)
	signer := auth.NewStateSigner([]byte("test-secret"), 10*time.Minute)
	state := auth.GenerateState()

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state="+auth.GenerateState(), nil)
	req.AddCookie(&http.Cookie{Name: httputil.StateCookieName, Value: signer.Sign(state, time.Now())})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == httputil.StateCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected state cookie to be cleared")
	}
}
