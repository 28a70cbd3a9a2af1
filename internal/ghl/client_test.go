package ghl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func testClient(tokenURL, apiBaseURL string) *Client {
	return NewClient(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8080/auth/callback",
		AuthorizeURL: "https://marketplace.example.com/oauth/chooselocation",
		TokenURL:     tokenURL,
		APIBaseURL:   apiBaseURL,
		APIVersion:   "2021-07-28",
	})
}

func TestAuthorizeURL(t *testing.T) {
	client := testClient("", "")

	raw := client.AuthorizeURL("state-123")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("AuthorizeURL produced invalid URL: %v", err)
	}

	query := parsed.Query()
	if query.Get("client_id") != "client-id" {
		t.Errorf("client_id = %q, want %q", query.Get("client_id"), "client-id")
	}
	if query.Get("redirect_uri") != "http://localhost:8080/auth/callback" {
		t.Errorf("redirect_uri = %q", query.Get("redirect_uri"))
	}
	if query.Get("response_type") != "code" {
		t.Errorf("response_type = %q, want %q", query.Get("response_type"), "code")
	}
	if query.Get("state") != "state-123" {
		t.Errorf("state = %q, want %q", query.Get("state"), "state-123")
	}
}

func TestExchangeCode_Success(t *testing.T) {
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"access_token": "tok1",
			"refresh_token": "ref1",
			"token_type": "Bearer",
			"expires_in": 3600,
			"scope": "users.readonly locations.readonly",
			"userId": "u1",
			"locationId": "loc1"
		}`))
	}))
	defer server.Close()

	client := testClient(server.URL, "")
	resp, err := client.ExchangeCode(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("ExchangeCode failed: %v", err)
	}

	if gotForm.Get("code") != "abc123" {
		t.Errorf("code = %q, want %q", gotForm.Get("code"), "abc123")
	}
	if gotForm.Get("grant_type") != "authorization_code" {
		t.Errorf("grant_type = %q", gotForm.Get("grant_type"))
	}
	if gotForm.Get("client_secret") != "client-secret" {
		t.Errorf("client_secret = %q", gotForm.Get("client_secret"))
	}

	if resp.AccessToken != "tok1" {
		t.Errorf("AccessToken = %q, want %q", resp.AccessToken, "tok1")
	}
	if resp.RefreshToken != "ref1" {
		t.Errorf("RefreshToken = %q, want %q", resp.RefreshToken, "ref1")
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("ExpiresIn = %d, want %d", resp.ExpiresIn, 3600)
	}
	if resp.UserID != "u1" || resp.LocationID != "loc1" {
		t.Errorf("UserID/LocationID = %q/%q, want u1/loc1", resp.UserID, resp.LocationID)
	}
}

func TestExchangeCode_UpstreamRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	client := testClient(server.URL, "")
	_, err := client.ExchangeCode(context.Background(), "bad-code")

	var exchangeErr *TokenExchangeError
	if !errors.As(err, &exchangeErr) {
		t.Fatalf("error = %v, want *TokenExchangeError", err)
	}
	if exchangeErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", exchangeErr.Status, http.StatusBadRequest)
	}
	if !strings.Contains(exchangeErr.Body, "invalid_grant") {
		t.Errorf("Body = %q, want it to contain invalid_grant", exchangeErr.Body)
	}
}

func TestExchangeCode_MissingAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"expires_in": 3600}`))
	}))
	defer server.Close()

	client := testClient(server.URL, "")
	_, err := client.ExchangeCode(context.Background(), "abc123")

	var exchangeErr *TokenExchangeError
	if !errors.As(err, &exchangeErr) {
		t.Fatalf("error = %v, want *TokenExchangeError", err)
	}
}

func TestExchangeCode_NetworkFailure(t *testing.T) {
	client := testClient("http://127.0.0.1:1", "")
	_, err := client.ExchangeCode(context.Background(), "abc123")

	var exchangeErr *TokenExchangeError
	if !errors.As(err, &exchangeErr) {
		t.Fatalf("error = %v, want *TokenExchangeError", err)
	}
	if exchangeErr.Unwrap() == nil {
		t.Error("network failure should carry the underlying error")
	}
}

func TestGetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/u1" {
			t.Errorf("path = %q, want /users/u1", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok1" {
			t.Errorf("Authorization = %q", auth)
		}
		if v := r.Header.Get("Version"); v != "2021-07-28" {
			t.Errorf("Version = %q", v)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"u1","email":"a@x.com","firstName":"A","lastName":"B"}`))
	}))
	defer server.Close()

	client := testClient("", server.URL)
	profile, err := client.GetUser(context.Background(), "tok1", "u1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}

	if profile.Email != "a@x.com" {
		t.Errorf("Email = %q, want %q", profile.Email, "a@x.com")
	}
	if profile.FirstName != "A" || profile.LastName != "B" {
		t.Errorf("name = %q %q, want A B", profile.FirstName, profile.LastName)
	}
}

func TestGetLocation_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"not authorized"}`))
	}))
	defer server.Close()

	client := testClient("", server.URL)
	_, err := client.GetLocation(context.Background(), "tok1", "loc1")

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("error = %v, want *UpstreamError", err)
	}
	if upstreamErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want %d", upstreamErr.Status, http.StatusForbidden)
	}
	if !strings.Contains(upstreamErr.Body, "not authorized") {
		t.Errorf("Body = %q, want it to contain upstream message", upstreamErr.Body)
	}
}

func TestGetLocation_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/locations/loc1" {
			t.Errorf("path = %q, want /locations/loc1", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"loc1","name":"Acme"}`))
	}))
	defer server.Close()

	client := testClient("", server.URL)
	profile, err := client.GetLocation(context.Background(), "tok1", "loc1")
	if err != nil {
		t.Fatalf("GetLocation failed: %v", err)
	}
	if profile.Name != "Acme" {
		t.Errorf("Name = %q, want %q", profile.Name, "Acme")
	}
}
