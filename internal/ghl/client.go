// Package ghl is a client for the GoHighLevel OAuth and REST endpoints used
// during sign-in: code exchange, user profile and location profile lookups.
package ghl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds GHL client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       string

	AuthorizeURL string
	TokenURL     string
	APIBaseURL   string
	APIVersion   string
}

// Client calls the GHL provider. It performs outbound HTTP only and holds no
// local state.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new GHL client.
func NewClient(config Config) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// TokenResponse represents the response from the GHL token endpoint.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
	UserID       string `json:"userId"`
	LocationID   string `json:"locationId"`
}

// UserProfile is the GHL user profile.
type UserProfile struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// LocationProfile is the GHL location (account) profile.
type LocationProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TokenExchangeError indicates the token endpoint rejected the code or the
// call failed outright.
type TokenExchangeError struct {
	Status int
	Body   string
	Err    error
}

func (e *TokenExchangeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ghl: token exchange failed: %v", e.Err)
	}
	return fmt.Sprintf("ghl: token exchange failed: status %d: %s", e.Status, e.Body)
}

func (e *TokenExchangeError) Unwrap() error { return e.Err }

// UpstreamError indicates a profile fetch failed. Status and Body are kept
// for diagnostics.
type UpstreamError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ghl: %s returned status %d: %s", e.Endpoint, e.Status, e.Body)
}

// AuthorizeURL builds the marketplace authorization URL for the given state.
func (c *Client) AuthorizeURL(state string) string {
	params := url.Values{
		"client_id":     {c.config.ClientID},
		"redirect_uri":  {c.config.RedirectURI},
		"response_type": {"code"},
		"state":         {state},
	}
	if c.config.Scopes != "" {
		params.Set("scope", c.config.Scopes)
	}
	return c.config.AuthorizeURL + "?" + params.Encode()
}

// ExchangeCode exchanges an authorization code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	data := url.Values{
		"client_id":     {c.config.ClientID},
		"client_secret": {c.config.ClientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {c.config.RedirectURI},
		"user_type":     {"Company"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, &TokenExchangeError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TokenExchangeError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &TokenExchangeError{Status: resp.StatusCode, Body: string(body)}
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, &TokenExchangeError{Err: err}
	}
	if tokenResp.AccessToken == "" {
		return nil, &TokenExchangeError{Status: resp.StatusCode, Body: "response missing access_token"}
	}

	return &tokenResp, nil
}

// GetUser fetches the profile of the authenticated user.
func (c *Client) GetUser(ctx context.Context, accessToken, userID string) (*UserProfile, error) {
	var profile UserProfile
	if err := c.get(ctx, accessToken, "/users/"+userID, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetLocation fetches the profile of a location (account).
func (c *Client) GetLocation(ctx context.Context, accessToken, locationID string) (*LocationProfile, error) {
	var profile LocationProfile
	if err := c.get(ctx, accessToken, "/locations/"+locationID, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) get(ctx context.Context, accessToken, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIBaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Version", c.config.APIVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &UpstreamError{Endpoint: path, Status: resp.StatusCode, Body: string(body)}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
