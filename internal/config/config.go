package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration. A single instance is loaded at
// startup and passed into each component at construction.
type Config struct {
	// Server
	ServerAddr string `env:"SERVER_ADDR" envDefault:"0.0.0.0"`
	ServerPort int    `env:"SERVER_PORT" envDefault:"8080"`

	// Web client origin, used for CORS
	WebURL string `env:"WEB_URL" envDefault:"http://localhost:3000"`

	// Database
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"ghltask"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// JWT
	JWTSecret       string        `env:"JWT_SECRET"`
	JWTIssuer       string        `env:"JWT_ISSUER" envDefault:"ghltask"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`

	// GHL OAuth
	GHLClientID     string `env:"GHL_CLIENT_ID"`
	GHLClientSecret string `env:"GHL_CLIENT_SECRET"`
	GHLRedirectURI  string `env:"GHL_REDIRECT_URI"`
	GHLScopes       string `env:"GHL_SCOPES"`

	// GHL endpoints, overridable for testing
	GHLAuthorizeURL string `env:"GHL_AUTHORIZE_URL" envDefault:"https://marketplace.gohighlevel.com/oauth/chooselocation"`
	GHLTokenURL     string `env:"GHL_TOKEN_URL" envDefault:"https://services.leadconnectorhq.com/oauth/token"`
	GHLAPIBaseURL   string `env:"GHL_API_BASE_URL" envDefault:"https://services.leadconnectorhq.com"`
	GHLAPIVersion   string `env:"GHL_API_VERSION" envDefault:"2021-07-28"`

	// OAuth state cookie
	OAuthStateTTL time.Duration `env:"OAUTH_STATE_TTL" envDefault:"10m"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`

	// Request limits
	MaxRequestBodySize int64     `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
	RateLimit          RateLimit `envPrefix:"RATE_LIMIT_"`
}

// RateLimit holds IP-based rate limiting configuration. Auth covers the OAuth
// endpoints; API covers authenticated resource routes.
type RateLimit struct {
	Enabled      bool          `env:"ENABLED" envDefault:"true"`
	AuthRequests int           `env:"AUTH_REQUESTS" envDefault:"20"`
	AuthWindow   time.Duration `env:"AUTH_WINDOW" envDefault:"1m"`
	APIRequests  int           `env:"API_REQUESTS" envDefault:"300"`
	APIWindow    time.Duration `env:"API_WINDOW" envDefault:"1m"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GHLClientID == "" || cfg.GHLClientSecret == "" {
		return nil, fmt.Errorf("GHL_CLIENT_ID and GHL_CLIENT_SECRET are required")
	}
	if cfg.GHLRedirectURI == "" {
		return nil, fmt.Errorf("GHL_REDIRECT_URI is required")
	}

	return cfg, nil
}
