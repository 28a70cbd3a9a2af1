package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

// State verification errors
var (
	ErrStateInvalid = errors.New("oauth state invalid")
	ErrStateExpired = errors.New("oauth state expired")
)

// StateSigner signs OAuth state values so the callback can verify that the
// flow started here, without server-side storage.
type StateSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewStateSigner creates a new state signer.
func NewStateSigner(secret []byte, ttl time.Duration) *StateSigner {
	return &StateSigner{secret: secret, ttl: ttl}
}

// TTL returns the state lifetime.
func (s *StateSigner) TTL() time.Duration {
	return s.ttl
}

// GenerateState returns a cryptographically random state value.
func GenerateState() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (s *StateSigner) mac(payload string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Sign produces "state.expiry.mac" for storage in a cookie.
func (s *StateSigner) Sign(state string, now time.Time) string {
	payload := state + "." + strconv.FormatInt(now.Add(s.ttl).Unix(), 10)
	return payload + "." + s.mac(payload)
}

// Verify checks that signed matches state, was signed with our secret and has
// not expired.
func (s *StateSigner) Verify(signed, state string) error {
	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		return ErrStateInvalid
	}
	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(s.mac(payload)), []byte(parts[2])) {
		return ErrStateInvalid
	}
	if parts[0] != state || state == "" {
		return ErrStateInvalid
	}
	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ErrStateInvalid
	}
	if time.Now().Unix() > expiry {
		return ErrStateExpired
	}
	return nil
}
