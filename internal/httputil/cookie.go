package httputil

import (
	"net/http"
	"time"
)

// StateCookieName is the cookie holding the signed OAuth state.
const StateCookieName = "ghl_oauth_state"

// SetStateCookie stores the signed OAuth state for the callback to verify.
func SetStateCookie(w http.ResponseWriter, value string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    value,
		Path:     "/auth",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearStateCookie removes the OAuth state cookie.
func ClearStateCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetStateCookie extracts the signed OAuth state from the request.
func GetStateCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(StateCookieName)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}
