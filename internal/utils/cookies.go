// Helpers for issuing / clearing the auth cookies plus the
// security-header block applied to every token-bearing response.

package utils

import (
	"net/http"
	"time"
)

const (
	SessionCookieName = "cms_session"
	PendingCookieName = "cms_pending"
	CsrfCookieName    = "csrf_token"
)

// CsrfHeaderName is the request header every state-changing call must
// carry, echoing the csrf_token cookie value.
const CsrfHeaderName = "x-csrf-token"

// SetSessionCookie writes the signed session token cookie and the
// recommended security headers. Max-age follows the token TTL so the
// cookie never outlives the credential inside it.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	if token == "" {
		return
	}
	writeCookie(w, SessionCookieName, token, "/", int(ttl.Seconds()), http.SameSiteLaxMode, secure)
	AddSecurityHeaders(w)
}

// SetPendingCookie marks the client as having passed the password step.
func SetPendingCookie(w http.ResponseWriter, pendingID string, ttl time.Duration, secure bool) {
	writeCookie(w, PendingCookieName, pendingID, "/", int(ttl.Seconds()), http.SameSiteLaxMode, secure)
}

// SetCsrfCookie writes the anti-forgery cookie the client must echo
// back in the x-csrf-token header.
func SetCsrfCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	writeCookie(w, CsrfCookieName, token, "/", int(ttl.Seconds()), http.SameSiteLaxMode, secure)
}

// ClearPendingCookie removes the pending-login marker cookie once the
// MFA step has completed.
func ClearPendingCookie(w http.ResponseWriter, secure bool) {
	writeCookie(w, PendingCookieName, "", "/", -1, http.SameSiteLaxMode, secure)
}

// ClearAuthCookies deletes the session and pending cookies (logout).
func ClearAuthCookies(w http.ResponseWriter, secure bool) {
	writeCookie(w, SessionCookieName, "", "/", -1, http.SameSiteLaxMode, secure)
	writeCookie(w, PendingCookieName, "", "/", -1, http.SameSiteLaxMode, secure)
	AddSecurityHeaders(w)
}

func writeCookie(
	w http.ResponseWriter,
	name, value, path string,
	maxAge int,
	sameSite http.SameSite,
	secure bool,
) {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: sameSite,
		Secure:   secure,
	}
	if maxAge > 0 {
		c.Expires = time.Now().Add(time.Duration(maxAge) * time.Second).UTC()
	} else if maxAge < 0 {
		c.Expires = time.Now().Add(-1 * time.Hour).UTC()
	}
	http.SetCookie(w, c)
}

// AddSecurityHeaders applies the transport, CSP and privacy headers
// for token-bearing responses.
func AddSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")

	w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'none'; frame-ancestors 'none'")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")

	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}
