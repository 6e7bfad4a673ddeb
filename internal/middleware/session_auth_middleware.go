package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lumenstudio/cms-auth-service/internal/services"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

// SessionAuthMiddleware is the edge check in front of the protected
// area. It extracts the session cookie, verifies signature and expiry,
// and re-checks the embedded user-agent binding against the current
// request. A drifting user-agent invalidates the session; this is a
// lightweight anti-theft binding, not device fingerprinting.
//
// Any failure redirects to the login page.
func SessionAuthMiddleware(sessions services.SessionService, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(utils.SessionCookieName)
			if err != nil || cookie.Value == "" {
				redirectToLogin(w, r, loginPath)
				return
			}

			subject := sessions.Verify(cookie.Value)
			if subject == "" {
				redirectToLogin(w, r, loginPath)
				return
			}

			expectedSuffix := services.SubjectSeparator + r.UserAgent()
			if !strings.HasSuffix(subject, expectedSuffix) {
				utils.Logger.Warn("Session user-agent mismatch, treating as invalid session")
				redirectToLogin(w, r, loginPath)
				return
			}

			email := strings.TrimSuffix(subject, expectedSuffix)
			ctx := context.WithValue(r.Context(), utils.ContextKeyAdminEmail, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, loginPath string) {
	http.Redirect(w, r, loginPath, http.StatusFound)
}
