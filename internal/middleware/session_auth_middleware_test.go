package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumenstudio/cms-auth-service/internal/config"
	"github.com/lumenstudio/cms-auth-service/internal/services"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

const guardTestUA = "Mozilla/5.0 GuardTest"

func newGuardedHandler(t *testing.T) (services.SessionService, http.Handler, *string) {
	t.Helper()

	sessions := services.NewSessionService(&config.Config{AuthSecret: []byte("unit-test-signing-key")})

	var seenEmail string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenEmail, _ = r.Context().Value(utils.ContextKeyAdminEmail).(string)
		w.WriteHeader(http.StatusOK)
	})

	guard := SessionAuthMiddleware(sessions, "/login")
	return sessions, guard(inner), &seenEmail
}

func guardedRequest(token, userAgent string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.Header.Set("User-Agent", userAgent)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
	}
	return r
}

func TestGuardRedirectsWithoutCookie(t *testing.T) {
	_, handler, _ := newGuardedHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, guardedRequest("", guardTestUA))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGuardRedirectsOnForgedToken(t *testing.T) {
	_, handler, _ := newGuardedHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, guardedRequest("not.a.token", guardTestUA))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGuardRedirectsOnExpiredToken(t *testing.T) {
	sessions, handler, _ := newGuardedHandler(t)

	token, err := sessions.Mint(services.SessionSubject("admin@example.com", guardTestUA), -time.Minute)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, guardedRequest(token, guardTestUA))

	require.Equal(t, http.StatusFound, rec.Code)
}

func TestGuardRedirectsOnUserAgentMismatch(t *testing.T) {
	sessions, handler, _ := newGuardedHandler(t)

	// Token minted for one browser, replayed from another.
	token, err := sessions.Mint(services.SessionSubject("admin@example.com", guardTestUA), time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, guardedRequest(token, "Mozilla/5.0 SomeOtherBrowser"))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGuardPassesValidSessionAndExposesEmail(t *testing.T) {
	sessions, handler, seenEmail := newGuardedHandler(t)

	token, err := sessions.Mint(services.SessionSubject("admin@example.com", guardTestUA), time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, guardedRequest(token, guardTestUA))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "admin@example.com", *seenEmail)
}
