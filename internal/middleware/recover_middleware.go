package middleware

import (
	"fmt"
	"net/http"

	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

// RecoverMiddleware turns handler panics into a generic 400 so nothing
// internal ever leaks to the client.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				utils.RespondErrorWithCode(
					w,
					http.StatusBadRequest,
					utils.ErrCodeInvalidPayload,
					"Bad request",
					fmt.Errorf("panic in %s %s: %v", r.Method, r.URL.Path, rec),
				)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
