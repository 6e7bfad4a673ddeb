package controllers

import (
	"errors"
	"net/http"

	"github.com/lumenstudio/cms-auth-service/internal/services"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

// guardRequest applies the two edge checks every state-changing
// endpoint shares: the per-IP rate limit first (it must gate even
// invalid-CSRF spam), then the CSRF token. Returns false after having
// written the error response.
func guardRequest(
	w http.ResponseWriter,
	r *http.Request,
	limiter services.RateLimiterService,
	csrf services.CsrfService,
	action services.RateLimitAction,
) bool {
	ip := utils.ClientIP(r)
	if err := limiter.Allow(r.Context(), action, ip); err != nil {
		if errors.Is(err, utils.ErrRateLimitExceeded) {
			utils.RespondErrorWithCode(w, http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded, "Too many requests")
			return false
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Bad request", err)
		return false
	}

	header := r.Header.Get(utils.CsrfHeaderName)
	var cookieToken string
	if ck, err := r.Cookie(utils.CsrfCookieName); err == nil {
		cookieToken = ck.Value
	}
	if err := csrf.Validate(r.Context(), header, cookieToken); err != nil {
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeCsrfRejected, "CSRF token missing or invalid")
		return false
	}
	return true
}

func pendingIDFromCookie(r *http.Request) string {
	if ck, err := r.Cookie(utils.PendingCookieName); err == nil {
		return ck.Value
	}
	return ""
}
