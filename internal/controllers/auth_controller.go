package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lumenstudio/cms-auth-service/internal/config"
	"github.com/lumenstudio/cms-auth-service/internal/dtos"
	"github.com/lumenstudio/cms-auth-service/internal/services"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

var authValidate = validator.New()

type AuthController struct {
	authService services.AuthService
	csrfService services.CsrfService
	rateLimiter services.RateLimiterService
	cfg         *config.Config
}

func NewAuthController(
	authService services.AuthService,
	csrfService services.CsrfService,
	rateLimiter services.RateLimiterService,
	cfg *config.Config,
) *AuthController {
	return &AuthController{
		authService: authService,
		csrfService: csrfService,
		rateLimiter: rateLimiter,
		cfg:         cfg,
	}
}

// Login handles POST /login: step 1 of the primary branch. Success
// produces the pending-login cookie, never a session.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if !guardRequest(w, r, c.rateLimiter, c.csrfService, services.ActionLogin) {
		return
	}

	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", err)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", err)
		return
	}

	pendingID, err := c.authService.SubmitPassword(r.Context(), req.Identifier, req.Password)
	if err != nil {
		// One message for every failure mode; no identifier enumeration.
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidCredentials, "Login failed", err)
		return
	}

	utils.SetPendingCookie(w, pendingID, c.cfg.PendingLoginTTL, c.cfg.Production)
	utils.RespondWithJSON(w, http.StatusOK, dtos.OkResponse{OK: true})
}

// Mfa handles POST /mfa: the TOTP step. Success mints the session.
func (c *AuthController) Mfa(w http.ResponseWriter, r *http.Request) {
	if !guardRequest(w, r, c.rateLimiter, c.csrfService, services.ActionMfaVerify) {
		return
	}

	var req dtos.MfaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", err)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", err)
		return
	}

	token, err := c.authService.SubmitTOTP(r.Context(), pendingIDFromCookie(r), req.Code, r.UserAgent())
	if err != nil {
		if errors.Is(err, utils.ErrNoPendingLogin) {
			utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeNoPendingLogin, "No pending login", err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidCode, "Invalid code", err)
		return
	}

	utils.SetSessionCookie(w, token, c.cfg.SessionTTL, c.cfg.Production)
	utils.ClearPendingCookie(w, c.cfg.Production)
	utils.RespondWithJSON(w, http.StatusOK, dtos.OkResponse{OK: true})
}

// RequestOtp handles POST /otp/request: dispatches a fresh code to the
// administrator's email. With ALLOW_DEMO_OTP the code is echoed in the
// response instead (debug only).
func (c *AuthController) RequestOtp(w http.ResponseWriter, r *http.Request) {
	if !guardRequest(w, r, c.rateLimiter, c.csrfService, services.ActionOtpRequest) {
		return
	}

	var req dtos.OtpRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", err)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", err)
		return
	}

	demoCode, err := c.authService.RequestOTP(r.Context(), req.Destination)
	if err != nil {
		if errors.Is(err, utils.ErrUnsupportedChannel) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Unsupported destination", err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Failed to send code", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.OtpRequestResponse{OK: true, Code: demoCode})
}

// VerifyOtp handles POST /otp/verify: the fallback branch. A matching
// code is consumed and the session minted.
func (c *AuthController) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	if !guardRequest(w, r, c.rateLimiter, c.csrfService, services.ActionOtpVerify) {
		return
	}

	var req dtos.OtpVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", err)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", err)
		return
	}

	token, err := c.authService.VerifyOTP(r.Context(), pendingIDFromCookie(r), req.Code, r.UserAgent())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidCode, "Invalid code", err)
		return
	}

	utils.SetSessionCookie(w, token, c.cfg.SessionTTL, c.cfg.Production)
	utils.ClearPendingCookie(w, c.cfg.Production)
	utils.RespondWithJSON(w, http.StatusOK, dtos.OkResponse{OK: true})
}

// Logout handles POST /logout. It clears both auth cookies and the
// server-side pending marker unconditionally and always succeeds.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	c.authService.Logout(r.Context(), pendingIDFromCookie(r))
	utils.ClearAuthCookies(w, c.cfg.Production)
	utils.RespondWithJSON(w, http.StatusOK, dtos.OkResponse{OK: true})
}

// Csrf handles GET /csrf: issues the anti-forgery token as cookie plus
// body so the client can echo it in the x-csrf-token header.
func (c *AuthController) Csrf(w http.ResponseWriter, r *http.Request) {
	// Metered but not CSRF-gated: this is where clients get the token.
	if err := c.rateLimiter.Allow(r.Context(), services.ActionCsrfIssue, utils.ClientIP(r)); err != nil {
		utils.RespondErrorWithCode(w, http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded, "Too many requests")
		return
	}

	token, err := c.csrfService.Issue(r.Context())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Failed to issue token", err)
		return
	}
	utils.SetCsrfCookie(w, token, c.cfg.CsrfTokenTTL, c.cfg.Production)
	utils.RespondWithJSON(w, http.StatusOK, dtos.CsrfResponse{Token: token})
}
