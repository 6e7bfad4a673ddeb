package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lumenstudio/cms-auth-service/internal/config"
	"github.com/lumenstudio/cms-auth-service/internal/dtos"
	"github.com/lumenstudio/cms-auth-service/internal/models"
	"github.com/lumenstudio/cms-auth-service/internal/services"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

var accountValidate = validator.New()

type AccountController struct {
	accountService services.AccountService
	csrfService    services.CsrfService
	rateLimiter    services.RateLimiterService
	cfg            *config.Config
}

func NewAccountController(
	accountService services.AccountService,
	csrfService services.CsrfService,
	rateLimiter services.RateLimiterService,
	cfg *config.Config,
) *AccountController {
	return &AccountController{
		accountService: accountService,
		csrfService:    csrfService,
		rateLimiter:    rateLimiter,
		cfg:            cfg,
	}
}

func accountResponse(acct *models.AdminAccount) dtos.AccountResponse {
	return dtos.AccountResponse{
		Email:       acct.Email,
		Username:    acct.Username,
		TotpEnabled: acct.TOTPSecret != "",
	}
}

// GetAccount handles GET /account (behind the route guard).
func (c *AccountController) GetAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := c.accountService.Get(r.Context())
	if err != nil || acct == nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Failed to load account", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, accountResponse(acct))
}

// UpdateAccount handles POST /account (behind the route guard, plus the
// account_update rate budget and CSRF gate).
func (c *AccountController) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	if !guardRequest(w, r, c.rateLimiter, c.csrfService, services.ActionAccountUpdate) {
		return
	}

	var req dtos.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", err)
		return
	}
	if err := accountValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", err)
		return
	}

	acct, err := c.accountService.Update(r.Context(), services.AccountUpdate{
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
		TOTPSecret: req.TOTPSecret,
	})
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooShort) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Password too short", err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Failed to update account", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, accountResponse(acct))
}
