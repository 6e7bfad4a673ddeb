package controllers

import (
	"net/http"

	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

// AdminController serves the guarded admin-area probe. The CMS UI
// itself is rendered elsewhere; this endpoint exists so clients can
// cheaply check whether their session is still good.
type AdminController struct{}

func NewAdminController() *AdminController {
	return &AdminController{}
}

type adminHomeResponse struct {
	OK    bool   `json:"ok"`
	Email string `json:"email"`
}

func (c *AdminController) Home(w http.ResponseWriter, r *http.Request) {
	email, _ := r.Context().Value(utils.ContextKeyAdminEmail).(string)
	utils.RespondWithJSON(w, http.StatusOK, adminHomeResponse{OK: true, Email: email})
}
