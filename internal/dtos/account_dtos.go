package dtos

// AccountResponse is the administrator identity as exposed over HTTP;
// secrets never leave the server.
type AccountResponse struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	TotpEnabled bool   `json:"totp_enabled"`
}

// UpdateAccountRequest is a partial update; absent fields are left
// untouched.
type UpdateAccountRequest struct {
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Username   *string `json:"username,omitempty" validate:"omitempty,min=1"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8"`
	TOTPSecret *string `json:"totp_secret,omitempty"`
}
