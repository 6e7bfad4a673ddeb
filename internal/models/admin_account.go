package models

// AdminAccount is the singleton administrator record. It is created
// once (from configuration defaults on first access) and only ever
// mutated through an authenticated account update.
type AdminAccount struct {
	Email    string `json:"email"`
	Username string `json:"username"`

	// PasswordHash is empty until a password has been set; plaintext is
	// never persisted.
	PasswordHash string `json:"-"`

	// TOTPSecret is empty when TOTP enrollment has not happened.
	TOTPSecret string `json:"-"`
}

// AdminAccountPatch carries a partial account update. Nil fields are
// left untouched by ApplyPatch.
type AdminAccountPatch struct {
	Email        *string
	Username     *string
	PasswordHash *string
	TOTPSecret   *string
}

// ApplyPatch merges a patch into an account and returns the result.
// Pure function; the receiver is not modified.
func ApplyPatch(account AdminAccount, patch AdminAccountPatch) AdminAccount {
	if patch.Email != nil {
		account.Email = *patch.Email
	}
	if patch.Username != nil {
		account.Username = *patch.Username
	}
	if patch.PasswordHash != nil {
		account.PasswordHash = *patch.PasswordHash
	}
	if patch.TOTPSecret != nil {
		account.TOTPSecret = *patch.TOTPSecret
	}
	return account
}
