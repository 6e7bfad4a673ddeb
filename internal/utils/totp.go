package utils

import (
	"github.com/pquerna/otp/totp"
)

// GenerateTOTPSecret enrolls a new time-based secret for the given
// issuer/account pair and returns the base32 secret.
func GenerateTOTPSecret(issuer string, accountName string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

// ValidateTOTPCode checks a 6-digit code against the secret. The
// library accepts the current 30-second step plus one step of skew on
// either side.
func ValidateTOTPCode(secret, code string) bool {
	if secret == "" {
		return false
	}
	return totp.Validate(code, secret)
}
