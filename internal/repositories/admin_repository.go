package repositories

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"strings"

	"github.com/lumenstudio/cms-auth-service/internal/config"
	"github.com/lumenstudio/cms-auth-service/internal/models"
	"github.com/lumenstudio/cms-auth-service/internal/store"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

const adminAccountKey = "admin:account"

// AdminRepository is the credential store for the singleton
// administrator record.
type AdminRepository interface {
	// Get returns the stored record, lazily initializing it from
	// configuration defaults when absent. When the backing store is
	// unreachable it fails soft to the configuration defaults.
	Get(ctx context.Context) (*models.AdminAccount, error)

	// Update merges the patch into the stored record and persists it.
	Update(ctx context.Context, patch models.AdminAccountPatch) (*models.AdminAccount, error)

	// VerifyPassword checks identifier (email or username,
	// case-insensitive) plus password. The ok=false result is identical
	// for unknown identifiers and wrong passwords.
	VerifyPassword(ctx context.Context, identifier, password string) (ok bool, email string)
}

type adminRepository struct {
	store store.Store
	cfg   *config.Config
}

func NewAdminRepository(st store.Store, cfg *config.Config) AdminRepository {
	return &adminRepository{store: st, cfg: cfg}
}

func (r *adminRepository) defaults() *models.AdminAccount {
	return &models.AdminAccount{
		Email:        r.cfg.AdminEmail,
		Username:     r.cfg.AdminUsername,
		PasswordHash: r.cfg.AdminPasswordHash,
		TOTPSecret:   r.cfg.AdminTOTPSecret,
	}
}

// stored is the persisted wire form; PasswordHash and TOTPSecret are
// json:"-" on the model so the record needs its own envelope here.
type storedAccount struct {
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash,omitempty"`
	TOTPSecret   string `json:"totpSecret,omitempty"`
}

func (r *adminRepository) Get(ctx context.Context) (*models.AdminAccount, error) {
	raw, found, err := r.store.Get(ctx, adminAccountKey)
	if err != nil {
		// Fail soft: a single-admin system can degrade to its
		// environment-supplied identity while the store is down.
		utils.Logger.WithError(err).Warn("Credential store unreachable, using configuration defaults")
		return r.defaults(), nil
	}
	if !found {
		acct := r.defaults()
		if persistErr := r.persist(ctx, acct); persistErr != nil {
			utils.Logger.WithError(persistErr).Warn("Failed to persist initial admin record")
		}
		return acct, nil
	}

	var sa storedAccount
	if err := json.Unmarshal([]byte(raw), &sa); err != nil {
		utils.Logger.WithError(err).Error("Corrupt admin record, using configuration defaults")
		return r.defaults(), nil
	}
	return &models.AdminAccount{
		Email:        sa.Email,
		Username:     sa.Username,
		PasswordHash: sa.PasswordHash,
		TOTPSecret:   sa.TOTPSecret,
	}, nil
}

func (r *adminRepository) Update(ctx context.Context, patch models.AdminAccountPatch) (*models.AdminAccount, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	merged := models.ApplyPatch(*current, patch)
	if err := r.persist(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (r *adminRepository) persist(ctx context.Context, acct *models.AdminAccount) error {
	b, err := json.Marshal(storedAccount{
		Email:        acct.Email,
		Username:     acct.Username,
		PasswordHash: acct.PasswordHash,
		TOTPSecret:   acct.TOTPSecret,
	})
	if err != nil {
		return err
	}
	return r.store.Set(ctx, adminAccountKey, string(b), 0)
}

func (r *adminRepository) VerifyPassword(ctx context.Context, identifier, password string) (bool, string) {
	acct, err := r.Get(ctx)
	if err != nil || acct == nil {
		return false, ""
	}

	id := strings.ToLower(strings.TrimSpace(identifier))
	if id != strings.ToLower(acct.Email) && id != strings.ToLower(acct.Username) {
		return false, ""
	}

	if acct.PasswordHash != "" {
		if utils.CheckPasswordHash(password, acct.PasswordHash) {
			return true, acct.Email
		}
		return false, ""
	}

	// Development-only escape hatch: no hash stored, compare against the
	// configuration-supplied plaintext. Disabled in hardened deployments
	// (config clears AdminPassword when ENV=production).
	if r.cfg.AdminPassword != "" &&
		subtle.ConstantTimeCompare([]byte(password), []byte(r.cfg.AdminPassword)) == 1 {
		utils.Logger.Warn("Password verified via plaintext ADMIN_PASSWORD fallback (insecure)")
		return true, acct.Email
	}
	return false, ""
}
