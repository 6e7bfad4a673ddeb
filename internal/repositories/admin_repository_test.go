package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumenstudio/cms-auth-service/internal/config"
	"github.com/lumenstudio/cms-auth-service/internal/models"
	"github.com/lumenstudio/cms-auth-service/internal/store"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

type downStore struct{}

func (downStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store down")
}
func (downStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("store down")
}
func (downStore) Incr(context.Context, string) (int64, error) {
	return 0, errors.New("store down")
}
func (downStore) Expire(context.Context, string, time.Duration) error {
	return errors.New("store down")
}
func (downStore) Del(context.Context, string) error {
	return errors.New("store down")
}

func adminTestConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := utils.HashPassword("s3cret password")
	require.NoError(t, err)
	return &config.Config{
		AdminEmail:        "Admin@Example.com",
		AdminUsername:     "root",
		AdminPasswordHash: hash,
	}
}

func TestAdminGetLazilyInitializesFromDefaults(t *testing.T) {
	st := store.NewMemoryStore()
	cfg := adminTestConfig(t)
	repo := NewAdminRepository(st, cfg)
	ctx := context.Background()

	acct, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, cfg.AdminEmail, acct.Email)
	require.Equal(t, cfg.AdminUsername, acct.Username)
	require.Equal(t, cfg.AdminPasswordHash, acct.PasswordHash)

	// The record was persisted, so a second repo over the same store
	// sees it even with different config defaults.
	other := NewAdminRepository(st, &config.Config{AdminEmail: "other@example.com"})
	acct2, err := other.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, cfg.AdminEmail, acct2.Email)
}

func TestAdminVerifyPasswordIdentifierMatching(t *testing.T) {
	repo := NewAdminRepository(store.NewMemoryStore(), adminTestConfig(t))
	ctx := context.Background()

	cases := []struct {
		identifier string
		ok         bool
	}{
		{"admin@example.com", true},
		{"ADMIN@EXAMPLE.COM", true},
		{"root", true},
		{"ROOT", true},
		{"  root  ", true},
		{"someone@else.com", false},
		{"admin", false},
		{"", false},
	}
	for _, tc := range cases {
		ok, email := repo.VerifyPassword(ctx, tc.identifier, "s3cret password")
		require.Equal(t, tc.ok, ok, "identifier %q", tc.identifier)
		if tc.ok {
			require.Equal(t, "Admin@Example.com", email)
		} else {
			require.Empty(t, email)
		}
	}
}

func TestAdminVerifyPasswordRejectsWrongPassword(t *testing.T) {
	repo := NewAdminRepository(store.NewMemoryStore(), adminTestConfig(t))

	ok, email := repo.VerifyPassword(context.Background(), "root", "not the password")
	require.False(t, ok)
	require.Empty(t, email)
}

func TestAdminVerifyPasswordPlaintextFallback(t *testing.T) {
	cfg := &config.Config{
		AdminEmail:    "admin@example.com",
		AdminUsername: "root",
		AdminPassword: "dev only password",
	}
	repo := NewAdminRepository(store.NewMemoryStore(), cfg)
	ctx := context.Background()

	ok, email := repo.VerifyPassword(ctx, "root", "dev only password")
	require.True(t, ok)
	require.Equal(t, "admin@example.com", email)

	ok, _ = repo.VerifyPassword(ctx, "root", "wrong")
	require.False(t, ok)
}

func TestAdminVerifyPasswordHashTakesPrecedenceOverPlaintext(t *testing.T) {
	cfg := adminTestConfig(t)
	cfg.AdminPassword = "plaintext decoy"
	repo := NewAdminRepository(store.NewMemoryStore(), cfg)

	// With a hash present, the plaintext fallback is dead code.
	ok, _ := repo.VerifyPassword(context.Background(), "root", "plaintext decoy")
	require.False(t, ok)

	ok, _ = repo.VerifyPassword(context.Background(), "root", "s3cret password")
	require.True(t, ok)
}

func TestAdminGetFailsSoftToDefaultsWhenStoreDown(t *testing.T) {
	cfg := adminTestConfig(t)
	repo := NewAdminRepository(downStore{}, cfg)
	ctx := context.Background()

	acct, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, cfg.AdminEmail, acct.Email)

	// Login keeps working against the environment identity.
	ok, email := repo.VerifyPassword(ctx, "root", "s3cret password")
	require.True(t, ok)
	require.Equal(t, cfg.AdminEmail, email)
}

func TestAdminUpdateMergesAndPersists(t *testing.T) {
	st := store.NewMemoryStore()
	cfg := adminTestConfig(t)
	repo := NewAdminRepository(st, cfg)
	ctx := context.Background()

	newUsername := "sysop"
	updated, err := repo.Update(ctx, models.AdminAccountPatch{Username: &newUsername})
	require.NoError(t, err)
	require.Equal(t, "sysop", updated.Username)
	require.Equal(t, cfg.AdminEmail, updated.Email)
	require.Equal(t, cfg.AdminPasswordHash, updated.PasswordHash)

	// Persisted, not just merged in memory.
	again, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "sysop", again.Username)

	// The new identifier works for login; the old one does not.
	ok, _ := repo.VerifyPassword(ctx, "sysop", "s3cret password")
	require.True(t, ok)
	ok, _ = repo.VerifyPassword(ctx, "root", "s3cret password")
	require.False(t, ok)
}

func TestAdminUpdateFailsWhenPersistFails(t *testing.T) {
	repo := NewAdminRepository(downStore{}, adminTestConfig(t))

	newUsername := "sysop"
	_, err := repo.Update(context.Background(), models.AdminAccountPatch{Username: &newUsername})
	require.Error(t, err)
}
