package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyPatchMergesOnlyProvidedFields(t *testing.T) {
	base := AdminAccount{
		Email:        "admin@example.com",
		Username:     "admin",
		PasswordHash: "hash-1",
		TOTPSecret:   "secret-1",
	}

	newEmail := "owner@example.com"
	newHash := "hash-2"
	merged := ApplyPatch(base, AdminAccountPatch{
		Email:        &newEmail,
		PasswordHash: &newHash,
	})

	require.Equal(t, "owner@example.com", merged.Email)
	require.Equal(t, "hash-2", merged.PasswordHash)
	require.Equal(t, "admin", merged.Username)
	require.Equal(t, "secret-1", merged.TOTPSecret)

	// The input is untouched.
	require.Equal(t, "admin@example.com", base.Email)
	require.Equal(t, "hash-1", base.PasswordHash)
}

func TestApplyPatchEmptyPatchIsNoop(t *testing.T) {
	base := AdminAccount{Email: "admin@example.com", Username: "admin"}
	require.Equal(t, base, ApplyPatch(base, AdminAccountPatch{}))
}

func TestApplyPatchCanClearFields(t *testing.T) {
	base := AdminAccount{Email: "admin@example.com", TOTPSecret: "secret"}
	empty := ""
	merged := ApplyPatch(base, AdminAccountPatch{TOTPSecret: &empty})
	require.Empty(t, merged.TOTPSecret)
}
