package services

import (
	"context"

	"github.com/lumenstudio/cms-auth-service/internal/models"
	"github.com/lumenstudio/cms-auth-service/internal/repositories"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

// MinPasswordLength applies to password changes through the account
// endpoint, not to the bootstrap credentials from configuration.
const MinPasswordLength = 8

// AccountUpdate is the caller-facing partial update; Password is the
// plaintext to be hashed before persisting.
type AccountUpdate struct {
	Email      *string
	Username   *string
	Password   *string
	TOTPSecret *string
}

// AccountService reads and updates the administrator identity.
type AccountService interface {
	Get(ctx context.Context) (*models.AdminAccount, error)
	Update(ctx context.Context, update AccountUpdate) (*models.AdminAccount, error)
}

type accountService struct {
	adminRepo repositories.AdminRepository
}

func NewAccountService(adminRepo repositories.AdminRepository) AccountService {
	return &accountService{adminRepo: adminRepo}
}

func (s *accountService) Get(ctx context.Context) (*models.AdminAccount, error) {
	return s.adminRepo.Get(ctx)
}

func (s *accountService) Update(ctx context.Context, update AccountUpdate) (*models.AdminAccount, error) {
	patch := models.AdminAccountPatch{
		Email:      update.Email,
		Username:   update.Username,
		TOTPSecret: update.TOTPSecret,
	}

	if update.Password != nil {
		if len(*update.Password) < MinPasswordLength {
			return nil, utils.ErrPasswordTooShort
		}
		hash, err := utils.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	return s.adminRepo.Update(ctx, patch)
}
