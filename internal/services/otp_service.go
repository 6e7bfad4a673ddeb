package services

import (
	"context"

	"github.com/lumenstudio/cms-auth-service/internal/config"
	"github.com/lumenstudio/cms-auth-service/internal/repositories"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

// OtpService generates and tracks the email-OTP fallback codes. The
// code is deliberately low-entropy (6 digits, human-typeable); the
// short TTL plus the otp_verify rate budget keep guessing infeasible.
type OtpService interface {
	// Generate draws a fresh 6-digit code, stores it (overwriting any
	// unconsumed predecessor) and returns it for dispatch.
	Generate(ctx context.Context) (string, error)

	// Read returns the live code, or "" when none exists.
	Read(ctx context.Context) (string, error)

	Clear(ctx context.Context) error
}

type otpService struct {
	repo repositories.OtpRepository
	cfg  *config.Config
}

func NewOtpService(repo repositories.OtpRepository, cfg *config.Config) OtpService {
	return &otpService{repo: repo, cfg: cfg}
}

func (s *otpService) Generate(ctx context.Context) (string, error) {
	code := utils.RandomNumericCode(s.cfg.OTPCodeLength)
	if err := s.repo.Save(ctx, code, s.cfg.OTPCodeTTL); err != nil {
		return "", err
	}
	return code, nil
}

func (s *otpService) Read(ctx context.Context) (string, error) {
	return s.repo.Read(ctx)
}

func (s *otpService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
