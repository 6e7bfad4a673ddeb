package services

import (
	"context"
	"crypto/subtle"

	"github.com/lumenstudio/cms-auth-service/internal/config"
	"github.com/lumenstudio/cms-auth-service/internal/repositories"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

// AuthService is the login state machine:
//
//	Anonymous -> PasswordVerified(pending) -> Authenticated    (password + TOTP)
//	Anonymous -> OtpRequested -> Authenticated                 (email OTP fallback)
//
// A session token is only ever minted from SubmitTOTP or VerifyOTP,
// never from the password step alone.
type AuthService interface {
	// SubmitPassword runs step 1. On success it creates a pending-login
	// marker and returns its opaque ID for the cms_pending cookie.
	// Failures are indistinguishable between unknown identifier and
	// wrong password.
	SubmitPassword(ctx context.Context, identifier, password string) (pendingID string, err error)

	// SubmitTOTP runs step 2 of the primary branch. On success the
	// pending marker is consumed and a session token bound to
	// "<email>::<userAgent>" is returned. On a bad code the marker
	// survives so the admin can retry until it expires.
	SubmitTOTP(ctx context.Context, pendingID, code, userAgent string) (sessionToken string, err error)

	// RequestOTP generates and stores a fresh code and dispatches it to
	// the administrator's email. Only destination "email" is supported.
	// The returned code is non-empty only in demo mode, where the
	// controller may echo it instead of dispatching.
	RequestOTP(ctx context.Context, destination string) (demoCode string, err error)

	// VerifyOTP runs the fallback branch. The code is single-use: a
	// match consumes it, mints a session and clears any pending marker.
	VerifyOTP(ctx context.Context, pendingID, code, userAgent string) (sessionToken string, err error)

	// Logout discards the pending marker if one exists. It never fails
	// from the client's point of view.
	Logout(ctx context.Context, pendingID string)
}

type authService struct {
	adminRepo   repositories.AdminRepository
	pendingRepo repositories.PendingLoginRepository
	otpService  OtpService
	sessions    SessionService
	mailer      Mailer
	cfg         *config.Config
}

func NewAuthService(
	adminRepo repositories.AdminRepository,
	pendingRepo repositories.PendingLoginRepository,
	otpService OtpService,
	sessions SessionService,
	mailer Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		adminRepo:   adminRepo,
		pendingRepo: pendingRepo,
		otpService:  otpService,
		sessions:    sessions,
		mailer:      mailer,
		cfg:         cfg,
	}
}

func (s *authService) SubmitPassword(ctx context.Context, identifier, password string) (string, error) {
	ok, email := s.adminRepo.VerifyPassword(ctx, identifier, password)
	if !ok {
		return "", utils.ErrInvalidCredentials
	}

	pendingID, err := s.pendingRepo.Create(ctx, email, s.cfg.PendingLoginTTL)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to create pending login marker")
		return "", utils.ErrInvalidCredentials
	}
	return pendingID, nil
}

func (s *authService) SubmitTOTP(ctx context.Context, pendingID, code, userAgent string) (string, error) {
	email, err := s.pendingRepo.Get(ctx, pendingID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to read pending login marker")
		return "", utils.ErrNoPendingLogin
	}
	if email == "" {
		return "", utils.ErrNoPendingLogin
	}

	account, err := s.adminRepo.Get(ctx)
	if err != nil || account == nil {
		return "", utils.ErrInvalidCode
	}
	if !utils.ValidateTOTPCode(account.TOTPSecret, code) {
		// Marker survives: the admin may retype the code until the
		// 5-minute TTL runs out.
		return "", utils.ErrInvalidCode
	}

	token, err := s.sessions.Mint(SessionSubject(email, userAgent), s.cfg.SessionTTL)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to mint session token")
		return "", utils.ErrInvalidCode
	}

	if delErr := s.pendingRepo.Delete(ctx, pendingID); delErr != nil {
		utils.Logger.WithError(delErr).Warn("Failed to clear pending login marker after MFA success")
	}
	return token, nil
}

func (s *authService) RequestOTP(ctx context.Context, destination string) (string, error) {
	if destination != "email" {
		return "", utils.ErrUnsupportedChannel
	}

	code, err := s.otpService.Generate(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to generate OTP code")
		return "", err
	}

	if s.cfg.AllowDemoOTP {
		// Demo/debug only: skip dispatch, hand the code back for the
		// response body. Config refuses to enable this in production.
		return code, nil
	}

	account, err := s.adminRepo.Get(ctx)
	if err != nil || account == nil {
		return "", utils.ErrStorageUnavailable
	}
	if sendErr := s.mailer.SendOtpCode(account.Email, code); sendErr != nil {
		return "", sendErr
	}
	return "", nil
}

func (s *authService) VerifyOTP(ctx context.Context, pendingID, code, userAgent string) (string, error) {
	stored, err := s.otpService.Read(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to read OTP slot")
		return "", utils.ErrInvalidCode
	}
	if stored == "" || code == "" ||
		subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return "", utils.ErrInvalidCode
	}

	account, err := s.adminRepo.Get(ctx)
	if err != nil || account == nil {
		return "", utils.ErrInvalidCode
	}

	token, err := s.sessions.Mint(SessionSubject(account.Email, userAgent), s.cfg.SessionTTL)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to mint session token")
		return "", utils.ErrInvalidCode
	}

	// Consume the code; it must never verify twice.
	if clearErr := s.otpService.Clear(ctx); clearErr != nil {
		utils.Logger.WithError(clearErr).Warn("Failed to clear consumed OTP code")
	}
	// Clearing the pending marker is idempotent when none exists.
	if delErr := s.pendingRepo.Delete(ctx, pendingID); delErr != nil {
		utils.Logger.WithError(delErr).Warn("Failed to clear pending login marker after OTP success")
	}
	return token, nil
}

func (s *authService) Logout(ctx context.Context, pendingID string) {
	if err := s.pendingRepo.Delete(ctx, pendingID); err != nil {
		utils.Logger.WithError(err).Warn("Failed to clear pending login marker on logout")
	}
}
