package services

import (
	"context"

	"github.com/lumenstudio/cms-auth-service/internal/config"
	"github.com/lumenstudio/cms-auth-service/internal/repositories"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

// CsrfService issues and validates the anti-forgery token that must
// accompany every state-changing request.
type CsrfService interface {
	// Issue mints a fresh token and records it server-side; the caller
	// sets it as both the csrf_token cookie and the response body.
	Issue(ctx context.Context) (string, error)

	// Validate requires the header token and cookie token to both be
	// present, equal, and still known to the server. Plain equality is
	// enough here: the cookie is HttpOnly and SameSite, so a forged
	// cross-site request cannot read or set it.
	Validate(ctx context.Context, headerToken, cookieToken string) error
}

type csrfService struct {
	repo repositories.CsrfRepository
	cfg  *config.Config
}

func NewCsrfService(repo repositories.CsrfRepository, cfg *config.Config) CsrfService {
	return &csrfService{repo: repo, cfg: cfg}
}

func (s *csrfService) Issue(ctx context.Context) (string, error) {
	token := utils.RandomAlphanumeric(s.cfg.CsrfTokenLength)
	if err := s.repo.Save(ctx, token, s.cfg.CsrfTokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

func (s *csrfService) Validate(ctx context.Context, headerToken, cookieToken string) error {
	if headerToken == "" || cookieToken == "" || headerToken != cookieToken {
		return utils.ErrCsrfRejected
	}
	known, err := s.repo.Exists(ctx, headerToken)
	if err != nil {
		utils.Logger.WithError(err).Error("CSRF store lookup failed")
		return utils.ErrCsrfRejected
	}
	if !known {
		return utils.ErrCsrfRejected
	}
	return nil
}
