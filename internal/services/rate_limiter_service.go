package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenstudio/cms-auth-service/internal/store"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

// RateLimitAction names a rate-limited operation; each action has its
// own fixed-window budget per client IP.
type RateLimitAction string

const (
	ActionLogin         RateLimitAction = "login"
	ActionMfaVerify     RateLimitAction = "mfa"
	ActionOtpRequest    RateLimitAction = "otp_request"
	ActionOtpVerify     RateLimitAction = "otp_verify"
	ActionAccountUpdate RateLimitAction = "account_update"
	ActionCsrfIssue     RateLimitAction = "csrf_issue"
)

type rateLimitBudget struct {
	Max    int64
	Window time.Duration
}

// Per-route budgets. Changing these changes the brute-force math on the
// OTP channel (300s code TTL vs otp_verify budget), so treat them as a
// security parameter, not tuning.
var rateLimitBudgets = map[RateLimitAction]rateLimitBudget{
	ActionLogin:         {Max: 10, Window: 60 * time.Second},
	ActionMfaVerify:     {Max: 10, Window: 60 * time.Second},
	ActionOtpRequest:    {Max: 5, Window: 300 * time.Second},
	ActionOtpVerify:     {Max: 10, Window: 300 * time.Second},
	ActionAccountUpdate: {Max: 10, Window: 300 * time.Second},
	// Issuing a token writes a csrf:<token> key, so anonymous callers
	// must not be able to grow the store without bound.
	ActionCsrfIssue: {Max: 20, Window: 60 * time.Second},
}

// RateLimiterService gates every sensitive endpoint with a fixed-window
// counter keyed by (action, client IP).
type RateLimiterService interface {
	// Allow returns utils.ErrRateLimitExceeded when the budget for the
	// window is spent. When the backing store is unreachable it fails
	// OPEN: an infrastructure outage must not lock the admin out.
	Allow(ctx context.Context, action RateLimitAction, ip string) error
}

type rateLimiterService struct {
	store store.Store
	now   func() time.Time
}

func NewRateLimiterService(st store.Store) RateLimiterService {
	return &rateLimiterService{store: st, now: time.Now}
}

func (s *rateLimiterService) Allow(ctx context.Context, action RateLimitAction, ip string) error {
	budget, ok := rateLimitBudgets[action]
	if !ok {
		return fmt.Errorf("unknown rate limit action %q", action)
	}

	windowSecs := int64(budget.Window / time.Second)
	bucket := s.now().Unix() / windowSecs
	key := fmt.Sprintf("rl:%s:%s:%d", action, ip, bucket)

	count, err := s.store.Incr(ctx, key)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Rate limit store unavailable for %s, failing open", key)
		return nil
	}
	if count == 1 {
		if expErr := s.store.Expire(ctx, key, budget.Window); expErr != nil {
			utils.Logger.WithError(expErr).Warnf("Failed to set expiry on rate limit key %s", key)
		}
	}

	if count > budget.Max {
		utils.Logger.Warnf("Rate limit exceeded (key: %s, count: %d)", key, count)
		return utils.ErrRateLimitExceeded
	}
	return nil
}
