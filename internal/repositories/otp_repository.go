package repositories

import (
	"context"
	"time"

	"github.com/lumenstudio/cms-auth-service/internal/store"
)

const otpSlotKey = "otp:code"

// OtpRepository holds the single global OTP slot. Saving a new code
// overwrites any unconsumed one, so at most one valid code exists.
type OtpRepository interface {
	Save(ctx context.Context, code string, ttl time.Duration) error
	// Read returns "" when no unexpired code exists.
	Read(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type otpRepository struct {
	store store.Store
}

func NewOtpRepository(st store.Store) OtpRepository {
	return &otpRepository{store: st}
}

func (r *otpRepository) Save(ctx context.Context, code string, ttl time.Duration) error {
	return r.store.Set(ctx, otpSlotKey, code, ttl)
}

func (r *otpRepository) Read(ctx context.Context) (string, error) {
	code, found, err := r.store.Get(ctx, otpSlotKey)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	return code, nil
}

func (r *otpRepository) Clear(ctx context.Context) error {
	return r.store.Del(ctx, otpSlotKey)
}
