package repositories

import (
	"context"
	"time"

	"github.com/lumenstudio/cms-auth-service/internal/store"
)

const csrfKeyPrefix = "csrf:"

// CsrfRepository stores issued anti-forgery tokens server-side so the
// TTL is enforced independently of the cookie.
type CsrfRepository interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
}

type csrfRepository struct {
	store store.Store
}

func NewCsrfRepository(st store.Store) CsrfRepository {
	return &csrfRepository{store: st}
}

func (r *csrfRepository) Save(ctx context.Context, token string, ttl time.Duration) error {
	return r.store.Set(ctx, csrfKeyPrefix+token, "1", ttl)
}

func (r *csrfRepository) Exists(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	_, found, err := r.store.Get(ctx, csrfKeyPrefix+token)
	if err != nil {
		return false, err
	}
	return found, nil
}
