package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumenstudio/cms-auth-service/internal/store"
)

const pendingKeyPrefix = "pending:"

// PendingLoginRepository tracks clients that have passed the password
// step but not yet completed MFA. The opaque marker ID travels in the
// cms_pending cookie; the email stays server-side.
type PendingLoginRepository interface {
	Create(ctx context.Context, email string, ttl time.Duration) (id string, err error)
	// Get returns "" when the marker is absent or expired.
	Get(ctx context.Context, id string) (email string, err error)
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
}

type pendingLoginRepository struct {
	store store.Store
}

func NewPendingLoginRepository(st store.Store) PendingLoginRepository {
	return &pendingLoginRepository{store: st}
}

func (r *pendingLoginRepository) Create(ctx context.Context, email string, ttl time.Duration) (string, error) {
	id := uuid.NewString()
	if err := r.store.Set(ctx, pendingKeyPrefix+id, email, ttl); err != nil {
		return "", err
	}
	return id, nil
}

func (r *pendingLoginRepository) Get(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	email, found, err := r.store.Get(ctx, pendingKeyPrefix+id)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	return email, nil
}

func (r *pendingLoginRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return r.store.Del(ctx, pendingKeyPrefix+id)
}
