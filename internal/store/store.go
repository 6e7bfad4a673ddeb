// Package store provides the key-value persistence collaborator shared
// by the credential record, the OTP slot, pending-login markers, CSRF
// tokens and rate-limit counters.
//
// A backend is selected exactly once at startup (Redis, in-memory, or a
// local JSON file); callers only ever see the Store interface.
package store

import (
	"context"
	"time"
)

// Store is the narrow contract the auth flow needs from persistence:
// get/set/incr/expire/del with per-key TTLs.
type Store interface {
	// Get returns the value for key, or ok=false when the key is
	// absent or has expired.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes key=value. A ttl of zero means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Incr atomically increments the integer counter at key and
	// returns the new value. A missing key counts from zero.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets the TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Del removes key. Deleting an absent key is not an error.
	Del(ctx context.Context, key string) error
}

// Purger is implemented by backends that accumulate dead entries and
// need periodic cleanup (the in-memory and file variants; Redis expires
// keys on its own).
type Purger interface {
	PurgeExpired() int
}
