package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "k", "v", 0))
	n, err := s.Incr(ctx, "counter")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	// A fresh instance reads the same snapshot back.
	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	val, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", val)

	n, err = reopened.Incr(ctx, "counter")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestFileStoreExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	require.NoError(t, err)

	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))
	now = now.Add(2 * time.Minute)

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "dead", "v", time.Minute))
	now = now.Add(2 * time.Minute)
	require.Equal(t, 1, s.PurgeExpired())
}
