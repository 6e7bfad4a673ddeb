package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGetDel(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "v", 0))
	val, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", val)

	require.NoError(t, s.Del(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting an absent key is fine.
	require.NoError(t, s.Del(ctx, "k"))
}

func TestMemoryStoreTTL(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", "v", 5*time.Minute))

	_, ok, _ := s.Get(ctx, "k")
	require.True(t, ok)

	now = now.Add(5*time.Minute + time.Second)
	_, ok, _ = s.Get(ctx, "k")
	require.False(t, ok)
}

func TestMemoryStoreIncr(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	n, err := s.Incr(ctx, "counter")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = s.Incr(ctx, "counter")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	// An expired counter restarts from zero.
	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Expire(ctx, "counter", time.Minute))
	now = now.Add(2 * time.Minute)

	n, err = s.Incr(ctx, "counter")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestMemoryStorePurgeExpired(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "short", "v", time.Minute))
	require.NoError(t, s.Set(ctx, "long", "v", time.Hour))
	require.NoError(t, s.Set(ctx, "forever", "v", 0))

	now = now.Add(2 * time.Minute)
	require.Equal(t, 1, s.PurgeExpired())

	_, ok, _ := s.Get(ctx, "long")
	require.True(t, ok)
	_, ok, _ = s.Get(ctx, "forever")
	require.True(t, ok)
}
