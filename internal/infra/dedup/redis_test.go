package dedup

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "", 30*time.Second, 5*time.Minute), mr
}

func TestRedisStore_TryAcquire(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	now := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)

	ok, err := store.TryAcquire(ctx, "fp", now)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("admission:dedup:fp"))
	assert.Equal(t, 5*time.Minute, mr.TTL("admission:dedup:fp"))

	ok, err = store.TryAcquire(ctx, "fp", now.Add(5*time.Second))
	require.NoError(t, err)
	assert.False(t, ok, "suppressed inside the interval")

	ok, err = store.TryAcquire(ctx, "fp", now.Add(40*time.Second))
	require.NoError(t, err)
	assert.True(t, ok, "fresh evaluation after the interval")

	ok, err = store.TryAcquire(ctx, "other", now.Add(41*time.Second))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisStore_Evict(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	now := time.Now()

	ok, err := store.TryAcquire(ctx, "fp", now)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Evict(ctx, "fp"))
	assert.False(t, mr.Exists("admission:dedup:fp"))

	ok, err = store.TryAcquire(ctx, "fp", now.Add(time.Second))
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, store.Evict(ctx, "missing"))
}

func TestRedisStore_RetentionExpiresKeys(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	_, err := store.TryAcquire(ctx, "fp", time.Now())
	require.NoError(t, err)

	mr.FastForward(5*time.Minute + time.Second)
	assert.False(t, mr.Exists("admission:dedup:fp"))
	assert.NoError(t, store.Sweep(ctx, time.Now()))
}

func TestRedisStore_CustomPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "garage:", 30*time.Second, time.Minute)
	_, err := store.TryAcquire(context.Background(), "fp", time.Now())
	require.NoError(t, err)
	assert.True(t, mr.Exists("garage:fp"))
}

func TestRedisStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, "", 30*time.Second, time.Minute)
	mr.Close()

	_, err = store.TryAcquire(ctx, "fp", time.Now())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, store.Evict(ctx, "fp"), ErrUnavailable)
}
