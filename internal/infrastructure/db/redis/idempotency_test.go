package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implements the two commands the store uses.
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func TestIdempotencyStore_RememberThenLookup(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	store := NewIdempotencyStore(fake, time.Hour)

	_, found, err := store.Lookup(ctx, "cli_1:abc")
	require.NoError(t, err)
	assert.False(t, found)

	stored, err := store.Remember(ctx, "cli_1:abc", "bkg_1")
	require.NoError(t, err)
	assert.True(t, stored)
	stored, err = store.Remember(ctx, "cli_1:abc", "bkg_2")
	require.NoError(t, err)
	assert.False(t, stored, "a taken key reports the loss")

	id, found, err := store.Lookup(ctx, "cli_1:abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "bkg_1", id, "first booking for a key wins")
	assert.Equal(t, time.Hour, fake.ttls["idem:booking:cli_1:abc"])
}

func TestIdempotencyStore_DefaultTTL(t *testing.T) {
	fake := newFakeRedis()
	store := NewIdempotencyStore(fake, 0)
	_, err := store.Remember(context.Background(), "k", "v")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, fake.ttls["idem:booking:k"])
}

func TestIdempotencyStore_WrapsErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	fake := newFakeRedis()
	fake.err = boom
	store := NewIdempotencyStore(fake, time.Hour)

	_, found, err := store.Lookup(ctx, "k")
	assert.False(t, found)
	assert.ErrorIs(t, err, boom)
	stored, err := store.Remember(ctx, "k", "v")
	assert.False(t, stored)
	assert.ErrorIs(t, err, boom)
}
