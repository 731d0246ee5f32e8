package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nattapong/sarakham-jobs/internal/cache"
)

func TestSetAndGet(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("value"), 0))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestGetMissingKey(t *testing.T) {
	c := New()

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestExpiry(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestDelete(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrNotFound)

	// Deleting an absent key succeeds.
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestGetReturnsCopy(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("abc"), 0))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'z'

	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
