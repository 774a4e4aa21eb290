package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(client, time.Hour), mr
}

func TestActiveBusiness_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetActiveBusiness(ctx, "user-1", "biz-42"))

	id, err := store.ActiveBusiness(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "biz-42", id)
}

func TestActiveBusiness_NoSelection(t *testing.T) {
	store, _ := newTestStore(t)

	id, err := store.ActiveBusiness(context.Background(), "user-unknown")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestActiveBusiness_SelectionExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetActiveBusiness(ctx, "user-1", "biz-42"))
	mr.FastForward(2 * time.Hour)

	id, err := store.ActiveBusiness(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestClearActiveBusiness(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetActiveBusiness(ctx, "user-1", "biz-42"))
	require.NoError(t, store.ClearActiveBusiness(ctx, "user-1"))

	id, err := store.ActiveBusiness(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestSetActiveBusiness_OverwritesPrevious(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetActiveBusiness(ctx, "user-1", "biz-1"))
	require.NoError(t, store.SetActiveBusiness(ctx, "user-1", "biz-2"))

	id, _ := store.ActiveBusiness(ctx, "user-1")
	assert.Equal(t, "biz-2", id)
}
