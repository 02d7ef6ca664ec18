package cache

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutateInvalidatesBeforeResult(t *testing.T) {
	s := newTestStore()
	listKey := List("products", nil)
	itemKey := Item("product", "5")

	// Warm both entries.
	_, err := Query(context.Background(), s, listKey, func(ctx context.Context) (string, error) {
		return "old list", nil
	})
	require.NoError(t, err)
	_, err = Query(context.Background(), s, itemKey, func(ctx context.Context) (string, error) {
		return "old item", nil
	})
	require.NoError(t, err)

	res := Mutate(context.Background(), s, []Key{listKey, itemKey}, func(ctx context.Context) (string, error) {
		return "written", nil
	})
	require.True(t, res.IsOk())
	assert.Equal(t, "written", res.Ok)

	// By the time the result is observable, both keys are stale: an
	// immediate re-query never sees the pre-mutation value.
	for _, key := range []Key{listKey, itemKey} {
		e, ok := s.Entry(key)
		require.True(t, ok)
		assert.True(t, e.Stale, "%s should be stale", key)
	}

	var refetches int32
	val, err := Query(context.Background(), s, itemKey, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&refetches, 1)
		return "new item", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new item", val)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refetches))
}

func TestMutateFailureLeavesCacheUntouched(t *testing.T) {
	s := newTestStore()
	key := List("products", nil)

	_, err := Query(context.Background(), s, key, func(ctx context.Context) (string, error) {
		return "cached", nil
	})
	require.NoError(t, err)

	boom := errors.New("write rejected")
	res := Mutate(context.Background(), s, []Key{key}, func(ctx context.Context) (string, error) {
		return "", boom
	})
	require.True(t, res.IsErr())
	assert.ErrorIs(t, res.Err, boom)

	// The ready entry is still served without a refetch.
	var calls int32
	val, err := Query(context.Background(), s, key, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", errors.New("should not fetch")
	})
	require.NoError(t, err)
	assert.Equal(t, "cached", val)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestMutateCanceledCallerSkipsInvalidation(t *testing.T) {
	s := newTestStore()
	key := List("products", nil)

	_, err := Query(context.Background(), s, key, func(ctx context.Context) (string, error) {
		return "cached", nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	res := Mutate(ctx, s, []Key{key}, func(ctx context.Context) (string, error) {
		// The write completes, but the caller is gone by then.
		cancel()
		return "written", nil
	})
	require.True(t, res.IsErr())
	assert.ErrorIs(t, res.Err, context.Canceled)

	e, ok := s.Entry(key)
	require.True(t, ok)
	assert.False(t, e.Stale)
}
