package cache

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapProduct struct {
	ID   int64  `msgpack:"id"`
	Name string `msgpack:"name"`
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestStore()
	key := List("products", nil)

	_, err := Query(context.Background(), s, key, func(ctx context.Context) ([]snapProduct, error) {
		return []snapProduct{{ID: 1, Name: "chair"}, {ID: 2, Name: "desk"}}, nil
	})
	require.NoError(t, err)

	data, err := s.Export()
	require.NoError(t, err)

	// A fresh store warmed from the snapshot serves the value without
	// fetching.
	restored := newTestStore()
	require.NoError(t, restored.Import(data))

	var calls int32
	val, err := Query(context.Background(), restored, key, func(ctx context.Context) ([]snapProduct, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Equal(t, []snapProduct{{ID: 1, Name: "chair"}, {ID: 2, Name: "desk"}}, val)
}

func TestSnapshotSkipsStaleEntries(t *testing.T) {
	s := newTestStore()
	fresh := List("products", nil)
	stale := Item("product", "1")

	for _, entry := range []struct {
		key Key
		val string
	}{{fresh, "fresh"}, {stale, "stale"}} {
		val := entry.val
		_, err := Query(context.Background(), s, entry.key, func(ctx context.Context) (string, error) {
			return val, nil
		})
		require.NoError(t, err)
	}
	s.Invalidate(stale)

	data, err := s.Export()
	require.NoError(t, err)

	restored := newTestStore()
	require.NoError(t, restored.Import(data))

	_, ok := restored.Entry(fresh)
	assert.True(t, ok)
	_, ok = restored.Entry(stale)
	assert.False(t, ok, "invalidated entries must not survive a snapshot")
}

func TestImportKeepsExistingEntries(t *testing.T) {
	s := newTestStore()
	key := List("products", nil)

	_, err := Query(context.Background(), s, key, func(ctx context.Context) (string, error) {
		return "original", nil
	})
	require.NoError(t, err)
	data, err := s.Export()
	require.NoError(t, err)

	_, err = Query(context.Background(), s, key, func(ctx context.Context) (string, error) {
		return "", nil
	})
	require.NoError(t, err)

	// Re-importing does not clobber the live entry.
	require.NoError(t, s.Import(data))
	val, err := Query(context.Background(), s, key, func(ctx context.Context) (string, error) {
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "original", val)
}

func TestImportRejectsGarbage(t *testing.T) {
	s := newTestStore()
	assert.Error(t, s.Import([]byte("not a snapshot")))
}
