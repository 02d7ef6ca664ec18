package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/go-client/logger"
)

func newTestStore(opts ...Option) *Store {
	return New(logger.NewTestLogger(), opts...)
}

func TestQueryFetchesOnce(t *testing.T) {
	s := newTestStore()
	key := List("products", nil)
	var calls int32

	fetch := func(ctx context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"a", "b"}, nil
	}

	val, err := Query(context.Background(), s, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, val)

	// Second query is a cache hit.
	val, err = Query(context.Background(), s, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, val)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	e, ok := s.Entry(key)
	require.True(t, ok)
	assert.Equal(t, StateReady, e.State)
	assert.False(t, e.Stale)
	assert.False(t, e.FetchedAt.IsZero())
}

func TestQueryDedup(t *testing.T) {
	s := newTestStore()
	key := List("products", nil)
	var calls int32
	release := make(chan struct{})

	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "value", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			val, err := Query(context.Background(), s, key, fetch)
			assert.NoError(t, err)
			results[i] = val
		}(i)
	}

	// Let both goroutines reach the flight before releasing it.
	assert.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		e, ok := s.entries[key.String()]
		return ok && e.waiters == 2
	}, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "value", results[0])
	assert.Equal(t, "value", results[1])
}

func TestQueryIndependentKeys(t *testing.T) {
	s := newTestStore()
	var calls int32

	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "x", nil
	}

	_, err := Query(context.Background(), s, Item("product", "1"), fetch)
	require.NoError(t, err)
	_, err = Query(context.Background(), s, Item("product", "2"), fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestQueryFailureLeavesFailedEntry(t *testing.T) {
	s := newTestStore()
	key := List("products", nil)
	boom := errors.New("boom")
	var calls int32

	_, err := Query(context.Background(), s, key, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", boom
	})
	require.ErrorIs(t, err, boom)

	e, ok := s.Entry(key)
	require.True(t, ok)
	assert.Equal(t, StateFailed, e.State)
	assert.ErrorIs(t, e.Err, boom)

	// A later query retries and can recover.
	val, err := Query(context.Background(), s, key, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", val)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestInvalidateForcesRefetch(t *testing.T) {
	s := newTestStore()
	key := List("products", nil)
	var calls int32

	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "v", nil
	}

	_, err := Query(context.Background(), s, key, fetch)
	require.NoError(t, err)

	s.Invalidate(key)
	e, ok := s.Entry(key)
	require.True(t, ok)
	assert.True(t, e.Stale)
	// Still ready: invalidation does not eagerly refetch.
	assert.Equal(t, StateReady, e.State)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, err = Query(context.Background(), s, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestInvalidateUnknownKeyIsNoop(t *testing.T) {
	s := newTestStore()
	s.Invalidate(Item("product", "99"))
	_, ok := s.Entry(Item("product", "99"))
	assert.False(t, ok)
}

func TestInvalidateDuringFlight(t *testing.T) {
	s := newTestStore()
	key := List("products", nil)
	release := make(chan struct{})
	var calls int32

	done := make(chan struct{})
	go func() {
		defer close(done)
		val, err := Query(context.Background(), s, key, func(ctx context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return "pre-invalidation", nil
		})
		// The waiter still receives the fetched value.
		assert.NoError(t, err)
		assert.Equal(t, "pre-invalidation", val)
	}()

	assert.Eventually(t, func() bool {
		e, ok := s.Entry(key)
		return ok && e.State == StateLoading
	}, time.Second, time.Millisecond)

	s.Invalidate(key)
	close(release)
	<-done

	// The in-flight result must not have landed as fresh.
	var refetched int32
	_, err := Query(context.Background(), s, key, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&refetched, 1)
		return "post-invalidation", nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refetched))
}

func TestQueryCanceledWaiterDiscardsResult(t *testing.T) {
	s := newTestStore()
	key := List("products", nil)
	release := make(chan struct{})
	started := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := Query(ctx, s, key, func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "late", nil
		})
		done <- err
	}()

	<-started
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	close(release)
	// Give the detached flight a moment to finish; its result must not
	// be applied.
	assert.Eventually(t, func() bool {
		e, ok := s.Entry(key)
		return ok && e.State == StateIdle
	}, time.Second, time.Millisecond)
}

func TestQueryTTLExpiry(t *testing.T) {
	s := newTestStore(WithTTL(20 * time.Millisecond))
	key := List("products", nil)
	var calls int32

	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "v", nil
	}

	_, err := Query(context.Background(), s, key, fetch)
	require.NoError(t, err)
	_, err = Query(context.Background(), s, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	time.Sleep(30 * time.Millisecond)
	_, err = Query(context.Background(), s, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
