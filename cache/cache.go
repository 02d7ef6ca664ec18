package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"

	"github.com/shopfront/go-client/logger"
)

// EntryState is the lifecycle state of a cache entry.
type EntryState int

const (
	StateIdle EntryState = iota
	StateLoading
	StateReady
	StateFailed
)

func (s EntryState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// Entry is an observable snapshot of one cache entry.
type Entry struct {
	State     EntryState
	Err       error
	FetchedAt time.Time
	// Stale marks a ready or failed entry that has been invalidated and
	// will refetch on the next query.
	Stale bool
}

type entry struct {
	state     EntryState
	value     any
	err       error
	fetchedAt time.Time
	stale     bool
	// gen counts invalidations and waiter resets. A flight captures the
	// gen it started under and its result is only applied if the gen is
	// unchanged at completion.
	gen     uint64
	waiters int
}

type config struct {
	ttl time.Duration
}

// Option configures a Store.
type Option func(*config)

// WithTTL bounds the age of ready entries; an entry older than d behaves
// as stale. Zero (the default) means entries stay ready until invalidated.
func WithTTL(d time.Duration) Option {
	return func(c *config) { c.ttl = d }
}

// Store owns the cache entries. All mutation of entries goes through
// Query, Mutate and Invalidate; consumers never write entries directly.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
	logger  logger.Logger
	cfg     config
}

// New returns an empty Store.
func New(log logger.Logger, opts ...Option) *Store {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store{
		entries: make(map[string]*entry),
		logger:  log,
		cfg:     cfg,
	}
}

// Fetcher produces the remote value for a key.
type Fetcher func(ctx context.Context) (any, error)

func (s *Store) expired(e *entry) bool {
	return s.cfg.ttl > 0 && time.Since(e.fetchedAt) > s.cfg.ttl
}

func flightID(key string, gen uint64) string {
	return fmt.Sprintf("%s@%d", key, gen)
}

// query is the untyped read path; use the generic Query for typed access.
func (s *Store) query(ctx context.Context, key Key, fetch Fetcher) (any, error) {
	id := key.String()

	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok {
		e = &entry{}
		s.entries[id] = e
	}
	if e.state == StateReady && !e.stale && !s.expired(e) {
		val := e.value
		s.mu.Unlock()
		return val, nil
	}
	gen := e.gen
	e.state = StateLoading
	e.waiters++
	s.mu.Unlock()

	s.logger.Trace("cache miss for %s, fetching", id)

	// The flight is keyed by generation so a query issued after an
	// invalidation never joins a fetch that started before it. The fetch
	// context is detached from the calling context because a shared
	// flight must survive the cancellation of any single waiter.
	fid := flightID(id, gen)
	ch := s.group.DoChan(fid, func() (any, error) {
		return fetch(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		s.mu.Lock()
		e.waiters--
		if e.waiters == 0 && e.state == StateLoading && e.gen == gen {
			// Last waiter torn down: the eventual result must not be
			// applied. Reset so the next access starts fresh.
			e.state = StateIdle
			e.gen++
			s.group.Forget(fid)
		}
		s.mu.Unlock()
		return nil, ctx.Err()
	case res := <-ch:
		s.mu.Lock()
		e.waiters--
		if e.gen == gen && e.state == StateLoading {
			if res.Err != nil {
				e.state = StateFailed
				e.err = res.Err
				e.value = nil
			} else {
				e.state = StateReady
				e.value = res.Val
				e.err = nil
				e.fetchedAt = time.Now()
				e.stale = false
			}
		}
		s.mu.Unlock()
		return res.Val, res.Err
	}
}

// Invalidate marks the given keys stale so their next query refetches.
// Keys that were never read are ignored; invalidation does not trigger a
// background refetch. For a key with a fetch in flight, the flight's
// result is prevented from landing as fresh.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		e, ok := s.entries[key.String()]
		if !ok {
			continue
		}
		e.gen++
		if e.state == StateReady || e.state == StateFailed {
			e.stale = true
		}
		s.logger.Trace("invalidated %s", key.String())
	}
}

// Entry returns an observable snapshot of the entry for key.
func (s *Store) Entry(key Key) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key.String()]
	if !ok {
		return Entry{}, false
	}
	return Entry{
		State:     e.state,
		Err:       e.err,
		FetchedAt: e.fetchedAt,
		Stale:     e.stale || (e.state == StateReady && s.expired(e)),
	}, true
}

// Query returns the cached value for key, fetching it if the entry is
// absent, stale or failed. Concurrent queries for the same key share one
// fetch. The error from a failed fetch is returned to every waiter and
// left on the entry; a later query retries.
func Query[T any](ctx context.Context, s *Store, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	val, err := s.query(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	// Direct type assertion for values fetched in this process.
	if typed, ok := val.(T); ok {
		return typed, nil
	}
	// Snapshot-restored entries hold raw msgpack.
	if data, ok := val.([]byte); ok {
		var result T
		if err := msgpack.Unmarshal(data, &result); err != nil {
			var zero T
			return zero, errors.Wrap(err, "cache: failed to unmarshal value")
		}
		return result, nil
	}
	var zero T
	return zero, errors.Newf("cache: cannot convert value of type %T to %T", val, zero)
}
