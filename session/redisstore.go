package session

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultQueryTimeout bounds each Redis operation so a slow backend cannot
// hang a session read.
const DefaultQueryTimeout = 5 * time.Second

type redisConfig struct {
	prefix       string
	queryTimeout time.Duration
}

// RedisOption configures the Redis-backed Store.
type RedisOption func(*redisConfig)

// WithPrefix sets the key prefix for namespacing session entries.
func WithPrefix(p string) RedisOption {
	return func(c *redisConfig) { c.prefix = p }
}

// WithQueryTimeout sets the per-operation timeout. Defaults to
// DefaultQueryTimeout.
func WithQueryTimeout(d time.Duration) RedisOption {
	return func(c *redisConfig) { c.queryTimeout = d }
}

// redisStore keeps the three session entries in Redis, for headless
// deployments where the client runs without a home directory. The caller
// owns the redis.Client lifecycle.
type redisStore struct {
	client *redis.Client
	cfg    redisConfig
}

// NewRedisStore returns a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client, opts ...RedisOption) Store {
	cfg := redisConfig{queryTimeout: DefaultQueryTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &redisStore{client: client, cfg: cfg}
}

func (r *redisStore) queryCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, r.cfg.queryTimeout)
}

func (r *redisStore) key(name string) string {
	if r.cfg.prefix == "" {
		return "session:" + name
	}
	return r.cfg.prefix + ":session:" + name
}

// Save writes all three entries in a single MSET, which Redis applies
// atomically.
func (r *redisStore) Save(ctx context.Context, s *Session) error {
	userData, err := encodeUser(s.User)
	if err != nil {
		return err
	}
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()
	err = r.client.MSet(qctx,
		r.key(KeyToken), s.AccessToken,
		r.key(KeyRefreshToken), s.RefreshToken,
		r.key(KeyUser), string(userData),
	).Err()
	return errors.Wrap(err, "saving session")
}

func (r *redisStore) Clear(ctx context.Context) error {
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()
	err := r.client.Del(qctx, r.key(KeyToken), r.key(KeyRefreshToken), r.key(KeyUser)).Err()
	if err != nil && err != redis.Nil {
		return errors.Wrap(err, "clearing session")
	}
	return nil
}

func (r *redisStore) LoadUser(ctx context.Context) (*User, bool) {
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()
	data, err := r.client.Get(qctx, r.key(KeyUser)).Bytes()
	if err != nil {
		return nil, false
	}
	return decodeUser(data)
}

func (r *redisStore) HasToken(ctx context.Context) bool {
	_, ok := r.Token(ctx)
	return ok
}

func (r *redisStore) Token(ctx context.Context) (string, bool) {
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()
	token, err := r.client.Get(qctx, r.key(KeyToken)).Result()
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}
