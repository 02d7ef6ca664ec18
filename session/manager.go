package session

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/shopfront/go-client/logger"
	"github.com/shopfront/go-client/nav"
)

// ErrSuperseded is returned by Login when a logout happened while the
// login request was in flight. The late response is discarded rather than
// repopulating the cleared session.
var ErrSuperseded = errors.New("session superseded")

// AuthAPI is the remote surface the Manager drives.
type AuthAPI interface {
	// SignIn exchanges credentials for a session. Invalid credentials
	// surface as an error wrapping api.ErrUnauthorized.
	SignIn(ctx context.Context, creds Credentials) (*Session, error)
	// SignUp registers a new account without authenticating it.
	// Field conflicts surface as errors wrapping api.ErrValidation.
	SignUp(ctx context.Context, reg Registration) error
}

// LoginPath is where Logout redirects.
const LoginPath = "/login"

// Manager orchestrates the session lifecycle. It is the sole writer of
// both the persistent Store and the in-memory Cache, and keeps the two in
// step within every operation: a caller going through the Manager never
// observes them disagreeing.
type Manager struct {
	mu    sync.Mutex
	gen   uint64
	api   AuthAPI
	store Store
	cache *Cache
	nav   nav.Navigator
	log   logger.Logger
}

// NewManager wires a Manager. All collaborators are required; a nil one is
// a wiring bug and panics immediately rather than failing later at a
// call site.
func NewManager(log logger.Logger, authAPI AuthAPI, store Store, cache *Cache, navigator nav.Navigator) *Manager {
	switch {
	case log == nil:
		panic("session: NewManager called with nil logger")
	case authAPI == nil:
		panic("session: NewManager called with nil AuthAPI")
	case store == nil:
		panic("session: NewManager called with nil Store")
	case cache == nil:
		panic("session: NewManager called with nil Cache")
	case navigator == nil:
		panic("session: NewManager called with nil Navigator")
	}
	return &Manager{
		api:   authAPI,
		store: store,
		cache: cache,
		nav:   navigator,
		log:   log,
	}
}

// Login authenticates against the remote API. On success the session is
// persisted and mirrored into the cache before returning. On failure no
// stored state changes. A logout while the request was in flight discards
// the response and returns ErrSuperseded; a canceled context discards it
// silently.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*Session, error) {
	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	sess, err := m.api.SignIn(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		// Caller went away mid-flight; nothing is applied.
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		m.log.Debug("discarding login response for user %s: session cleared while in flight", creds.Username)
		return nil, ErrSuperseded
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	m.cache.set(sess.User)
	m.log.Info("logged in as %s", creds.Username)
	return sess, nil
}

// Signup registers a new account. It has no effect on the current
// session either way.
func (m *Manager) Signup(ctx context.Context, reg Registration) error {
	return m.api.SignUp(ctx, reg)
}

// Logout clears the persistent store and the cache, then redirects to the
// login view. It always succeeds from the caller's perspective and is
// safe to call with no session.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.gen++
	if err := m.store.Clear(ctx); err != nil {
		// The in-memory state is authoritative for this process; a
		// storage failure on clear is logged, not surfaced.
		m.log.Warn("clearing session store: %s", err)
	}
	m.cache.clear()
	m.mu.Unlock()
	m.nav.Redirect(LoginPath, nav.Options{Replace: true})
}

// CurrentUser resolves the session state from local storage only — it
// never contacts the remote API, and it resolves synchronously.
func (m *Manager) CurrentUser(ctx context.Context) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.cache.Get(); ok {
		return Authenticated(u)
	}
	if !m.store.HasToken(ctx) {
		return Unauthenticated()
	}
	u, ok := m.store.LoadUser(ctx)
	if !ok {
		return Unauthenticated()
	}
	m.cache.set(u)
	return Authenticated(u)
}

// Token implements api.TokenSource so the HTTP client picks up the stored
// access token on each request.
func (m *Manager) Token() string {
	token, _ := m.store.Token(context.Background())
	return token
}
