package session

import (
	"context"
	"sync"
)

// Storage key names. The session is persisted as three independent
// string-keyed entries rather than one record.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

// Store is the persistent session store. Implementations hold exactly
// three entries (KeyToken, KeyRefreshToken, KeyUser) and must never leave
// one key set while the others are cleared, even though the underlying
// storage offers no transaction: Save that fails midway removes whatever
// it already wrote before returning the error.
type Store interface {
	// Save writes the access token, refresh token and serialized user.
	// Storage failures propagate; no partial state survives them.
	Save(ctx context.Context, s *Session) error

	// Clear removes all three entries. Clearing an empty store is a
	// no-op, never an error.
	Clear(ctx context.Context) error

	// LoadUser deserializes the stored user. A missing session or an
	// undecodable record both report absence, not an error.
	LoadUser(ctx context.Context) (*User, bool)

	// HasToken reports whether an access token is stored.
	HasToken(ctx context.Context) bool

	// Token returns the stored access token, if any.
	Token(ctx context.Context) (string, bool)
}

// memoryStore is a Store for tests and short-lived processes. It is not
// persistent across runs.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]string)}
}

func (m *memoryStore) Save(_ context.Context, s *Session) error {
	data, err := encodeUser(s.User)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[KeyToken] = s.AccessToken
	m.entries[KeyRefreshToken] = s.RefreshToken
	m.entries[KeyUser] = string(data)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	delete(m.entries, KeyToken)
	delete(m.entries, KeyRefreshToken)
	delete(m.entries, KeyUser)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) LoadUser(_ context.Context) (*User, bool) {
	m.mu.Lock()
	raw, ok := m.entries[KeyUser]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}
	return decodeUser([]byte(raw))
}

func (m *memoryStore) HasToken(ctx context.Context) bool {
	_, ok := m.Token(ctx)
	return ok
}

func (m *memoryStore) Token(_ context.Context) (string, bool) {
	m.mu.Lock()
	token, ok := m.entries[KeyToken]
	m.mu.Unlock()
	return token, ok && token != ""
}
