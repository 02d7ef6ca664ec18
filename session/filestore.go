package session

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// fileStore persists the three session entries as files in a directory,
// one file per key, 0600. This is the local-client analog of browser
// storage: no TTL, no encryption.
type fileStore struct {
	dir string
}

// DefaultDir returns the conventional session directory for the current
// user, honoring XDG_CONFIG_HOME.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "shopfront")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "shopfront")
}

// NewFileStore returns a Store rooted at dir, creating it if needed.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "creating session dir %s", dir)
	}
	return &fileStore{dir: dir}, nil
}

func (f *fileStore) path(key string) string {
	return filepath.Join(f.dir, key)
}

func (f *fileStore) write(key string, data []byte) error {
	return os.WriteFile(f.path(key), data, 0o600)
}

func (f *fileStore) remove(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Save writes the three entries in order. If any write fails, the entries
// already written are removed so the store never holds a partial session,
// then the error propagates.
func (f *fileStore) Save(_ context.Context, s *Session) error {
	userData, err := encodeUser(s.User)
	if err != nil {
		return err
	}
	written := make([]string, 0, 3)
	for _, entry := range []struct {
		key  string
		data []byte
	}{
		{KeyToken, []byte(s.AccessToken)},
		{KeyRefreshToken, []byte(s.RefreshToken)},
		{KeyUser, userData},
	} {
		if err := f.write(entry.key, entry.data); err != nil {
			for _, key := range written {
				_ = f.remove(key)
			}
			_ = f.remove(entry.key)
			return errors.Wrapf(err, "writing session entry %s", entry.key)
		}
		written = append(written, entry.key)
	}
	return nil
}

func (f *fileStore) Clear(_ context.Context) error {
	for _, key := range []string{KeyToken, KeyRefreshToken, KeyUser} {
		if err := f.remove(key); err != nil {
			return errors.Wrapf(err, "removing session entry %s", key)
		}
	}
	return nil
}

func (f *fileStore) LoadUser(_ context.Context) (*User, bool) {
	data, err := os.ReadFile(f.path(KeyUser))
	if err != nil {
		return nil, false
	}
	return decodeUser(data)
}

func (f *fileStore) HasToken(ctx context.Context) bool {
	_, ok := f.Token(ctx)
	return ok
}

func (f *fileStore) Token(_ context.Context) (string, bool) {
	data, err := os.ReadFile(f.path(KeyToken))
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}
