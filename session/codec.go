package session

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// The user entry is stored as JSON text so it stays readable by the other
// clients of the same backend.

func encodeUser(u *User) ([]byte, error) {
	if u == nil {
		return nil, errors.New("session has no user")
	}
	data, err := json.Marshal(u)
	if err != nil {
		return nil, errors.Wrap(err, "encoding user")
	}
	return data, nil
}

// decodeUser reports absence rather than an error: a corrupt record is
// indistinguishable from no record to callers.
func decodeUser(data []byte) (*User, bool) {
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, false
	}
	return &u, true
}
