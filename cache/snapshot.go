package cache

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
)

type snapshotEntry struct {
	Key       string    `msgpack:"k"`
	Value     []byte    `msgpack:"v"`
	FetchedAt time.Time `msgpack:"t"`
}

type snapshot struct {
	Entries []snapshotEntry `msgpack:"e"`
}

// Export serializes the ready entries so a later process can start warm.
// Stale, failed, loading and expired entries are skipped — an invalidated
// value must never resurface as ready. Values that cannot be
// msgpack-encoded are skipped rather than failing the export.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	snap := snapshot{}
	for key, e := range s.entries {
		if e.state != StateReady || e.stale || s.expired(e) {
			continue
		}
		var data []byte
		if raw, ok := e.value.([]byte); ok {
			// Already raw from a previous import.
			data = raw
		} else {
			var err error
			data, err = msgpack.Marshal(e.value)
			if err != nil {
				s.logger.Warn("skipping unexportable cache entry %s: %s", key, err)
				continue
			}
		}
		snap.Entries = append(snap.Entries, snapshotEntry{Key: key, Value: data, FetchedAt: e.fetchedAt})
	}
	s.mu.Unlock()
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, errors.Wrap(err, "encoding cache snapshot")
	}
	return data, nil
}

// Import loads a snapshot produced by Export. Entries already present are
// kept; imported values are held raw and decoded lazily by Query. Entries
// past the store's TTL are dropped at read time like any other expired
// entry.
func (s *Store) Import(data []byte) error {
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return errors.Wrap(err, "decoding cache snapshot")
	}
	s.mu.Lock()
	for _, se := range snap.Entries {
		if _, ok := s.entries[se.Key]; ok {
			continue
		}
		s.entries[se.Key] = &entry{
			state:     StateReady,
			value:     se.Value,
			fetchedAt: se.FetchedAt,
		}
	}
	s.mu.Unlock()
	return nil
}
