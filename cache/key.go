package cache

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Key is the composite identifier addressing one cache entry.
type Key struct {
	// Type is the entity type, e.g. "products" or "product".
	Type string
	// ID addresses a single entity. Empty for list keys.
	ID string
	// Filter is a fingerprint of the query filter. Empty for
	// unfiltered keys.
	Filter string
}

// List returns the key for a collection query. A non-nil filter is
// fingerprinted into the key so differently-filtered lists cache
// independently.
func List(entityType string, filter any) Key {
	k := Key{Type: entityType}
	if filter != nil {
		k.Filter = fingerprint(filter)
	}
	return k
}

// Item returns the key for a single entity.
func Item(entityType, id string) Key {
	return Key{Type: entityType, ID: id}
}

// ItemID returns the key for a single entity with a numeric id.
func ItemID(entityType string, id int64) Key {
	return Item(entityType, strconv.FormatInt(id, 10))
}

func (k Key) String() string {
	s := k.Type
	if k.ID != "" {
		s += ":" + k.ID
	}
	if k.Filter != "" {
		s += "#" + k.Filter
	}
	return s
}

// fingerprint hashes the JSON form of a filter value. Filters with equal
// serialized form share a cache entry.
func fingerprint(filter any) string {
	data, err := json.Marshal(filter)
	if err != nil {
		data = []byte(fmt.Sprintf("%+v", filter))
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}
