// Package cache is a keyed cache of remote query results with
// mutation-driven invalidation.
//
// # Entries
//
// Each composite [Key] (entity type, optional id, optional filter
// fingerprint) addresses one entry. An entry moves through
// idle → loading → ready | failed. A ready entry holds the fetched value
// and its fetch time; invalidation marks a ready or failed entry stale so
// the next [Query] refetches instead of returning the stored value.
// Entries are created lazily on first read and recomputed rather than
// deleted.
//
// # Queries
//
// [Query] is the type-safe read path. Concurrent queries for the same key
// share one in-flight remote call through singleflight; queries for
// different keys proceed independently. If every waiter of a flight is
// canceled, the eventual result is discarded without being applied.
//
// # Mutations
//
// [Mutate] issues a remote write and, on success, marks every affected
// key stale strictly before the result is returned, so a caller that
// reacts to a successful mutation by re-querying an affected key never
// observes the pre-mutation value. Mutations are not coalesced: when two
// mutations affecting the same key are in flight, invalidation applies at
// each completion in completion order, not issuance order. That can leave
// a key stale after a newer mutation because an older one finished later;
// this is an accepted race, kept from the original design.
//
// # Snapshots
//
// [Store.Export] serializes ready entries to msgpack so a short-lived
// process can resume with warm data via [Store.Import]. Stale entries are
// never exported; imported values are decoded lazily by [Query].
package cache
