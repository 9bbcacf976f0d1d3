// Package refcache is an optional convenience layer over REFERENCE atoms:
// it resolves a repeated reference payload to a stable caller-facing handle.
// Entries are keyed by the payload's 64-bit xxhash: every lookup hashes the
// payload and compares hashes only, never the payload bytes, so two payloads
// with the same hash share a handle. The
// codec itself never needs this; atom.Value's Slice field already borrows a
// REFERENCE atom's raw payload directly.
package refcache

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"

	"github.com/kanshi-io/atomwire/atom"
)

// Resolver assigns sequential handles to distinct REFERENCE payloads, most
// recently used entries retained, like kryptco-kr's SSH agent bounds its
// host-auth callback table.
type Resolver struct {
	mu    sync.Mutex
	cache *lru.Cache
	next  uint64
}

// New creates a Resolver that retains at most size distinct payloads.
func New(size int) (*Resolver, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Resolver{cache: cache}, nil
}

// Resolve reports the handle previously assigned to payload, or false if it
// has never been interned (or has aged out of the cache).
func (r *Resolver) Resolve(payload []byte) (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.cache.Get(xxhash.Sum64(payload))
	if !ok {
		return 0, false
	}
	return v.(uint64), true
}

// Intern assigns the next handle to payload if it hasn't been seen before,
// and returns the (possibly pre-existing) handle. Handles start at 1; 0 is
// reserved for "not found" so Resolve's ok can be ignored where convenient.
func (r *Resolver) Intern(payload []byte) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := xxhash.Sum64(payload)
	if v, ok := r.cache.Get(key); ok {
		return v.(uint64)
	}
	r.next++
	r.cache.Add(key, r.next)
	return r.next
}

// ResolveValue is Resolve for a Value already known to be a REFERENCE atom.
// It reports false for any other tag.
func ResolveValue(r *Resolver, v atom.Value) (uint64, bool) {
	if v.Tag != atom.TagReference {
		return 0, false
	}
	return r.Resolve(v.Slice)
}
