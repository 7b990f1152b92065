// Package registry provides the process-wide named store backing process
// nexuses: a thread-safe mapping from identifier string to a shared entry
// holding one instance and its construction lock.
//
// Identifiers are compared by content, so independently written call
// sites that agree on the bytes of an identifier converge on the same
// entry, the same lock, and ultimately the same instance. Entries are
// created on first lookup and persist for the process lifetime; there is
// no unregistration.
package registry

import (
	"sync"
	"sync/atomic"
)

// slot carries a published instance. Entries publish by swapping in a
// fresh slot pointer, so readers see either nothing or a fully
// constructed instance.
type slot struct {
	object any
}

// Entry is the shared state for one identifier: the instance (if built)
// and the lock that serializes its construction. Every nexus created with
// the same identifier holds the same *Entry.
type Entry struct {
	identifier string
	mu         sync.Mutex
	slot       atomic.Pointer[slot]
}

// Identifier returns the identifier this entry is registered under.
func (e *Entry) Identifier() string {
	return e.identifier
}

// Load returns the published instance, if any. It never blocks; a miss
// may be stale by the time the caller acts on it.
func (e *Entry) Load() (any, bool) {
	s := e.slot.Load()
	if s == nil {
		return nil, false
	}
	return s.object, true
}

// Create returns the entry's instance, running factory under the entry
// lock if no instance has been published yet. The opportunistic read,
// lock, re-check sequence is classic double-checked locking: the common
// case costs one atomic load.
//
// A factory error leaves the entry empty, so the next Create retries.
func (e *Entry) Create(factory func() (any, error)) (any, error) {
	if s := e.slot.Load(); s != nil {
		return s.object, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if s := e.slot.Load(); s != nil {
		return s.object, nil
	}

	object, err := factory()
	if err != nil {
		return nil, err
	}
	e.slot.Store(&slot{object: object})
	return object, nil
}

// Store maps identifiers to entries. The store lock covers only the
// lookup-or-create step; construction contention is per entry.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

// NewStore creates an empty store. Most callers want Shared instead; a
// private store is useful in tests and for embedding the same semantics
// in another component.
func NewStore() *Store {
	return &Store{entries: make(map[string]*Entry)}
}

// Lookup returns the entry for identifier, creating it if this is the
// first lookup. Byte-equal identifiers always yield the same entry,
// regardless of which call site asks first.
func (s *Store) Lookup(identifier string) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[identifier]
	if !ok {
		e = &Entry{identifier: identifier}
		s.entries[identifier] = e
	}
	return e
}

// Len reports how many identifiers have entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var (
	sharedOnce  sync.Once
	sharedStore *Store
)

// Shared returns the process-wide store. It is initialized lazily,
// exactly once, on first use; relying on an explicit once rather than
// package-variable initialization keeps the lifecycle visible and
// independent of initialization order elsewhere.
func Shared() *Store {
	sharedOnce.Do(func() {
		sharedStore = NewStore()
	})
	return sharedStore
}
