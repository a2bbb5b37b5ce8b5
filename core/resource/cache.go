// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package resource

// State is the loading state of a cache entry.
type State int

// Cache entry states
const (
	StateAbsent State = iota
	StatePending
	StateReady
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	default:
		return "absent"
	}
}

// Entry is a cache slot, Value is only set once the entry is ready.
type Entry[V any] struct {
	State State
	Value V
}

// NewCache creates an empty cache.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]Entry[V]),
	}
}

// Cache holds at most one entry per key. It does no locking, it
// belongs to the manager that owns it and is only touched from the
// owning goroutine. Nothing is ever evicted.
type Cache[K comparable, V any] struct {
	entries map[K]Entry[V]
}

// Lookup returns the entry for key, StateAbsent when there is none.
func (c *Cache[K, V]) Lookup(key K) Entry[V] {
	if entry, ok := c.entries[key]; ok {
		return entry
	}
	return Entry[V]{State: StateAbsent}
}

// Get returns the value only when the entry is ready.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	entry := c.entries[key]
	if entry.State != StateReady {
		var zero V
		return zero, false
	}
	return entry.Value, true
}

// Insert adds a pending entry for key. It reports false
// and changes nothing when an entry already exists.
func (c *Cache[K, V]) Insert(key K) bool {
	if _, ok := c.entries[key]; ok {
		return false
	}
	c.entries[key] = Entry[V]{State: StatePending}
	return true
}

// Resolve transitions a pending entry to ready. Entries in any
// other state are left alone and false is returned.
func (c *Cache[K, V]) Resolve(key K, value V) bool {
	if entry, ok := c.entries[key]; !ok || entry.State != StatePending {
		return false
	}
	c.entries[key] = Entry[V]{State: StateReady, Value: value}
	return true
}

// Put stores a ready value for a key that has no entry yet.
func (c *Cache[K, V]) Put(key K, value V) bool {
	if _, ok := c.entries[key]; ok {
		return false
	}
	c.entries[key] = Entry[V]{State: StateReady, Value: value}
	return true
}

// Remove deletes the entry for key.
func (c *Cache[K, V]) Remove(key K) {
	delete(c.entries, key)
}

// Len returns the amount of entries, pending ones included.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// Count returns the amount of entries in the given state.
func (c *Cache[K, V]) Count(state State) int {
	var n int
	for _, entry := range c.entries {
		if entry.State == state {
			n++
		}
	}
	return n
}

// Keys returns every key in the cache in no particular order.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

// Each calls fn for every ready value.
func (c *Cache[K, V]) Each(fn func(K, V)) {
	for key, entry := range c.entries {
		if entry.State == StateReady {
			fn(key, entry.Value)
		}
	}
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.entries = make(map[K]Entry[V])
}
