// Package registry is the engine's object arena. Entries are addressed by Handle, a slot
// index plus the generation the slot had when the entry was inserted. Releasing the last
// strong reference clears the slot and bumps its generation, so every outstanding handle
// to it expires at once.
package registry

import (
	"fmt"
	"sync"
)

// Handle is a weak reference into a Registry.
type Handle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h was never issued by a Registry.
func (h Handle) IsZero() bool {
	return h.generation == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("handle(%d@%d)", h.index, h.generation)
}

type slot[T any] struct {
	value      T
	generation uint32
	refs       int32
	occupied   bool
}

// Registry is a generational arena with explicit strong reference counts.
// Iteration follows insertion order; expired entries stay in the live list until Prune.
type Registry[T any] struct {
	mu    sync.RWMutex
	slots []slot[T]
	free  []uint32
	live  []Handle
}

// New creates an empty Registry.
//
// Returns:
//   - *Registry[T]: the registry
func New[T any]() *Registry[T] {
	return &Registry[T]{}
}

// Insert stores v with one strong reference held by the caller.
//
// Parameters:
//   - v: the value to store
//
// Returns:
//   - Handle: the new entry's handle
func (r *Registry[T]) Insert(v T) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot[T]{})
		idx = uint32(len(r.slots) - 1)
	}
	s := &r.slots[idx]
	s.generation++
	s.value = v
	s.refs = 1
	s.occupied = true

	h := Handle{index: idx, generation: s.generation}
	r.live = append(r.live, h)
	return h
}

// Retain adds a strong reference to h's entry.
//
// Parameters:
//   - h: the handle
//
// Returns:
//   - bool: false if the entry has already expired
func (r *Registry[T]) Retain(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.lookup(h)
	if !ok {
		return false
	}
	s.refs++
	return true
}

// Release drops a strong reference to h's entry. When the last reference goes the
// slot is cleared and h expires.
//
// Parameters:
//   - h: the handle
//
// Returns:
//   - bool: true if this call expired the entry
func (r *Registry[T]) Release(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.lookup(h)
	if !ok {
		return false
	}
	if s.refs > 1 {
		s.refs--
		return false
	}
	r.expire(h, s)
	return true
}

// expire clears s and frees its index. Caller must hold mu.
func (r *Registry[T]) expire(h Handle, s *slot[T]) {
	var zero T
	s.value = zero
	s.refs = 0
	s.occupied = false
	// bump so the handle stops matching even before the slot is reused
	s.generation++
	r.free = append(r.free, h.index)
}

// Drop expires h's entry regardless of how many strong references remain.
//
// Parameters:
//   - h: the handle
//
// Returns:
//   - bool: false if the entry had already expired
func (r *Registry[T]) Drop(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.lookup(h)
	if !ok {
		return false
	}
	r.expire(h, s)
	return true
}

// Get upgrades h to its value.
//
// Parameters:
//   - h: the handle
//
// Returns:
//   - T: the value, or the zero value if expired
//   - bool: false if the entry has expired
func (r *Registry[T]) Get(h Handle) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.lookup(h)
	if !ok {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Refs returns the strong reference count of h's entry, or 0 if expired.
func (r *Registry[T]) Refs(h Handle) int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.lookup(h)
	if !ok {
		return 0
	}
	return s.refs
}

// Each calls fn for every live entry in insertion order, stopping early if fn returns
// false. Expired entries are skipped. fn runs without the registry lock held, so it
// may insert or release entries; entries inserted during the walk are not visited.
//
// Parameters:
//   - fn: the visitor
func (r *Registry[T]) Each(fn func(h Handle, v T) bool) {
	r.mu.RLock()
	handles := make([]Handle, len(r.live))
	copy(handles, r.live)
	r.mu.RUnlock()

	for _, h := range handles {
		v, ok := r.Get(h)
		if !ok {
			continue
		}
		if !fn(h, v) {
			return
		}
	}
}

// Prune drops expired handles from the live list.
//
// Returns:
//   - int: the number of handles dropped
func (r *Registry[T]) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.live[:0]
	for _, h := range r.live {
		if _, ok := r.lookup(h); ok {
			kept = append(kept, h)
		}
	}
	dropped := len(r.live) - len(kept)
	clear(r.live[len(kept):])
	r.live = kept
	return dropped
}

// Len returns the number of entries in the live list, including expired entries not
// yet pruned.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.live)
}

// lookup returns h's slot if it is still occupied by the same generation. Caller must hold mu.
func (r *Registry[T]) lookup(h Handle) (*slot[T], bool) {
	if h.IsZero() || int(h.index) >= len(r.slots) {
		return nil, false
	}
	s := &r.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return nil, false
	}
	return s, true
}
